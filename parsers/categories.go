package parsers

import (
	"regexp"
	"strings"
	"time"

	"github.com/momo-data/momo-indexer/filter"
	"github.com/momo-data/momo-indexer/sms"
	"github.com/momo-data/momo-indexer/util"
	"github.com/shopspring/decimal"
)

// Category is the kind of mobile money operation a message reports.
type Category string

const (
	IncomingMoney    Category = "incoming_money"
	PaymentToCode    Category = "payment_to_code"
	TransferToNumber Category = "transfer_to_mobile"
	BankDeposit      Category = "bank_deposit"
	AirtimePayment   Category = "airtime_payment"
	PowerPayment     Category = "cash_power_payment"
	ThirdParty       Category = "third_party_transaction"
	Withdrawal       Category = "withdrawal_from_agent"
	BundlePurchase   Category = "internet_bundle_purchase"
	Uncategorized    Category = "other"

	// MobileMoneySender is the address mobile money notifications are sent from.
	MobileMoneySender = "M-Money"
)

// Categories lists every category in report order, Uncategorized last.
var Categories = []Category{
	IncomingMoney, PaymentToCode, TransferToNumber, BankDeposit, AirtimePayment,
	PowerPayment, ThirdParty, Withdrawal, BundlePurchase, Uncategorized,
}

// categoryRule extracts the fields of the messages its filter matches. Nil patterns leave
// the field empty.
type categoryRule struct {
	Category      Category
	Filter        filter.RegexFilter
	Amount        Pattern
	Counterparty  Pattern
	TransactionID Pattern
}

func group(f filter.RegexFilter, n int) RegexPattern {
	return RegexPattern{Regex: f.Regex(), Group: n}
}

func trimmedGroup(f filter.RegexFilter, n int) TrimmedPattern {
	return TrimmedPattern{Pattern: group(f, n)}
}

func firstGroup(pattern string) RegexPattern {
	return RegexPattern{Regex: regexp.MustCompile(pattern), Group: 1}
}

var (
	incomingMoneyFilter = filter.MustRegexFilter(`(?i)You have received (\d+(?:,?\d+)*) RWF from (.+?) \(\*+\d+\) on your mobile money account`)
	paymentToCodeFilter = filter.MustRegexFilter(`(?i)TxId: (\d+)\. Your payment of ([\d,]+) RWF to (.+?) \d+ has been completed`)
	transferFilter      = filter.MustRegexFilter(`(?i)\*165\*S\*([\d,]+) RWF transferred to (.+?) \(250\d+\) from \d+`)
	bankDepositFilter   = filter.MustRegexFilter(`(?i)\*113\*R\*A bank deposit of (\d+(?:,?\d+)*) RWF has been added to your mobile money account`)
	airtimeFilter       = filter.MustRegexFilter(`(?i)Your payment of (\d+(?:,?\d+)*) RWF to Airtime with token`)
	powerFilter         = filter.MustRegexFilter(`(?i)Your payment of (\d+(?:,?\d+)*) RWF to MTN Cash Power with token`)
	thirdPartyFilter    = filter.MustRegexFilter(`(?i)A transaction of (\d+(?:,?\d+)*) RWF by (.+?) on your MOMO account was successfully completed`)
	withdrawalFilter    = filter.MustRegexFilter(`(?i)withdrawn (\d+(?:,?\d+)*) RWF from your mobile money account`)
	bundleFilter        = filter.MustRegexFilter(`(?i)(Your payment of (\d+(?:,?\d+)*) RWF to Bundles and Packs|Umaze kugura .+?igura (\d+(?:,?\d+)*) RWF)`)

	BalancePattern = RegexPattern{Regex: regexp.MustCompile(`(?i)(new balance:?|NEW BALANCE :)([\d,]+) RWF`), Group: 2}
	FeePattern     = firstGroup(`(?i)fee (?:was|paid): ?([\d,]+) RWF`)
	TimePattern    = firstGroup(`(?i)at (\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})`)
)

// Rules are tried in order, the first match wins. Messages matching none are Uncategorized.
var categoryRules = []categoryRule{
	{
		Category:      IncomingMoney,
		Filter:        incomingMoneyFilter,
		Amount:        group(incomingMoneyFilter, 1),
		Counterparty:  trimmedGroup(incomingMoneyFilter, 2),
		TransactionID: firstGroup(`(?i)Financial Transaction Id: (\d+)`),
	},
	{
		Category:      PaymentToCode,
		Filter:        paymentToCodeFilter,
		Amount:        group(paymentToCodeFilter, 2),
		Counterparty:  trimmedGroup(paymentToCodeFilter, 3),
		TransactionID: group(paymentToCodeFilter, 1),
	},
	{
		Category:     TransferToNumber,
		Filter:       transferFilter,
		Amount:       group(transferFilter, 1),
		Counterparty: trimmedGroup(transferFilter, 2),
	},
	{
		Category: BankDeposit,
		Filter:   bankDepositFilter,
		Amount:   group(bankDepositFilter, 1),
	},
	{
		Category:      AirtimePayment,
		Filter:        airtimeFilter,
		Amount:        group(airtimeFilter, 1),
		TransactionID: firstGroup(`(?i)TxId:(\d+)`),
	},
	{
		// the meter token is reported as the counterparty
		Category:     PowerPayment,
		Filter:       powerFilter,
		Amount:       group(powerFilter, 1),
		Counterparty: firstGroup(`(?i)with token (\S+)`),
	},
	{
		Category:     ThirdParty,
		Filter:       thirdPartyFilter,
		Amount:       group(thirdPartyFilter, 1),
		Counterparty: trimmedGroup(thirdPartyFilter, 2),
	},
	{
		// the agent name is reported as the counterparty
		Category:     Withdrawal,
		Filter:       withdrawalFilter,
		Amount:       group(withdrawalFilter, 1),
		Counterparty: firstGroup(`(?i)via agent: (.+?) \(`),
	},
	{
		Category: BundlePurchase,
		Filter:   bundleFilter,
		Amount:   FirstOfPattern{group(bundleFilter, 2), group(bundleFilter, 3)},
	},
}

// CategorizedTransaction is a mobile money message with every field that could be read from it.
// Amounts that are absent or unreadable are zero.
type CategorizedTransaction struct {
	Category      Category        `json:"category"`
	Date          string          `json:"date"`
	ReadableDate  string          `json:"readableDate"`
	Time          string          `json:"time"`
	Amount        decimal.Decimal `json:"amount"`
	Counterparty  string          `json:"recipient"`
	TransactionID string          `json:"transactionId"`
	Balance       decimal.Decimal `json:"balance"`
	Fee           decimal.Decimal `json:"fee"`
	RawMessage    string          `json:"rawMessage"`
}

type CategoryStatistics struct {
	Count         int             `json:"count"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	AverageAmount decimal.Decimal `json:"averageAmount"`
}

type CategorizedTransactions struct {
	All        []CategorizedTransaction              `json:"all"`
	ByCategory map[Category][]CategorizedTransaction `json:"byCategory"`
}

// CategoryReport is the result of categorizing a whole backup.
type CategoryReport struct {
	TotalSmsProcessed int                             `json:"totalSmsProcessed"`
	Statistics        map[Category]CategoryStatistics `json:"statistics"`
	Transactions      CategorizedTransactions         `json:"transactions"`
	ProcessedAt       time.Time                       `json:"processedAt"`
}

// IsMobileMoney reports whether a message was sent by sender and has a non-blank body.
func IsMobileMoney(message sms.RawMessage, sender string) bool {
	return message.Address == sender && strings.TrimSpace(message.Body) != ""
}

func extractOptional(pattern Pattern, body string) string {
	if pattern == nil {
		return ""
	}
	return pattern.Extract(body)
}

func amountOrZero(amount string) decimal.Decimal {
	if amount == "" {
		return decimal.Zero
	}
	value, err := util.AmountToNumeric(amount)
	if err != nil {
		return decimal.Zero
	}
	return value
}

// CategorizeMessage applies the first matching rule to the message.
func CategorizeMessage(message sms.RawMessage) CategorizedTransaction {
	body := message.Body
	tx := CategorizedTransaction{
		Category:     Uncategorized,
		ReadableDate: message.ReadableDate,
		Time:         TimePattern.Extract(body),
		Amount:       decimal.Zero,
		Balance:      amountOrZero(BalancePattern.Extract(body)),
		Fee:          amountOrZero(FeePattern.Extract(body)),
		RawMessage:   body,
	}
	if ts, err := message.Time(); err == nil {
		tx.Date = ts.Format("2006-01-02T15:04:05.000Z07:00")
	}

	for _, rule := range categoryRules {
		if !rule.Filter.BodyMatches(body) {
			continue
		}
		tx.Category = rule.Category
		tx.Amount = amountOrZero(extractOptional(rule.Amount, body))
		tx.Counterparty = extractOptional(rule.Counterparty, body)
		tx.TransactionID = extractOptional(rule.TransactionID, body)
		break
	}
	return tx
}

// Categorize keeps the messages of sender, categorizes them in input order and computes the
// per category statistics. Every category is present in the report, empty ones included.
func Categorize(messages []sms.RawMessage, sender string, processedAt time.Time) CategoryReport {
	report := CategoryReport{
		Statistics: make(map[Category]CategoryStatistics, len(Categories)),
		Transactions: CategorizedTransactions{
			All:        make([]CategorizedTransaction, 0),
			ByCategory: make(map[Category][]CategorizedTransaction, len(Categories)),
		},
		ProcessedAt: processedAt.UTC(),
	}
	for _, category := range Categories {
		report.Transactions.ByCategory[category] = make([]CategorizedTransaction, 0)
	}

	for _, message := range messages {
		if !IsMobileMoney(message, sender) {
			continue
		}
		tx := CategorizeMessage(message)
		report.Transactions.All = append(report.Transactions.All, tx)
		report.Transactions.ByCategory[tx.Category] = append(report.Transactions.ByCategory[tx.Category], tx)
	}
	report.TotalSmsProcessed = len(report.Transactions.All)

	for _, category := range Categories {
		report.Statistics[category] = categoryStatistics(report.Transactions.ByCategory[category])
	}
	return report
}

func categoryStatistics(transactions []CategorizedTransaction) CategoryStatistics {
	stats := CategoryStatistics{
		Count:         len(transactions),
		TotalAmount:   decimal.Zero,
		AverageAmount: decimal.Zero,
	}
	for _, tx := range transactions {
		stats.TotalAmount = stats.TotalAmount.Add(tx.Amount)
	}
	if stats.Count > 0 {
		stats.AverageAmount = stats.TotalAmount.DivRound(decimal.NewFromInt(int64(stats.Count)), 2)
	}
	return stats
}
