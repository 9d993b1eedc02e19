package parsers

import (
	"time"

	"github.com/momo-data/momo-indexer/sms"
	"github.com/momo-data/momo-indexer/util"
	"github.com/shopspring/decimal"
)

// Summary describes a processed batch for the logs. It is never written to the output file.
type Summary struct {
	Messages      int
	Transactions  int
	MissingAmount int
	Total         decimal.Decimal
	// First and Last are the earliest and latest message dates, zero when no date parsed.
	First time.Time
	Last  time.Time
}

func Summarize(messages []sms.RawMessage, transactions []Transaction) Summary {
	summary := Summary{
		Messages:     len(messages),
		Transactions: len(transactions),
		Total:        decimal.Zero,
	}

	for _, message := range messages {
		ts, err := message.Time()
		if err != nil {
			continue
		}
		if summary.First.IsZero() || ts.Before(summary.First) {
			summary.First = ts
		}
		if ts.After(summary.Last) {
			summary.Last = ts
		}
	}

	for _, tx := range transactions {
		amount, err := util.AmountToNumeric(tx.Amount)
		if err != nil {
			summary.MissingAmount++
			continue
		}
		summary.Total = summary.Total.Add(amount)
	}

	return summary
}
