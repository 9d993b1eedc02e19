package parsers

import (
	"github.com/momo-data/momo-indexer/sms"
)

// AssembleTransaction builds the transaction for a message, or returns false when the message
// does not classify.
func AssembleTransaction(message sms.RawMessage) (Transaction, bool) {
	txType, ok := Classify(message.Body)
	if !ok {
		return Transaction{}, false
	}

	fields := ExtractFields(message.Body)
	return Transaction{
		Type:       txType,
		Amount:     fields.Amount,
		Recipient:  fields.Recipient,
		RawMessage: message.Body,
	}, true
}

// ProcessMessages keeps the messages that classify, in input order.
func ProcessMessages(messages []sms.RawMessage) []Transaction {
	transactions := make([]Transaction, 0)
	for _, message := range messages {
		if tx, ok := AssembleTransaction(message); ok {
			transactions = append(transactions, tx)
		}
	}
	return transactions
}
