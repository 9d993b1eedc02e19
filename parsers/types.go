package parsers

// TransactionType tags a classified message. Messages that do not classify have no type
// and never become a Transaction.
type TransactionType string

const TransferToMobile TransactionType = "Transfer to Mobile Number"

type ExtractedFields struct {
	Amount    string
	Recipient string
}

// Transaction is the record written for every classified message. Field order is the
// order of the keys in the exported file.
type Transaction struct {
	Type       TransactionType `json:"Type"`
	Amount     string          `json:"Amount"`
	Recipient  string          `json:"Recipient/Details"`
	RawMessage string          `json:"Raw Message"`
}

// ExportHeaders are the exported keys, in order.
var ExportHeaders = []string{"Type", "Amount", "Recipient/Details", "Raw Message"}

// Row returns the transaction values in ExportHeaders order.
func (t Transaction) Row() []string {
	return []string{string(t.Type), t.Amount, t.Recipient, t.RawMessage}
}
