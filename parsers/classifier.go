package parsers

import (
	"github.com/momo-data/momo-indexer/filter"
)

type classificationRule struct {
	Type   TransactionType
	Filter filter.BodyFilter
}

// Rules are tried in order, the first match wins.
var classificationRules = []classificationRule{
	{
		Type:   TransferToMobile,
		Filter: filter.ContainsAllIgnoreCase("transferred to", "from"),
	},
}

// Classify returns the transaction type of a message body, or false when the body is not a
// recognized transaction.
func Classify(body string) (TransactionType, bool) {
	for _, rule := range classificationRules {
		if rule.Filter.BodyMatches(body) {
			return rule.Type, true
		}
	}
	return "", false
}
