package parsers

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractAmount(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"plain", "*165*S*1000 RWF transferred to Samuel Carter", "1000"},
		{"grouped", "You have transferred to Jane 10,000 RWF from your account", "10,000"},
		{"millions", "1,250,000 RWF transferred to Jane from 1", "1,250,000"},
		{"no space", "1234RWF transferred to Jane from 1", "1234"},
		{"several spaces", "500   RWF transferred", "500"},
		{"non breaking space", "1,500\u00a0RWF transferred", "1,500"},
		{"first match wins", "500 RWF transferred. Fee was: 100 RWF. New balance: 28300 RWF.", "500"},
		// digits before the marker belong to the phone number, not to the amount after it
		{"marker before amount", "You have transferred to 250788123456 RWF 10,000 from your MoMo account...", "250788123456"},
		{"only marker before amount", "RWF 10,000 transferred to Jane from 1", ""},
		{"broken grouping", "12,34 RWF", "34"},
		{"long run before group", "12345,678 RWF", "345,678"},
		{"lower case marker", "500 rwf transferred", ""},
		{"no marker", "500 transferred to Jane from 1", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ExtractAmount(tt.body))
		})
	}
}

func TestExtractRecipient(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			"transfer",
			"*165*S*1000 RWF transferred to Samuel Carter (250791666666) from 36521838 at 2024-05-10 21:32:32 . Fee was: 100 RWF.",
			"Samuel Carter",
		},
		{
			"no at",
			"You have transferred to 250788123456 RWF 10,000 from your MoMo account...",
			"250788123456 RWF 10,000 from your MoMo account...",
		},
		{"parenthesis first", "transferred to (0788) Jane at 10:00", ""},
		{"last to wins", "Sent to Jane, transferred to Bob from 1", "Bob from 1"},
		{"to inside a word", "500 RWF transferred to Bob from your account, paid via Autopay", "pay"},
		{"at inside a word", "500 RWF transferred to Nathalie from 1234", "N"},
		{"at inside saturday", "transferred to Bob from 1 on Saturday", "Bob from 1 on S"},
		{"upper case to", "TRANSFERRED TO JANE FROM 1", ""},
		{"no to", "You have received 2000 RWF from Jane Smith", ""},
		{"to at the end", "transferred to", ""},
		{"surrounding whitespace", "to \t Jane \n", "Jane"},
		{"unicode whitespace", "to\u00a0Jane\u2009(078)", "Jane"},
		{"separator controls", "to\x1cJane\x1f", "Jane"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ExtractRecipient(tt.body))
		})
	}
}

func TestExtractFields(t *testing.T) {
	fields := ExtractFields("*165*S*1000 RWF transferred to Samuel Carter (250791666666) from 36521838 at 2024-05-10 21:32:32 .")
	require.Equal(t, ExtractedFields{Amount: "1000", Recipient: "Samuel Carter"}, fields)

	fields = ExtractFields("no markers here")
	require.Equal(t, ExtractedFields{}, fields)
}

func TestSplitPatternWithoutMarkers(t *testing.T) {
	p := SplitPattern{After: ":"}
	require.Equal(t, "value", p.Extract("key:  value "))
	require.Equal(t, "", p.Extract("no separator"))
	require.Equal(t, "value", p.Extract("a:b: \u00a0value\n"))
}

func TestComposedPatterns(t *testing.T) {
	either := regexp.MustCompile(`(?i)(payment of (\d+) RWF to Bundles|igura (\d+) RWF)`)
	amount := FirstOfPattern{RegexPattern{Regex: either, Group: 2}, RegexPattern{Regex: either, Group: 3}}

	require.Equal(t, "2000", amount.Extract("Your payment of 2000 RWF to Bundles and Packs"))
	require.Equal(t, "500", amount.Extract("Umaze kugura 1GB igura 500 RWF"))
	require.Equal(t, "", amount.Extract("nothing to see"))
	require.Equal(t, "", FirstOfPattern{}.Extract("anything"))

	name := TrimmedPattern{Pattern: RegexPattern{Regex: regexp.MustCompile(`by (.+?) on`), Group: 1}}
	require.Equal(t, "Jane Smith", name.Extract("by  Jane Smith  on your account"))
	require.Equal(t, "", name.Extract("no match"))
}
