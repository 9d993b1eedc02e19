package filter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContainsFilter(t *testing.T) {
	caseSensitive := ContainsFilter{Substring: "to"}
	require.True(t, caseSensitive.BodyMatches("sent to Jane"))
	require.True(t, caseSensitive.BodyMatches("Auto payment"))
	require.False(t, caseSensitive.BodyMatches("SENT TO JANE"))

	ignoreCase := ContainsFilter{Substring: "Transferred To", IgnoreCase: true}
	require.True(t, ignoreCase.BodyMatches("1000 RWF TRANSFERRED TO Jane"))
	require.False(t, ignoreCase.BodyMatches("transferred  to Jane"))

	valid, err := ContainsFilter{}.Valid()
	require.False(t, valid)
	require.Error(t, err)
}

func TestAllOfFilter(t *testing.T) {
	f := ContainsAllIgnoreCase("transferred to", "from")

	valid, err := f.Valid()
	require.True(t, valid)
	require.NoError(t, err)

	require.True(t, f.BodyMatches("transferred to Jane from 3652"))
	// order and adjacency do not matter
	require.True(t, f.BodyMatches("FROM your account, 500 RWF was Transferred To Jane"))
	require.False(t, f.BodyMatches("transferred to Jane"))
	require.False(t, f.BodyMatches("received from Jane"))

	valid, err = AllOfFilter{}.Valid()
	require.False(t, valid)
	require.Error(t, err)

	valid, err = AllOfFilter{Filters: []BodyFilter{ContainsFilter{}}}.Valid()
	require.False(t, valid)
	require.Error(t, err)
}

func TestRegexFilter(t *testing.T) {
	f, err := NewRegexFilter(`(?i)you have received (\d+) RWF`)
	require.NoError(t, err)

	valid, err := f.Valid()
	require.True(t, valid)
	require.NoError(t, err)

	require.True(t, f.BodyMatches("YOU HAVE RECEIVED 2000 RWF from Jane"))
	require.False(t, f.BodyMatches("You have received money"))
	require.Equal(t, []string{"You have received 2000 RWF", "2000"}, f.Regex().FindStringSubmatch("You have received 2000 RWF"))

	_, err = NewRegexFilter(`(unclosed`)
	require.Error(t, err)

	valid, err = RegexFilter{Pattern: "x"}.Valid()
	require.False(t, valid)
	require.Error(t, err)
	require.False(t, RegexFilter{Pattern: "x"}.BodyMatches("x"))

	require.Panics(t, func() { MustRegexFilter(`[`) })
}
