package ingredient

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryUnmarshalBothShapes(t *testing.T) {
	var entries []Entry
	err := json.Unmarshal([]byte(`["salt", {"name": "Tomatoes", "is_main": true}, {"name": "basil"}]`), &entries)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "salt", entries[0].Name)
	assert.True(t, entries[0].IsMain, "bare strings denote essential ingredients")

	assert.Equal(t, "Tomatoes", entries[1].Name)
	assert.True(t, entries[1].IsMain)

	assert.Equal(t, "basil", entries[2].Name)
	assert.False(t, entries[2].IsMain, "is_main defaults to false on structured entries")
}

func TestEntryUnmarshalRejectsOtherShapes(t *testing.T) {
	var e Entry
	assert.Error(t, json.Unmarshal([]byte(`42`), &e))
}

func TestEntryMarshalRoundTrip(t *testing.T) {
	in := []Entry{Bare("salt"), Structured("Tomato", true)}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `["salt", {"name": "Tomato", "is_main": true}]`, string(data))
}

func TestNormalizeMergesDuplicates(t *testing.T) {
	n := Normalize([]Entry{
		Structured("Salt ", false),
		Bare("salt"),
		Structured("Garlic", true),
		Structured("salt", false),
	})

	assert.Equal(t, []string{"salt", "garlic"}, n.Tokens)
	assert.Equal(t, []string{"salt", "garlic"}, n.Main, "is_main ORs across occurrences")

	require.Contains(t, n.Info, "salt")
	assert.Len(t, n.Info["salt"].Originals, 3, "original spellings collapse into a set")
}

func TestNormalizeDropsBlankNames(t *testing.T) {
	n := Normalize([]Entry{
		Structured("", true),
		Structured("   ", true),
		Bare("pepper"),
	})
	assert.Equal(t, []string{"pepper"}, n.Tokens)
}

func TestNormalizeEmptyInput(t *testing.T) {
	n := Normalize(nil)
	assert.Empty(t, n.Tokens)
	assert.Empty(t, n.Main)
}

func TestNormalizeQuery(t *testing.T) {
	got := NormalizeQuery([]string{" Tomato", "", "ONION", "tomato ", "  "})
	assert.Equal(t, []string{"tomato", "onion"}, got)
}
