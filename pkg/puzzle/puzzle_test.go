package puzzle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"  ??AI? ", "??ai?"},
		{"c a t", "cat"},
		{"t.e*", "t?e?"},
		{"wh…", "wh???"},
		{"can't", "can't"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.raw), "raw %q", tt.raw)
	}
	assert.Equal(t, "er", NormalizeAbsent(" E R\t"))
}

func TestNewQueryCryptogramKeepsCase(t *testing.T) {
	q := NewQuery(Cryptogram, " XyZ ", "Q")
	assert.Equal(t, "XyZ", q.Pattern)
	assert.Equal(t, "q", q.Absent)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("wheeloffortune")
	require.NoError(t, err)
	assert.Equal(t, WheelOfFortune, m)

	_, err = ParseMode("scrabble")
	assert.True(t, errors.Is(err, ErrUnknownMode))

	assert.True(t, WheelOfFortune.RanksLetters())
	assert.True(t, Cryptogram.RanksLetters())
	assert.False(t, Crossword.RanksLetters())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		q       Query
		wantErr string
	}{
		{"ok", Query{Mode: WheelOfFortune, Pattern: "c??'t"}, ""},
		{"hyphen", Query{Mode: Crossword, Pattern: "x-ray"}, ""},
		{"empty", Query{Mode: WheelOfFortune}, "no pattern specified"},
		{"digits", Query{Mode: WheelOfFortune, Pattern: "a1?"}, "disallowed characters in pattern"},
		{"wildcard in cryptogram", Query{Mode: Cryptogram, Pattern: "AB?"}, "disallowed characters in pattern"},
		{"too long", Query{Mode: Crossword, Pattern: "abcdefghijklmnopqrstu"}, "pattern too long"},
		{"bad absent", Query{Mode: WheelOfFortune, Pattern: "a?", Absent: "e!"}, "disallowed characters in absent_letters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.q.Validate(DefaultMaxPatternLen)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.EqualError(t, err, tt.wantErr)
			assert.True(t, errors.Is(err, ErrInvalidPattern))
		})
	}
}

func TestKnownLetters(t *testing.T) {
	assert.Equal(t, "aeir", Query{Mode: WheelOfFortune, Pattern: "??ai?", Absent: "er"}.KnownLetters().String())
	assert.Equal(t, "er", Query{Mode: Crossword, Pattern: "??ai?", Absent: "er"}.KnownLetters().String())
	assert.Equal(t, "eqt", Query{Mode: Cryptogram, Pattern: "tXe", Absent: "q"}.KnownLetters().String())
}

func TestMatcherWheelOfFortune(t *testing.T) {
	m := Compile(Query{Mode: WheelOfFortune, Pattern: "t?e?"})
	assert.Equal(t, "t", m.LiteralPrefix())
	assert.Equal(t, 4, m.Len())

	assert.True(t, m.Match("thed"))
	assert.False(t, m.Match("tree"), "revealed letters cannot fill a wildcard")
	assert.False(t, m.Match("trees"))
	assert.False(t, m.Match("thee"))

	absent := Compile(Query{Mode: WheelOfFortune, Pattern: "t?e", Absent: "h"})
	assert.False(t, absent.Match("the"))
	assert.True(t, absent.Match("tie"))
}

func TestMatcherCrossword(t *testing.T) {
	m := Compile(Query{Mode: Crossword, Pattern: "t?e?"})
	assert.True(t, m.Match("tree"))
	assert.True(t, m.Match("thee"))
	assert.False(t, m.Match("tr'e"))
}

func TestMatcherApostrophe(t *testing.T) {
	m := Compile(Query{Mode: WheelOfFortune, Pattern: "c??'t"})
	assert.Equal(t, "c", m.LiteralPrefix())
	assert.True(t, m.Match("can't"))
	assert.False(t, m.Match("cant"))
}

func TestMatcherNoWildcard(t *testing.T) {
	m := Compile(Query{Mode: WheelOfFortune, Pattern: "is"})
	assert.Equal(t, "is", m.LiteralPrefix())
	assert.True(t, m.Match("is"))
	assert.False(t, m.Match("it"))
}

func TestMatcherCryptogram(t *testing.T) {
	m := Compile(Query{Mode: Cryptogram, Pattern: "XYX"})
	assert.Equal(t, "", m.LiteralPrefix())

	assert.True(t, m.Match("did"))
	assert.True(t, m.Match("eve"))
	assert.False(t, m.Match("xyx"), "a placeholder never decodes to itself")
}

func TestMatcherCryptogramRules(t *testing.T) {
	tests := []struct {
		pattern string
		absent  string
		word    string
		want    bool
	}{
		{"XYX", "", "did", true},
		{"XYX", "", "dad", true},
		{"XYX", "", "dda", false},
		{"XY", "", "aa", false}, // distinct placeholders need distinct letters
		{"AB", "", "an", false}, // A cannot decode to a
		{"AB", "", "on", true},
		{"tXe", "", "the", true},
		{"tXe", "", "tee", false}, // e is already solved
		{"tXe", "h", "the", false},
	}
	for _, tt := range tests {
		m := Compile(Query{Mode: Cryptogram, Pattern: tt.pattern, Absent: tt.absent})
		assert.Equal(t, tt.want, m.Match(tt.word), "%s/%s ~ %s", tt.pattern, tt.absent, tt.word)
	}
}

func TestQueryValues(t *testing.T) {
	q := Query{Mode: WheelOfFortune, Pattern: "??ai?", Absent: "er"}
	assert.Equal(t, "absent_letters=er&mode=WheelOfFortune&pattern=%3F%3Fai%3F", q.Values().Encode())

	bare := Query{Pattern: "t?e"}
	assert.Equal(t, "pattern=t%3Fe", bare.Values().Encode())
	assert.Equal(t, "WheelOfFortune ??ai? -er", q.String())
}
