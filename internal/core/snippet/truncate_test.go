package snippet

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateUTF8(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		maxBytes      int
		expected      string
		wantTruncated bool
	}{
		{
			name:     "empty",
			text:     "",
			maxBytes: 10,
			expected: "",
		},
		{
			name:     "within budget",
			text:     "hello",
			maxBytes: 10,
			expected: "hello",
		},
		{
			name:     "exactly at budget",
			text:     "hello",
			maxBytes: 5,
			expected: "hello",
		},
		{
			name:          "ascii cut",
			text:          "hello world",
			maxBytes:      5,
			expected:      "hello",
			wantTruncated: true,
		},
		{
			name:          "drops partial two-byte rune",
			text:          "aé",
			maxBytes:      2,
			expected:      "a",
			wantTruncated: true,
		},
		{
			name:          "three-byte runes",
			text:          strings.Repeat("あ", 50),
			maxBytes:      100,
			expected:      strings.Repeat("あ", 33),
			wantTruncated: true,
		},
		{
			name:          "four-byte rune fully dropped",
			text:          "ok😀",
			maxBytes:      5,
			expected:      "ok",
			wantTruncated: true,
		},
		{
			name:          "zero budget",
			text:          "abc",
			maxBytes:      0,
			expected:      "",
			wantTruncated: true,
		},
		{
			name:          "negative budget",
			text:          "abc",
			maxBytes:      -3,
			expected:      "",
			wantTruncated: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := TruncateUTF8(tt.text, tt.maxBytes)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.wantTruncated, truncated)
		})
	}
}

func TestTruncateUTF8_Properties(t *testing.T) {
	inputs := []string{
		strings.Repeat("あ", 50),
		"mixed ascii, ümlauts and 漢字 and 😀 emoji",
		strings.Repeat("é", 7),
	}

	for _, text := range inputs {
		for n := 0; n <= len(text)+1; n++ {
			once, _ := TruncateUTF8(text, n)
			twice, _ := TruncateUTF8(once, n)

			assert.Equal(t, once, twice, "idempotent for n=%d", n)
			assert.True(t, utf8.ValidString(once), "valid for n=%d", n)
			assert.LessOrEqual(t, len(once), n, "budget for n=%d", n)
			assert.True(t, strings.HasPrefix(text, once), "prefix for n=%d", n)
		}
	}
}

func TestTruncateUTF8_ReportsCharacterCount(t *testing.T) {
	got, truncated := TruncateUTF8(strings.Repeat("あ", 50), 100)
	assert.True(t, truncated)
	assert.Equal(t, 33, utf8.RuneCountInString(got))
	assert.Len(t, got, 99)
}
