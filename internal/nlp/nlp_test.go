// internal/nlp/nlp_test.go
package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "lowercases and splits on non-letters",
			input:    "Will it RAIN in Lisbon?",
			expected: []string{"will", "it", "rain", "in", "lisbon"},
		},
		{
			name:     "keeps apostrophes inside tokens",
			input:    "what's the weather",
			expected: []string{"what's", "the", "weather"},
		},
		{
			name:     "drops digits and punctuation",
			input:    "3-day forecast!!",
			expected: []string{"day", "forecast"},
		},
		{
			name:     "empty input",
			input:    "",
			expected: nil,
		},
		{
			name:     "whitespace only",
			input:    "   \t  ",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Tokenize(tt.input))
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "removes stopwords and stems",
			input:    "what is the temperature in Lisbon",
			expected: []string{"temperatur", "lisbon"},
		},
		{
			name:     "raining stems to rain",
			input:    "is it raining",
			expected: []string{"it", "rain"},
		},
		{
			name:     "all stopwords leaves nothing",
			input:    "what is the",
			expected: []string{},
		},
		{
			name:     "empty input",
			input:    "",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestStem(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"raining", "rain"},
		{"rain", "rain"},
		{"temperatures", "temperatur"},
		{"temperature", "temperatur"},
		{"humidity", "humid"},
		{"sunny", "sunni"},
		{"windy", "windi"},
		{"forecast", "forecast"},
		{"snowing", "snow"},
		{"cloudy", "cloudi"},
		{"it", "it"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Stem(tt.input))
		})
	}
}

func TestStem_RelatedFormsCollapse(t *testing.T) {
	// Inflected variants of the same vocabulary word must map to one stem,
	// otherwise training and classification drift apart.
	pairs := [][2]string{
		{"raining", "rains"},
		{"snowing", "snows"},
		{"cloudy", "cloudi"},
	}
	for _, p := range pairs {
		assert.Equal(t, Stem(p[0]), Stem(p[1]), "%s vs %s", p[0], p[1])
	}
}

func TestFeatures(t *testing.T) {
	feats := Features([]string{"rain", "lisbon", "rain"})
	assert.Equal(t, map[string]bool{"rain": true, "lisbon": true}, feats)

	assert.Empty(t, Features(nil))
}
