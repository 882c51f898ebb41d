// internal/sentiment/analyzer_test.go
package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzer_Analyze(t *testing.T) {
	a := NewAnalyzer()

	tests := []struct {
		name     string
		text     string
		expected Label
	}{
		{"plain question is neutral", "will it rain in Lisbon tomorrow", Neutral},
		{"empty is neutral", "", Neutral},
		{"clearly negative", "ugh this terrible weather ruined my plans", Negative},
		{"clearly positive", "thanks, that was really great", Positive},
		{"intensified negative", "I'm really worried the storm will be awful", Negative},
		{"negation flips polarity", "not bad at all", Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, a.Analyze(tt.text))
		})
	}
}

func TestAnalyzer_Score(t *testing.T) {
	a := NewAnalyzer()

	assert.Zero(t, a.Score(""))
	assert.Greater(t, a.Score("great lovely wonderful"), 0.0)
	assert.Less(t, a.Score("terrible awful miserable"), 0.0)

	// Scores stay within roughly [-1, 1] even for pile-ups.
	long := "terrible awful horrible miserable hate ruined bad annoying"
	assert.GreaterOrEqual(t, a.Score(long), -1.0)
}

func TestAnalyzer_Intensifiers(t *testing.T) {
	a := NewAnalyzer()
	assert.Less(t, a.Score("really terrible"), a.Score("terrible"))
}
