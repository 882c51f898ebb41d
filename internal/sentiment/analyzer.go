// internal/sentiment/analyzer.go
//
// Lexical sentiment scoring used only to soften the tone of some replies.
// It decorates the reply and is never required for correctness: with a
// neutral or unknown score the reply is unchanged.
package sentiment

import (
	"math"
	"strings"
)

// Label is the coarse sentiment of a message.
type Label string

const (
	Positive Label = "positive"
	Negative Label = "negative"
	Neutral  Label = "neutral"
)

var positiveWords = map[string]float64{
	"great": 1, "good": 0.8, "nice": 0.8, "lovely": 1, "beautiful": 1,
	"awesome": 1.2, "thanks": 0.8, "thank": 0.8, "perfect": 1.2, "happy": 1,
	"wonderful": 1.2, "amazing": 1.2, "love": 1, "sunny": 0.4, "please": 0.2,
}

var negativeWords = map[string]float64{
	"bad": -0.8, "terrible": -1.2, "awful": -1.2, "horrible": -1.2,
	"hate": -1, "annoying": -0.8, "worried": -0.8, "worry": -0.8,
	"ruin": -1, "ruined": -1, "miserable": -1.2, "ugh": -0.8, "damn": -0.8,
	"stuck": -0.6, "cancel": -0.4, "cancelled": -0.6, "storm": -0.3,
}

var intensifiers = map[string]float64{
	"very": 1.4, "really": 1.3, "so": 1.2, "extremely": 1.6, "totally": 1.3,
}

// negations flip the polarity of the following sentiment word.
var negations = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "dont": {}, "don't": {}, "cant": {}, "can't": {},
}

const threshold = 0.35

// Analyzer scores text against the lexicon. Stateless and safe for
// concurrent use.
type Analyzer struct{}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze returns the coarse sentiment of the message.
func (a *Analyzer) Analyze(text string) Label {
	score := a.Score(text)
	switch {
	case score >= threshold:
		return Positive
	case score <= -threshold:
		return Negative
	}
	return Neutral
}

// Score computes a compound score in roughly [-1, 1].
func (a *Analyzer) Score(text string) float64 {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return 0
	}

	var sum float64
	mult := 1.0
	negate := false
	for _, raw := range words {
		w := strings.Trim(raw, ".,!?;:'\"")

		if factor, ok := intensifiers[w]; ok {
			mult *= factor
			continue
		}
		if _, ok := negations[w]; ok {
			negate = true
			continue
		}

		v, hit := positiveWords[w]
		if !hit {
			v, hit = negativeWords[w]
		}
		if hit {
			if negate {
				v = -v
			}
			sum += v * mult
		}
		mult = 1.0
		negate = false
	}

	// Normalize so long messages do not saturate.
	return sum / math.Sqrt(sum*sum+15)
}
