// internal/intent/classifier.go
package intent

import (
	"weatherchat/internal/common/logger"
)

// Source is one way of producing an intent prediction. Two variants exist:
// the statistical model and the deterministic rule matcher. The classifier
// selects between them by availability and confidence, never by user input.
type Source interface {
	Name() string
	// Classify returns a prediction and whether this source could produce
	// one at all.
	Classify(rawText string, tokens []string) (Prediction, bool)
}

// statisticalSource wraps the trained Naive Bayes model. With no model
// loaded it declines every query.
type statisticalSource struct {
	model *Model
}

func (s *statisticalSource) Name() string { return "model" }

func (s *statisticalSource) Classify(_ string, tokens []string) (Prediction, bool) {
	if s.model == nil || len(tokens) == 0 {
		return Prediction{}, false
	}
	label, confidence := s.model.Classify(tokens)
	return Prediction{Intent: label, Confidence: confidence, Source: s.Name()}, true
}

// ruleSource wraps the keyword cascade. It always produces a prediction.
type ruleSource struct{}

func (r *ruleSource) Name() string { return "rules" }

func (r *ruleSource) Classify(rawText string, _ []string) (Prediction, bool) {
	return MatchRules(rawText), true
}

// Classifier routes between the statistical and rule-based sources: the
// model wins when it is present and confident, the rules otherwise. The
// system therefore degrades instead of crashing when no model artifact
// exists.
type Classifier struct {
	sources   []Source
	threshold float64
	logger    logger.Logger
}

// NewClassifier builds the classifier. model may be nil.
func NewClassifier(model *Model, threshold float64, log logger.Logger) *Classifier {
	return &Classifier{
		sources: []Source{
			&statisticalSource{model: model},
			&ruleSource{},
		},
		threshold: threshold,
		logger:    log.With(map[string]interface{}{"component": "classifier"}),
	}
}

// Classify returns the intent for the query. Empty input maps to Unknown
// without consulting any source.
func (c *Classifier) Classify(rawText string, tokens []string) Prediction {
	if len(tokens) == 0 {
		return Prediction{Intent: Unknown, Confidence: 0, Source: "rules"}
	}

	for _, src := range c.sources {
		pred, ok := src.Classify(rawText, tokens)
		if !ok {
			continue
		}
		if src.Name() == "model" && pred.Confidence < c.threshold {
			c.logger.Debug("model confidence below threshold, falling back to rules",
				map[string]interface{}{
					"intent":     string(pred.Intent),
					"confidence": pred.Confidence,
					"threshold":  c.threshold,
				})
			continue
		}
		return pred
	}

	return Prediction{Intent: Unknown, Confidence: 0, Source: "rules"}
}
