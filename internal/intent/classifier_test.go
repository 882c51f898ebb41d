// internal/intent/classifier_test.go
package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weatherchat/internal/common/logger"
)

func TestClassifier_NoModelFallsBackToRules(t *testing.T) {
	c := NewClassifier(nil, 0.55, logger.Nop())

	pred := c.Classify("is it raining in Seattle", []string{"rain", "seattl"})
	assert.Equal(t, RainNow, pred.Intent)
	assert.Equal(t, "rules", pred.Source)
}

func TestClassifier_ConfidentModelWins(t *testing.T) {
	model, err := Train(trainingDocs())
	require.NoError(t, err)

	// Threshold zero: any model prediction passes.
	c := NewClassifier(model, 0, logger.Nop())

	pred := c.Classify("rain now", []string{"rain", "now"})
	assert.Equal(t, RainNow, pred.Intent)
	assert.Equal(t, "model", pred.Source)
}

func TestClassifier_LowConfidenceFallsBackToRules(t *testing.T) {
	model, err := Train(trainingDocs())
	require.NoError(t, err)

	// An impossible threshold forces the fallback on every query.
	c := NewClassifier(model, 1.01, logger.Nop())

	pred := c.Classify("is it raining", []string{"rain"})
	assert.Equal(t, RainNow, pred.Intent)
	assert.Equal(t, "rules", pred.Source)
}

func TestClassifier_EmptyTokens(t *testing.T) {
	model, err := Train(trainingDocs())
	require.NoError(t, err)
	c := NewClassifier(model, 0.55, logger.Nop())

	pred := c.Classify("", nil)
	assert.Equal(t, Unknown, pred.Intent)
	assert.Zero(t, pred.Confidence)
}

func TestClassifier_SameInputSameResult(t *testing.T) {
	model, err := Train(trainingDocs())
	require.NoError(t, err)
	c := NewClassifier(model, 0.55, logger.Nop())

	first := c.Classify("will it rain tomorrow", []string{"rain", "tomorrow"})
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, c.Classify("will it rain tomorrow", []string{"rain", "tomorrow"}))
	}
}
