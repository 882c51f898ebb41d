// internal/intent/model_test.go
package intent

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weatherchat/internal/common/errors"
)

func trainingDocs() []Document {
	return []Document{
		{Tokens: []string{"temperatur", "outsid"}, Label: TemperatureNow},
		{Tokens: []string{"hot", "todai"}, Label: TemperatureNow},
		{Tokens: []string{"cold", "temperatur"}, Label: TemperatureNow},
		{Tokens: []string{"rain", "now"}, Label: RainNow},
		{Tokens: []string{"umbrella", "rain"}, Label: RainNow},
		{Tokens: []string{"rain", "outsid"}, Label: RainNow},
		{Tokens: []string{"rain", "tomorrow"}, Label: TomorrowRain},
		{Tokens: []string{"umbrella", "tomorrow"}, Label: TomorrowRain},
		{Tokens: []string{"wind", "speed"}, Label: WindNow},
		{Tokens: []string{"windi", "outsid"}, Label: WindNow},
	}
}

// ==========================
// Training
// ==========================

func TestTrain(t *testing.T) {
	model, err := Train(trainingDocs())
	require.NoError(t, err)

	assert.ElementsMatch(t, []Intent{TemperatureNow, RainNow, TomorrowRain, WindNow}, model.Labels)
	assert.Greater(t, model.VocabSize, 0)

	// Priors reflect class frequency: three rain_now docs out of ten.
	assert.InDelta(t, -1.204, model.LogPrior[RainNow], 0.01)

	// Every log-likelihood is negative and seen tokens beat the smoothed
	// unseen baseline.
	for _, label := range model.Labels {
		assert.Less(t, model.UnseenLog[label], 0.0)
		for tok, ll := range model.LogLikeli[label] {
			assert.Less(t, ll, 0.0, "token %s", tok)
			assert.Greater(t, ll, model.UnseenLog[label], "token %s", tok)
		}
	}
}

func TestTrain_Errors(t *testing.T) {
	_, err := Train(nil)
	assert.Error(t, err)

	_, err = Train([]Document{{Tokens: []string{"x"}, Label: Intent("bogus")}})
	assert.Error(t, err)
}

// ==========================
// Classification
// ==========================

func TestModel_Classify(t *testing.T) {
	model, err := Train(trainingDocs())
	require.NoError(t, err)

	tests := []struct {
		name     string
		tokens   []string
		expected Intent
	}{
		{"clear temperature query", []string{"temperatur", "outsid"}, TemperatureNow},
		{"clear rain query", []string{"rain", "now"}, RainNow},
		{"tomorrow steers to tomorrow_rain", []string{"rain", "tomorrow"}, TomorrowRain},
		{"wind query", []string{"wind", "speed"}, WindNow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, confidence := model.Classify(tt.tokens)
			assert.Equal(t, tt.expected, label)
			assert.Greater(t, confidence, 0.0)
			assert.LessOrEqual(t, confidence, 1.0)
		})
	}
}

func TestModel_Classify_UnseenTokensLowConfidence(t *testing.T) {
	model, err := Train(trainingDocs())
	require.NoError(t, err)

	_, clear := model.Classify([]string{"rain", "now"})
	_, vague := model.Classify([]string{"zebra", "quantum"})

	// Tokens no class has seen cannot separate the classes.
	assert.Greater(t, clear, vague)
}

// ==========================
// Artifact round trip
// ==========================

func TestModel_SaveAndLoad(t *testing.T) {
	model, err := Train(trainingDocs())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "intent_model.json")
	require.NoError(t, model.Save(path))

	loaded, err := LoadModel(path)
	require.NoError(t, err)

	assert.Equal(t, model.Labels, loaded.Labels)
	assert.Equal(t, model.VocabSize, loaded.VocabSize)

	wantLabel, wantConf := model.Classify([]string{"rain", "tomorrow"})
	gotLabel, gotConf := loaded.Classify([]string{"rain", "tomorrow"})
	assert.Equal(t, wantLabel, gotLabel)
	assert.InDelta(t, wantConf, gotConf, 1e-9)
}

func TestLoadModel_Unavailable(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadModel(filepath.Join(t.TempDir(), "absent.json"))
		assert.True(t, errors.Is(err, errors.ErrModelUnavailable))
	})

	t.Run("corrupt file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "corrupt.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
		_, err := LoadModel(path)
		assert.True(t, errors.Is(err, errors.ErrModelUnavailable))
	})

	t.Run("empty model", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.json")
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
		_, err := LoadModel(path)
		assert.True(t, errors.Is(err, errors.ErrModelUnavailable))
	})
}
