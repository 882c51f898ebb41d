// cmd/tools/model-trainer/main.go
//
// Offline trainer for the intent model. Reads a labeled examples file,
// validates it, trains the Naive Bayes model, reports held-out accuracy
// and the most informative features, then writes the JSON artifact the
// server loads at startup.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"weatherchat/internal/common/logger"
	"weatherchat/internal/intent"
	"weatherchat/internal/nlp"
)

const minExamples = 20

const trainingSchema = `{
  "type": "object",
  "required": ["examples"],
  "properties": {
    "examples": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["text", "label"],
        "properties": {
          "text":  {"type": "string", "minLength": 1},
          "label": {"type": "string", "minLength": 1}
        }
      }
    }
  }
}`

type trainingFile struct {
	Examples []trainingExample `json:"examples"`
}

type trainingExample struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

func main() {
	var (
		inputPath  = flag.String("input", "data/training_intents.json", "labeled examples file")
		outputPath = flag.String("output", "models/intent_model.json", "model artifact to write")
		holdout    = flag.Float64("holdout", 0.2, "fraction of examples held out for evaluation")
		seed       = flag.Int64("seed", 42, "shuffle seed for the train/eval split")
		topN       = flag.Int("top", 10, "informative features to report per label")
	)
	flag.Parse()

	zapLog := logger.New("info", "console")
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	raw, err := os.ReadFile(*inputPath)
	if err != nil {
		zapLog.Fatal("read training file", zap.Error(err))
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(trainingSchema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		zapLog.Fatal("schema validation", zap.Error(err))
	}
	if !result.Valid() {
		for _, desc := range result.Errors() {
			log.Error("invalid training example", map[string]interface{}{"problem": desc.String()})
		}
		os.Exit(1)
	}

	var tf trainingFile
	if err := json.Unmarshal(raw, &tf); err != nil {
		zapLog.Fatal("decode training file", zap.Error(err))
	}
	if len(tf.Examples) < minExamples {
		zapLog.Fatal("not enough examples",
			zap.Int("got", len(tf.Examples)), zap.Int("need", minExamples))
	}

	docs := make([]intent.Document, 0, len(tf.Examples))
	for i, ex := range tf.Examples {
		if !intent.Valid(ex.Label) {
			zapLog.Fatal("unknown label", zap.Int("example", i), zap.String("label", ex.Label))
		}
		tokens := nlp.Normalize(ex.Text)
		if len(tokens) == 0 {
			log.Warn("example has no usable tokens, skipping", map[string]interface{}{
				"example": i,
				"text":    ex.Text,
			})
			continue
		}
		docs = append(docs, intent.Document{Tokens: tokens, Label: intent.Intent(ex.Label)})
	}

	rng := rand.New(rand.NewSource(*seed))
	rng.Shuffle(len(docs), func(i, j int) { docs[i], docs[j] = docs[j], docs[i] })

	split := len(docs) - int(float64(len(docs))*(*holdout))
	trainDocs, evalDocs := docs[:split], docs[split:]

	model, err := intent.Train(trainDocs)
	if err != nil {
		zapLog.Fatal("training failed", zap.Error(err))
	}

	log.Info("model trained", map[string]interface{}{
		"examples":  len(trainDocs),
		"labels":    len(model.Labels),
		"vocabSize": model.VocabSize,
	})

	if len(evalDocs) > 0 {
		correct := 0
		for _, d := range evalDocs {
			got, _ := model.Classify(d.Tokens)
			if got == d.Label {
				correct++
			}
		}
		log.Info("held-out accuracy", map[string]interface{}{
			"correct":  correct,
			"total":    len(evalDocs),
			"accuracy": fmt.Sprintf("%.2f", float64(correct)/float64(len(evalDocs))),
		})
	}

	reportInformativeFeatures(model, *topN)

	if err := model.Save(*outputPath); err != nil {
		zapLog.Fatal("save model", zap.Error(err))
	}
	log.Info("model written", map[string]interface{}{"path": *outputPath})
}

// reportInformativeFeatures prints, per label, the tokens whose likelihood
// exceeds the smoothed unseen baseline by the widest margin.
func reportInformativeFeatures(m *intent.Model, topN int) {
	type feature struct {
		token  string
		margin float64
	}
	for _, label := range m.Labels {
		features := make([]feature, 0, len(m.LogLikeli[label]))
		for tok, ll := range m.LogLikeli[label] {
			features = append(features, feature{tok, ll - m.UnseenLog[label]})
		}
		sort.Slice(features, func(i, j int) bool { return features[i].margin > features[j].margin })
		if len(features) > topN {
			features = features[:topN]
		}
		fmt.Printf("%s:", label)
		for _, f := range features {
			fmt.Printf(" %s", f.token)
		}
		fmt.Println()
	}
}
