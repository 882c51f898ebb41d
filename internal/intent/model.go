// internal/intent/model.go
package intent

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"

	"weatherchat/internal/common/errors"
)

// Model is a multinomial Naive Bayes intent model over stemmed token
// features. It is trained offline, loaded once at process start, and
// read-only afterwards, so concurrent handlers share it without locking.
type Model struct {
	Labels    []Intent                      `json:"labels"`
	LogPrior  map[Intent]float64            `json:"logPrior"`
	LogLikeli map[Intent]map[string]float64 `json:"logLikelihood"`
	// UnseenLog holds the per-class smoothed log-likelihood assigned to
	// tokens absent from that class during training.
	UnseenLog map[Intent]float64 `json:"unseenLog"`
	VocabSize int                `json:"vocabSize"`
}

// Document is one labeled training example, already normalized.
type Document struct {
	Tokens []string
	Label  Intent
}

// Train builds a model from labeled documents with Laplace smoothing.
func Train(docs []Document) (*Model, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("no training documents")
	}

	classDocs := make(map[Intent]int)
	classTokens := make(map[Intent]map[string]int)
	classTotal := make(map[Intent]int)
	vocab := make(map[string]struct{})

	for _, d := range docs {
		if !Valid(string(d.Label)) {
			return nil, fmt.Errorf("unknown intent label %q", d.Label)
		}
		classDocs[d.Label]++
		if classTokens[d.Label] == nil {
			classTokens[d.Label] = make(map[string]int)
		}
		for _, t := range d.Tokens {
			classTokens[d.Label][t]++
			classTotal[d.Label]++
			vocab[t] = struct{}{}
		}
	}

	m := &Model{
		LogPrior:  make(map[Intent]float64, len(classDocs)),
		LogLikeli: make(map[Intent]map[string]float64, len(classDocs)),
		UnseenLog: make(map[Intent]float64, len(classDocs)),
		VocabSize: len(vocab),
	}

	labels := make([]Intent, 0, len(classDocs))
	for label := range classDocs {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })
	m.Labels = labels

	total := float64(len(docs))
	for _, label := range labels {
		m.LogPrior[label] = math.Log(float64(classDocs[label]) / total)

		denom := float64(classTotal[label] + m.VocabSize)
		m.UnseenLog[label] = math.Log(1 / denom)

		likeli := make(map[string]float64, len(classTokens[label]))
		for tok, count := range classTokens[label] {
			likeli[tok] = math.Log(float64(count+1) / denom)
		}
		m.LogLikeli[label] = likeli
	}

	return m, nil
}

// Classify scores the token bag against every class and returns the best
// label with a softmax-normalized confidence.
func (m *Model) Classify(tokens []string) (Intent, float64) {
	if len(m.Labels) == 0 {
		return Unknown, 0
	}

	scores := make([]float64, len(m.Labels))
	for i, label := range m.Labels {
		score := m.LogPrior[label]
		for _, tok := range tokens {
			if ll, ok := m.LogLikeli[label][tok]; ok {
				score += ll
			} else {
				score += m.UnseenLog[label]
			}
		}
		scores[i] = score
	}

	best := 0
	for i := range scores {
		if scores[i] > scores[best] {
			best = i
		}
	}

	// Softmax in log space, shifted by the max for stability.
	var sum float64
	for _, s := range scores {
		sum += math.Exp(s - scores[best])
	}
	confidence := 1 / sum

	return m.Labels[best], confidence
}

// Save writes the model artifact as JSON.
func (m *Model) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal model: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write model: %w", err)
	}
	return nil
}

// LoadModel reads a trained artifact from disk. A missing or unreadable file
// yields ErrModelUnavailable; callers are expected to fall back to the rule
// matcher rather than abort startup.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrModelUnavailable, "read %s: %v", path, err)
	}
	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrModelUnavailable, "decode %s: %v", path, err)
	}
	if len(m.Labels) == 0 || len(m.LogPrior) == 0 {
		return nil, errors.Wrap(errors.ErrModelUnavailable, "model %s is empty", path)
	}
	return &m, nil
}
