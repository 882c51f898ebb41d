// internal/orchestrator/orchestrator.go
//
// Sequences the pipeline per incoming query and owns the fallback and
// error-recovery policy. Every path, including every failure branch, ends
// in a composed Reply: nothing below this package ever reaches the
// transport as a fault.
package orchestrator

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"weatherchat/internal/common/errors"
	"weatherchat/internal/common/logger"
	"weatherchat/internal/common/metrics"
	"weatherchat/internal/composer"
	"weatherchat/internal/entities"
	"weatherchat/internal/geo"
	"weatherchat/internal/intent"
	"weatherchat/internal/models"
	"weatherchat/internal/nlp"
	"weatherchat/internal/sentiment"
	"weatherchat/internal/weather"
)

// State names the pipeline stages, for logs.
type State string

const (
	StateReceived          State = "received"
	StateClassified        State = "classified"
	StateEntitiesExtracted State = "entities_extracted"
	StateLocationResolved  State = "location_resolved"
	StateLocationFailed    State = "location_failed"
	StateWeatherFetched    State = "weather_fetched"
	StateWeatherFailed     State = "weather_failed"
	StateComposed          State = "composed"
)

// Orchestrator wires the pipeline stages together. It holds no per-query
// state, so one instance serves concurrent requests.
type Orchestrator struct {
	classifier *intent.Classifier
	resolver   *geo.Resolver
	fetcher    *weather.Fetcher
	composer   *composer.Composer
	sentiment  *sentiment.Analyzer
	logger     logger.Logger
	now        func() time.Time
}

func New(classifier *intent.Classifier, resolver *geo.Resolver, fetcher *weather.Fetcher, log logger.Logger) *Orchestrator {
	return &Orchestrator{
		classifier: classifier,
		resolver:   resolver,
		fetcher:    fetcher,
		composer:   composer.New(),
		sentiment:  sentiment.NewAnalyzer(),
		logger:     log.With(map[string]interface{}{"component": "orchestrator"}),
		now:        time.Now,
	}
}

// WithClock fixes the reference time. Tests use it to pin time-window
// resolution.
func (o *Orchestrator) WithClock(now func() time.Time) *Orchestrator {
	o.now = now
	return o
}

// Handle runs one query through the pipeline and always returns a Reply.
func (o *Orchestrator) Handle(ctx context.Context, q models.Query) models.Reply {
	queryID := uuid.NewString()
	log := o.logger.With(map[string]interface{}{"queryId": queryID})
	started := o.now()
	state := StateReceived

	pred, reply := o.run(ctx, q, log, &state)

	metrics.QueriesTotal.WithLabelValues(string(pred.Intent), pred.Source).Inc()
	metrics.QueryDuration.WithLabelValues(string(pred.Intent)).Observe(time.Since(started).Seconds())

	log.Info("query handled", map[string]interface{}{
		"intent":     string(pred.Intent),
		"source":     pred.Source,
		"finalState": string(state),
	})
	return reply
}

func (o *Orchestrator) run(ctx context.Context, q models.Query, log logger.Logger, state *State) (intent.Prediction, models.Reply) {
	text := strings.TrimSpace(q.Text)

	// Classify. Empty or whitespace-only text is not an error: it maps to
	// the unknown intent.
	tokens := nlp.Normalize(text)
	pred := o.classifier.Classify(text, tokens)
	*state = StateClassified
	log.Debug("classified", map[string]interface{}{
		"intent":     string(pred.Intent),
		"confidence": pred.Confidence,
		"source":     pred.Source,
	})

	// greeting/help skip straight to composition: no entities, no lookups.
	switch pred.Intent {
	case intent.Greeting:
		*state = StateComposed
		return pred, models.Reply{Text: o.composer.Greeting()}
	case intent.Help:
		*state = StateComposed
		return pred, models.Reply{Text: o.composer.Help()}
	}

	ents := entities.Extract(text)
	ents.Override = q.Coordinates
	*state = StateEntitiesExtracted

	tone := o.sentiment.Analyze(text)

	// Unknown intent without coordinates gets the clarification request
	// instead of a doomed lookup.
	if pred.Intent == intent.Unknown && ents.Override == nil {
		*state = StateComposed
		return pred, models.Reply{Text: o.composer.Unknown()}
	}

	if !ents.HasLocation() {
		*state = StateComposed
		return pred, models.Reply{Text: o.composer.NeedLocation()}
	}

	loc, err := o.resolver.Resolve(ctx, ents.LocationPhrase, ents.Override)
	if err != nil {
		*state = StateLocationFailed
		metrics.QueryFailures.WithLabelValues(errors.Code(err)).Inc()
		log.Info("location resolution failed", map[string]interface{}{
			"phrase": ents.LocationPhrase,
			"error":  err.Error(),
		})
		*state = StateComposed
		return pred, models.Reply{Text: o.composer.LocationNotFound(ents.LocationPhrase)}
	}
	*state = StateLocationResolved

	window := ents.Window(o.now())

	result, err := o.fetcher.Fetch(ctx, loc, window)
	if err != nil {
		*state = StateWeatherFailed
		metrics.QueryFailures.WithLabelValues(errors.Code(err)).Inc()
		log.Info("weather fetch failed", map[string]interface{}{
			"location": loc.DisplayName,
			"error":    err.Error(),
		})
		*state = StateComposed
		return pred, models.Reply{Text: o.composer.WeatherUnavailable(loc.DisplayName, tone)}
	}
	*state = StateWeatherFetched

	reply := o.composer.Forecast(pred, ents, loc, result, tone)
	*state = StateComposed
	return pred, models.Reply{Text: reply}
}
