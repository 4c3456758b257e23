// Package assistant orchestrates the ask flow: classify the question,
// fetch the price data the intent calls for, compute trend insight and
// fuse everything into one reply via the LLM when it is available.
package assistant

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/simplifymoney/kuberai-backend/internal/classify"
	"github.com/simplifymoney/kuberai-backend/internal/goldprice"
	"github.com/simplifymoney/kuberai-backend/internal/models"
)

// PriceSource resolves spot and history with the live/backup fallback
// chain already applied.
type PriceSource interface {
	CurrentPrice(ctx context.Context) (*models.PriceQuote, error)
	History(ctx context.Context, days int) (*models.PriceHistory, error)
}

// BackupLoader exposes the raw backup series for trend computation when
// no intent-specific history was fetched.
type BackupLoader interface {
	Load() []models.PricePoint
}

type Service struct {
	classifier classify.Classifier
	prices     PriceSource
	backup     BackupLoader
	gen        classify.TextGenerator // nil when no LLM credential is configured
	log        zerolog.Logger
}

func New(classifier classify.Classifier, prices PriceSource, backup BackupLoader, gen classify.TextGenerator, log zerolog.Logger) *Service {
	return &Service{
		classifier: classifier,
		prices:     prices,
		backup:     backup,
		gen:        gen,
		log:        log,
	}
}

// Ask answers one user question. It never fails: any unexpected error
// inside the pipeline is converted into the fallback reply shape.
func (s *Service) Ask(ctx context.Context, question string) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Any("panic", r).Str("question", question).Msg("ask pipeline panicked, composing fallback reply")
			resp = s.safetyNet(question)
		}
	}()

	isGold := s.classifier.IsGoldQuery(ctx, question)

	var (
		extraData map[string]any
		trendText string
	)
	if isGold {
		intent := s.classifier.ClassifyIntent(ctx, question)
		var fetched *models.PriceHistory
		extraData, fetched = s.fetchIntentData(ctx, intent)

		series := s.trendSeries(fetched)
		if len(series) > 0 {
			trendText = goldprice.TrendText(series)
		}
	}

	var aiAnswer string
	if s.gen != nil && isGold {
		aiAnswer = s.generateAnswer(ctx, question, extraData, trendText)
	}

	return compose(isGold, aiAnswer, trendText)
}

// fetchIntentData pulls the price data the intent calls for. Fetch
// errors never escape: the unavailable state is tagged into the prompt
// data instead so the LLM can acknowledge it.
func (s *Service) fetchIntentData(ctx context.Context, intent classify.Intent) (map[string]any, *models.PriceHistory) {
	data := map[string]any{}

	switch intent {
	case classify.IntentCurrentPrice:
		quote, err := s.prices.CurrentPrice(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("current price unavailable")
			data["error"] = err.Error()
			return data, nil
		}
		data["source"] = quote.Source
		data["current_price_inr_per_gram"] = quote.PricePerGramINR
		return data, nil

	case classify.IntentHistory:
		hist, err := s.prices.History(ctx, 30)
		if err != nil {
			s.log.Warn().Err(err).Msg("price history unavailable")
			data["error"] = err.Error()
			return data, nil
		}
		data["source"] = hist.Source
		data["history"] = hist.Points
		return data, hist

	case classify.IntentPrediction:
		if quote, err := s.prices.CurrentPrice(ctx); err == nil {
			data["current"] = quote
		}
		hist, err := s.prices.History(ctx, 90)
		if err != nil {
			s.log.Warn().Err(err).Msg("price history unavailable")
			return data, nil
		}
		data["history"] = hist.Points
		return data, hist

	default:
		return data, nil
	}
}

// trendSeries prefers the intent-fetched history; without one the trend
// is computed over the backup snapshot.
func (s *Service) trendSeries(fetched *models.PriceHistory) []models.PricePoint {
	if fetched != nil && len(fetched.Points) > 0 {
		return fetched.Points
	}
	return s.backup.Load()
}

func (s *Service) generateAnswer(ctx context.Context, question string, extraData map[string]any, trendText string) string {
	dataJSON, err := json.Marshal(extraData)
	if err != nil {
		dataJSON = []byte("{}")
	}

	prompt := fmt.Sprintf(`You are KuberAI. User asked: %q.
Data: %s.
Trend Analysis: %s.
Provide a clear answer, 3-4 short insights, and a nudge to invest.`, question, dataJSON, trendText)

	answer, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		s.log.Warn().Err(err).Msg("LLM answer generation failed, using canned fallback")
		return ""
	}
	return answer
}

// safetyNet rebuilds the fallback reply after a pipeline failure,
// re-deriving the gold check by keyword and the trend from backup data.
func (s *Service) safetyNet(question string) Response {
	isGold := classify.Keyword{}.IsGoldQuery(context.Background(), question)

	var trendText string
	if series := s.backup.Load(); len(series) > 0 {
		trendText = goldprice.TrendText(series)
	}

	insights := fallbackTip
	if trendText != "" {
		insights = insights + " " + trendText
	}

	return Response{
		IsGoldQuery:        isGold,
		Answer:             fallbackShortAnswer,
		ExtraInsights:      insights,
		SimplifySuggestion: simplifySuggestion,
		NudgeText:          nudgeText,
	}
}
