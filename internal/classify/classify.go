// Package classify decides whether a question is about gold and which
// intent it carries. The base classifier is a pure keyword heuristic;
// an optional LLM decorator may override its result but can never make
// classification fail.
package classify

import (
	"context"
	"regexp"
	"strings"
)

// Intent is the question category driving which price data gets fetched.
type Intent string

const (
	IntentCurrentPrice Intent = "current_price"
	IntentHistory      Intent = "history"
	IntentPrediction   Intent = "prediction"
	IntentGeneralInfo  Intent = "general_info"
)

// Classifier answers the two classification questions for a user query.
type Classifier interface {
	IsGoldQuery(ctx context.Context, question string) bool
	ClassifyIntent(ctx context.Context, question string) Intent
}

var goldPattern = regexp.MustCompile(`(?i)\b(digital gold|gold|xau)\b`)

var (
	priceTerms      = []string{"price", "rate", "current", "today"}
	historyTerms    = []string{"history", "past", "last", "trend"}
	predictionTerms = []string{"predict", "forecast", "future", "will"}
)

// Keyword is the pure heuristic classifier. It is the default and the
// fallback when no LLM is available.
type Keyword struct{}

func (Keyword) IsGoldQuery(_ context.Context, question string) bool {
	return goldPattern.MatchString(question)
}

// ClassifyIntent matches keyword groups with fixed precedence.
// Prediction markers are checked first so that forward-looking questions
// mentioning "price" ("will gold price rise?") still classify as
// prediction, then price terms, then history terms.
func (Keyword) ClassifyIntent(_ context.Context, question string) Intent {
	q := strings.ToLower(question)
	if containsAny(q, predictionTerms) {
		return IntentPrediction
	}
	if containsAny(q, priceTerms) {
		return IntentCurrentPrice
	}
	if containsAny(q, historyTerms) {
		return IntentHistory
	}
	return IntentGeneralInfo
}

func containsAny(q string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(q, t) {
			return true
		}
	}
	return false
}
