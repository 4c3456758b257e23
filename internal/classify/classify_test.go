package classify

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestKeywordIsGoldQuery(t *testing.T) {
	ctx := context.Background()
	k := Keyword{}

	cases := []struct {
		question string
		want     bool
	}{
		{"What is the GOLD rate today?", true},
		{"Tell me about digital gold", true},
		{"How is XAU trading?", true},
		{"How is silver doing?", false},
		{"Is golden retriever a good dog?", false}, // whole-word match only
		{"", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, k.IsGoldQuery(ctx, tc.question), tc.question)
	}
}

func TestKeywordClassifyIntent(t *testing.T) {
	ctx := context.Background()
	k := Keyword{}

	cases := []struct {
		question string
		want     Intent
	}{
		{"What's the current price of gold?", IntentCurrentPrice},
		{"Show me gold history", IntentHistory},
		{"Will gold price rise?", IntentPrediction}, // prediction markers win over price terms
		{"gold forecast", IntentPrediction},
		{"Tell me about gold", IntentGeneralInfo},
		{"gold trend over the past month", IntentHistory},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, k.ClassifyIntent(ctx, tc.question), tc.question)
	}
}

type stubGen struct {
	reply string
	err   error
}

func (s stubGen) Generate(context.Context, string) (string, error) {
	return s.reply, s.err
}

func TestLLM_OverridesGoldDetection(t *testing.T) {
	ctx := context.Background()
	c := NewLLM(Keyword{}, stubGen{reply: "Yes."}, zerolog.Nop())
	// Keyword heuristic says false, the LLM overrides to true.
	assert.True(t, c.IsGoldQuery(ctx, "Is the yellow metal a good buy?"))
}

func TestLLM_FailureKeepsKeywordResult(t *testing.T) {
	ctx := context.Background()
	c := NewLLM(Keyword{}, stubGen{err: errors.New("quota exceeded")}, zerolog.Nop())

	assert.True(t, c.IsGoldQuery(ctx, "What is the gold rate?"))
	assert.False(t, c.IsGoldQuery(ctx, "How is silver doing?"))
	assert.Equal(t, IntentCurrentPrice, c.ClassifyIntent(ctx, "current price of gold?"))
}

func TestLLM_OverridesIntent(t *testing.T) {
	ctx := context.Background()
	c := NewLLM(Keyword{}, stubGen{reply: "prediction"}, zerolog.Nop())
	assert.Equal(t, IntentPrediction, c.ClassifyIntent(ctx, "what is the gold price today?"))
}

func TestLLM_UnknownIntentKeepsKeywordResult(t *testing.T) {
	ctx := context.Background()
	c := NewLLM(Keyword{}, stubGen{reply: "shrug"}, zerolog.Nop())
	assert.Equal(t, IntentHistory, c.ClassifyIntent(ctx, "show me gold history"))
}
