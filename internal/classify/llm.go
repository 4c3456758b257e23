package classify

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// TextGenerator is the single-turn prompt/response surface the LLM
// collaborator exposes.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// LLM decorates a base classifier with an LLM override. Generator
// failures are logged and swallowed: the base result stands and
// classification never blocks on LLM availability.
type LLM struct {
	base Classifier
	gen  TextGenerator
	log  zerolog.Logger
}

func NewLLM(base Classifier, gen TextGenerator, log zerolog.Logger) *LLM {
	return &LLM{base: base, gen: gen, log: log}
}

func (c *LLM) IsGoldQuery(ctx context.Context, question string) bool {
	result := c.base.IsGoldQuery(ctx, question)

	prompt := fmt.Sprintf("Is this about gold? Answer yes or no: '%s'", question)
	reply, err := c.gen.Generate(ctx, prompt)
	if err != nil {
		c.log.Warn().Err(err).Msg("LLM gold detection failed, keeping keyword result")
		return result
	}
	return strings.Contains(strings.ToLower(strings.TrimSpace(reply)), "yes")
}

func (c *LLM) ClassifyIntent(ctx context.Context, question string) Intent {
	result := c.base.ClassifyIntent(ctx, question)

	prompt := fmt.Sprintf(`Classify "%s" into: ["current_price", "history", "prediction", "general_info"]. Respond with one word.`, question)
	reply, err := c.gen.Generate(ctx, prompt)
	if err != nil {
		c.log.Warn().Err(err).Msg("LLM intent classification failed, keeping keyword result")
		return result
	}

	switch r := strings.ToLower(strings.TrimSpace(reply)); {
	case strings.Contains(r, string(IntentCurrentPrice)):
		return IntentCurrentPrice
	case strings.Contains(r, string(IntentHistory)):
		return IntentHistory
	case strings.Contains(r, string(IntentPrediction)):
		return IntentPrediction
	case strings.Contains(r, string(IntentGeneralInfo)):
		return IntentGeneralInfo
	default:
		c.log.Warn().Str("reply", r).Msg("LLM returned unknown intent, keeping keyword result")
		return result
	}
}
