package assistant

import "strings"

// Fixed product copy. The composer falls back to these whenever the LLM
// is unavailable or its reply cannot be used.
const (
	refusalAnswer  = "I can only help you with gold investment queries."
	refusalInsight = "Please ask me a question about gold."

	fallbackAnswer = "Right now I'm unable to fetch live AI insights due to an API limit or server issue. " +
		"The data coming is hard-coded and will resume the live response as soon as the API limit gets refreshed"
	fallbackShortAnswer = "Right now I'm unable to fetch live AI insights due to an API limit or server issue."

	fallbackTip = "But here's a helpful tip: Gold is a safe-haven asset. " +
		"On Simplify Money, you can instantly buy or sell 24K, 99.9% pure digital gold."

	simplifySuggestion = "Simplify Money makes digital gold investment effortless: " +
		"- Buy or sell 24K, 99.9% pure gold instantly. " +
		"- Your gold is securely stored in insured vaults. " +
		"- Start small with as little as ₹10."

	nudgeText = "Would you like me to help you invest in digital gold on Simplify Money now?"
)

// Response is the reply shape of the conversational endpoint. The
// endpoint always returns a well-formed Response, never a raw error.
type Response struct {
	IsGoldQuery        bool   `json:"is_gold_query"`
	Answer             string `json:"answer"`
	ExtraInsights      string `json:"extra_insights,omitempty"`
	SimplifySuggestion string `json:"simplify_suggestion,omitempty"`
	NudgeText          string `json:"nudge_text,omitempty"`
}

// compose assembles the final reply from the (possibly empty) LLM
// answer and the computed trend text.
func compose(isGold bool, aiAnswer, trendText string) Response {
	var answer, insights string
	switch {
	case aiAnswer != "":
		answer, insights = splitAnswer(aiAnswer)
	case !isGold:
		answer, insights = refusalAnswer, refusalInsight
	default:
		answer, insights = fallbackAnswer, fallbackTip
	}

	if trendText != "" {
		insights = strings.TrimSpace(insights + " " + trendText)
	}

	return Response{
		IsGoldQuery:        isGold,
		Answer:             answer,
		ExtraInsights:      insights,
		SimplifySuggestion: simplifySuggestion,
		NudgeText:          nudgeText,
	}
}

// splitAnswer breaks the LLM's free text on the first blank line into
// the short answer and the extra insights, normalizing whitespace in
// both halves.
func splitAnswer(raw string) (answer, insights string) {
	parts := strings.SplitN(raw, "\n\n", 2)
	answer = cleanText(parts[0])
	if len(parts) > 1 {
		insights = cleanText(parts[1])
	}
	return answer, insights
}

// cleanText collapses all runs of whitespace, newlines included, into
// single spaces.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
