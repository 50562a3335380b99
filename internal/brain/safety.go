package brain

import "regexp"

// Verdict is the safety classification of one utterance.
type Verdict int

const (
	Neutral Verdict = iota
	InGameTrade
	Forbidden
)

func (v Verdict) String() string {
	switch v {
	case Forbidden:
		return "forbidden"
	case InGameTrade:
		return "in-game-trade"
	default:
		return "neutral"
	}
}

// Real-world-trade phrasing the bot refuses to discuss, ever. Checked
// before the in-game list so "buy gold on the grand exchange" still refuses.
var forbiddenPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)buy.*gold`),
	regexp.MustCompile(`(?i)sell.*gold`),
	regexp.MustCompile(`(?i)buy.*account`),
	regexp.MustCompile(`(?i)sell.*account`),
	regexp.MustCompile(`(?i)buy.*item`),
	regexp.MustCompile(`(?i)sell.*item`),
	regexp.MustCompile(`(?i)\brwt\b`),
	regexp.MustCompile(`(?i)real.?world.?trade`),
	regexp.MustCompile(`(?i)gp for (money|cash|usd|eur|paypal|bitcoin|btc|crypto)`),
	regexp.MustCompile(`(?i)account shop`),
	regexp.MustCompile(`(?i)item shop`),
	regexp.MustCompile(`(?i)\bosrs\b`),
	regexp.MustCompile(`(?i)old school`),
	regexp.MustCompile(`(?i)real[-\s]?money`),
	regexp.MustCompile(`(?i)irl\s*(money|cash|usd|eur|paypal|bitcoin|btc|crypto)`),
}

// Legitimate player-to-player or Grand Exchange trade language.
var inGameTradePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)grand exchange`),
	regexp.MustCompile(`(?i)\bge\b`),
	regexp.MustCompile(`(?i)trade.*(player|friend|other)`),
	regexp.MustCompile(`(?i)player.*trade`),
	regexp.MustCompile(`(?i)in[-\s]?game.*trade`),
	regexp.MustCompile(`(?i)selling.*in game`),
	regexp.MustCompile(`(?i)buying.*in game`),
	regexp.MustCompile(`(?i)offer.*(ge|grand exchange)`),
}

// ClassifySafety is pure: no state, no side effects.
func ClassifySafety(text string) Verdict {
	for _, rx := range forbiddenPatterns {
		if rx.MatchString(text) {
			return Forbidden
		}
	}
	for _, rx := range inGameTradePatterns {
		if rx.MatchString(text) {
			return InGameTrade
		}
	}
	return Neutral
}
