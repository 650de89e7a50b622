package valuation

import "strings"

// Tagline heuristics shared by the valuation quality multiplier and the
// rule-based success scorer.

// placeholderTerms flags test or filler submissions. A tagline containing any
// of these caps the whole estimate regardless of the traction numbers.
var placeholderTerms = []string{
	"test", "asdf", "qwerty", "lorem", "ipsum", "xxx", "aaaa", "foo bar",
	"placeholder", "sample text", "dummy",
}

// valuePropTerms signal that the tagline states what the product does for
// whom, which correlates with acquisition-readiness.
var valuePropTerms = []string{
	"helps", "help", "automate", "automat", "saves", "save time", "grow",
	"boost", "simplif", "streamline", "platform", "solution", "tool",
	"without", "faster", "track", "manage",
}

// targetMarketTerms signal a named audience.
var targetMarketTerms = []string{
	"for founders", "for teams", "for developers", "for creators",
	"for agencies", "for students", "for small business", "for freelancers",
	"for marketers", "for startups", "businesses", "professionals",
}

// IsPlaceholder reports whether a tagline looks like test data.
func IsPlaceholder(tagline string) bool {
	t := strings.ToLower(strings.TrimSpace(tagline))
	if t == "" {
		return false
	}
	for _, term := range placeholderTerms {
		if strings.Contains(t, term) {
			return true
		}
	}
	return false
}

// HasValueProposition reports whether the tagline uses value-proposition
// language.
func HasValueProposition(tagline string) bool {
	return containsAny(tagline, valuePropTerms)
}

// HasTargetMarket reports whether the tagline names a target audience.
func HasTargetMarket(tagline string) bool {
	return containsAny(tagline, targetMarketTerms)
}

// IsTrivial reports whether the tagline is missing or too short to carry any
// signal.
func IsTrivial(tagline string) bool {
	return len(strings.TrimSpace(tagline)) < 10
}

func containsAny(tagline string, terms []string) bool {
	t := strings.ToLower(tagline)
	for _, term := range terms {
		if strings.Contains(t, term) {
			return true
		}
	}
	return false
}
