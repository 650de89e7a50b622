package category

import (
	"sort"
	"strings"
)

// displayNames is the static id -> display-name table behind the public
// categories endpoint. Ids match what the listings source reports.
var displayNames = map[string]string{
	"ai":           "AI",
	"saas":         "SaaS",
	"ecommerce":    "eCommerce",
	"marketplace":  "Marketplace",
	"mobile-app":   "Mobile App",
	"browser-ext":  "Browser Extension",
	"newsletter":   "Newsletter",
	"community":    "Community",
	"content":      "Content",
	"blog":         "Blog",
	"agency":       "Agency",
	"crypto":       "Crypto",
	"fintech":      "Fintech",
	"edtech":       "EdTech",
	"healthtech":   "HealthTech",
	"devtools":     "Developer Tools",
	"productivity": "Productivity",
	"gaming":       "Gaming",
	"social":       "Social Network",
	"directory":    "Directory",
}

// synonyms maps a canonical category id to the aliases users and listings use
// for it. Lookup order is deterministic: exact id match first, then the first
// synonym whose text appears inside the queried name (first match wins).
var synonyms = map[string][]string{
	"ai":           {"artificial intelligence", "machine learning", "ml", "gpt", "llm", "chatbot"},
	"saas":         {"software as a service", "b2b software", "subscription software", "software"},
	"ecommerce":    {"e-commerce", "ecom", "online store", "shopify", "dropship", "store"},
	"marketplace":  {"two-sided", "platform marketplace"},
	"mobile-app":   {"mobile app", "ios", "android", "app"},
	"browser-ext":  {"browser extension", "chrome extension", "extension", "plugin"},
	"newsletter":   {"substack", "email list"},
	"community":    {"forum", "discord", "membership"},
	"content":      {"content site", "media", "publication"},
	"blog":         {"blogging", "personal blog"},
	"agency":       {"consultancy", "services", "studio"},
	"crypto":       {"web3", "blockchain", "nft", "defi"},
	"fintech":      {"finance", "payments", "banking"},
	"edtech":       {"education", "course", "learning"},
	"healthtech":   {"health", "fitness", "wellness"},
	"devtools":     {"developer tools", "api", "sdk", "developer"},
	"productivity": {"todo", "notes", "workflow"},
	"gaming":       {"game", "games"},
	"social":       {"social network", "social media"},
	"directory":    {"listing site", "aggregator"},
}

// synonymOrder fixes iteration order over the synonym table so fuzzy lookup is
// deterministic regardless of map iteration.
var synonymOrder = sortedIDs()

func sortedIDs() []string {
	ids := make([]string, 0, len(synonyms))
	for id := range synonyms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// mainCategoryTerms marks broad umbrella categories, as opposed to specific
// niches, for the top-performers classification.
var mainCategoryTerms = []string{
	"saas", "ecommerce", "e-commerce", "marketplace", "content", "agency",
	"mobile app", "community", "software", "media", "services",
}

// Normalize lowercases and trims a category name for lookup.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Resolve maps an arbitrary category name to its canonical id. Unknown names
// resolve to "" (callers fall back to the neutral multiplier).
func Resolve(name string) string {
	n := Normalize(name)
	if n == "" {
		return ""
	}
	if _, ok := displayNames[n]; ok {
		return n
	}
	// fuzzy pass: first id or synonym found inside the query wins. A query
	// that is itself a fragment of a longer alias also matches, but only
	// when long enough to be unambiguous.
	for _, id := range synonymOrder {
		if matchTerm(n, id) {
			return id
		}
		for _, alias := range synonyms[id] {
			if matchTerm(n, alias) {
				return id
			}
			if len(n) >= 4 && strings.Contains(alias, n) {
				return id
			}
		}
	}
	return ""
}

// matchTerm reports whether term occurs in the query. Terms shorter than four
// characters must match a whole word: "ai" and "ml" are fragments of too many
// ordinary words ("retail", "html") to match as substrings.
func matchTerm(n, term string) bool {
	if len(term) < 4 {
		for _, f := range strings.Fields(n) {
			if f == term {
				return true
			}
		}
		return false
	}
	return strings.Contains(n, term)
}

// Multiplier looks up the calibrated multiplier for a category name against a
// profile's multiplier map: exact match first, then synonym resolution, then
// the neutral 1.0 for unknown categories.
func Multiplier(name string, multipliers map[string]float64) float64 {
	n := Normalize(name)
	if n == "" {
		return 1.0
	}
	if m, ok := multipliers[n]; ok {
		return m
	}
	if id := Resolve(n); id != "" {
		if m, ok := multipliers[id]; ok {
			return m
		}
	}
	return 1.0
}

// IsMain reports whether a category name is a broad umbrella category.
func IsMain(name string) bool {
	n := Normalize(name)
	for _, term := range mainCategoryTerms {
		if n == term || strings.Contains(n, term) {
			return true
		}
	}
	return false
}

// DisplayNames returns the distinct known category display names, sorted.
func DisplayNames() []string {
	out := make([]string, 0, len(displayNames))
	for _, name := range displayNames {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
