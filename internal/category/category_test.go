package category

import (
	"sort"
	"testing"
)

func TestResolveExact(t *testing.T) {
	if got := Resolve("AI"); got != "ai" {
		t.Errorf("Resolve(AI): got %q, want ai", got)
	}
	if got := Resolve("  SaaS  "); got != "saas" {
		t.Errorf("Resolve(SaaS): got %q, want saas", got)
	}
}

func TestResolveSynonyms(t *testing.T) {
	cases := map[string]string{
		"Artificial Intelligence tools": "ai",
		"Machine Learning":              "ai",
		"Chrome Extension":              "browser-ext",
		"E-Commerce":                    "ecommerce",
		"Shopify store":                 "ecommerce",
		"Substack":                      "newsletter",
		"Web3":                          "crypto",
	}
	for in, want := range cases {
		if got := Resolve(in); got != want {
			t.Errorf("Resolve(%q): got %q, want %q", in, got, want)
		}
	}
}

func TestResolveUnknown(t *testing.T) {
	if got := Resolve("llama farming cooperative"); got != "" {
		t.Errorf("Resolve(unknown): got %q, want empty", got)
	}
	if got := Resolve(""); got != "" {
		t.Errorf("Resolve(empty): got %q, want empty", got)
	}
}

func TestResolveShortIDNeedsWholeWord(t *testing.T) {
	// "ai" and "ml" are substrings of ordinary words and must only match as
	// whole words
	for _, name := range []string{"Retail", "Email Marketing", "Domains", "Maintenance", "HTML templates"} {
		if got := Resolve(name); got != "" {
			t.Errorf("Resolve(%q): got %q, want empty", name, got)
		}
	}
	if got := Resolve("AI tools"); got != "ai" {
		t.Errorf("Resolve(AI tools): got %q, want ai", got)
	}
}

func TestResolveDeclaredSynonymWins(t *testing.T) {
	// "email list" is a declared newsletter alias and must not be captured
	// by an alphabetically earlier category
	if got := Resolve("email list"); got != "newsletter" {
		t.Errorf("Resolve(email list): got %q, want newsletter", got)
	}
}

func TestResolveTinyFragmentIgnored(t *testing.T) {
	for _, name := range []string{"s", "ap", "for"} {
		if got := Resolve(name); got != "" {
			t.Errorf("Resolve(%q): got %q, want empty", name, got)
		}
	}
}

func TestMultiplierLookupOrder(t *testing.T) {
	multipliers := map[string]float64{"ai": 1.6, "blog": 0.9}

	if m := Multiplier("ai", multipliers); m != 1.6 {
		t.Errorf("exact lookup: got %v, want 1.6", m)
	}
	if m := Multiplier("Machine Learning", multipliers); m != 1.6 {
		t.Errorf("synonym lookup: got %v, want 1.6", m)
	}
	if m := Multiplier("llama farming", multipliers); m != 1.0 {
		t.Errorf("unknown category: got %v, want neutral 1.0", m)
	}
	if m := Multiplier("", multipliers); m != 1.0 {
		t.Errorf("empty category: got %v, want neutral 1.0", m)
	}
}

func TestResolveDeterministic(t *testing.T) {
	first := Resolve("software platform for developers")
	for i := 0; i < 50; i++ {
		if got := Resolve("software platform for developers"); got != first {
			t.Fatalf("Resolve not deterministic: %q then %q", first, got)
		}
	}
}

func TestIsMain(t *testing.T) {
	for _, name := range []string{"SaaS", "eCommerce", "Marketplace", "Content"} {
		if !IsMain(name) {
			t.Errorf("IsMain(%q) should be true", name)
		}
	}
	for _, name := range []string{"AI", "Newsletter", "Browser Extension"} {
		if IsMain(name) {
			t.Errorf("IsMain(%q) should be false", name)
		}
	}
}

func TestDisplayNamesSorted(t *testing.T) {
	names := DisplayNames()
	if len(names) == 0 {
		t.Fatal("expected display names")
	}
	if !sort.StringsAreSorted(names) {
		t.Error("display names not sorted")
	}
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, dup := seen[n]; dup {
			t.Errorf("duplicate display name %q", n)
		}
		seen[n] = struct{}{}
	}
}
