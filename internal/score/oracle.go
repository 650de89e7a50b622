package score

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"exitlens/pkg/models"
)

// Oracle scores submissions by posting a natural-language evaluation prompt to
// an external text-scoring service and parsing a "Score: <int>" pattern from
// its free-text response. Best effort only: every failure mode here is
// recovered by the rule-based fallback.
type Oracle struct {
	URL    string
	APIKey string
	HTTP   *http.Client
}

// NewOracle builds an Oracle client. Returns nil when no URL is configured so
// the caller can wire the fallback-only path.
func NewOracle(url, apiKey string) *Oracle {
	if strings.TrimSpace(url) == "" {
		return nil
	}
	return &Oracle{
		URL:    url,
		APIKey: apiKey,
		HTTP:   &http.Client{Timeout: 20 * time.Second},
	}
}

func (o *Oracle) Name() string { return "oracle" }

var scorePattern = regexp.MustCompile(`(?i)score:\s*(\d{1,3})`)

type oracleRequest struct {
	Prompt string `json:"prompt"`
}

func (o *Oracle) Score(ctx context.Context, sub models.StartupSubmission, profile models.MarketProfile) (int, error) {
	if o.APIKey == "" {
		return 0, errors.New("oracle: missing credentials")
	}

	body, err := json.Marshal(oracleRequest{Prompt: buildPrompt(sub, profile)})
	if err != nil {
		return 0, fmt.Errorf("oracle: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.URL, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("oracle: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.APIKey)

	resp, err := o.HTTP.Do(req)
	if err != nil {
		return 0, fmt.Errorf("oracle: request: %w", err)
	}
	text, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("oracle: status %d", resp.StatusCode)
	}

	m := scorePattern.FindSubmatch(text)
	if m == nil {
		return 0, errors.New("oracle: no score in response")
	}
	n, err := strconv.Atoi(string(m[1]))
	if err != nil {
		return 0, fmt.Errorf("oracle: parse score: %w", err)
	}
	return n, nil
}

// buildPrompt embeds the submission and the market benchmarks so the oracle
// judges against the same calibration the deterministic paths use.
func buildPrompt(sub models.StartupSubmission, profile models.MarketProfile) string {
	var b strings.Builder
	b.WriteString("Rate the acquisition-readiness of this pre-revenue startup from 1 to 100.\n\n")
	fmt.Fprintf(&b, "Tagline: %s\n", strings.TrimSpace(sub.Tagline))
	fmt.Fprintf(&b, "Registered users: %d\n", sub.UserBase)
	fmt.Fprintf(&b, "Monthly traffic: %d visits\n", sub.MonthlyTraffic)
	fmt.Fprintf(&b, "Monthly operating cost: $%d\n", sub.MonthlyCost)
	if len(sub.Categories) > 0 {
		fmt.Fprintf(&b, "Categories: %s\n", strings.Join(sub.Categories, ", "))
	}
	b.WriteString("\nMarket benchmarks from completed startup acquisitions:\n")
	fmt.Fprintf(&b, "- average sold price: $%.0f\n", profile.SuccessPatterns.AvgSoldPrice)
	fmt.Fprintf(&b, "- average user base at sale: %.0f\n", profile.SuccessPatterns.AvgUserBase)
	fmt.Fprintf(&b, "- average monthly traffic at sale: %.0f\n", profile.SuccessPatterns.AvgTraffic)
	if len(profile.SuccessPatterns.TopCategories) > 0 {
		fmt.Fprintf(&b, "- best-selling categories: %s\n", strings.Join(profile.SuccessPatterns.TopCategories, ", "))
	}
	for _, c := range sub.Categories {
		fmt.Fprintf(&b, "- multiplier for %q: %.1f\n", c, multiplierFor(c, profile))
	}
	b.WriteString("\nAnswer with exactly one line in the form \"Score: <integer>\".\n")
	return b.String()
}
