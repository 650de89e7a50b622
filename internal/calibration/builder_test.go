package calibration

import (
	"reflect"
	"testing"
	"time"

	"exitlens/pkg/models"
)

func fixedBuilder() *Builder {
	b := NewBuilder(DefaultConfig())
	b.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }
	return b
}

func soldAI(price, traffic, users float64) models.ListingRecord {
	return models.ListingRecord{
		Price:    price,
		Category: "AI",
		Sold:     true,
		Metrics:  models.Metrics{Traffic: traffic, Users: users},
		Title:    "AI automation tool",
	}
}

func sampleListings() []models.ListingRecord {
	l := []models.ListingRecord{
		soldAI(30000, 50000, 5000),
		soldAI(25000, 25000, 4000),
		soldAI(28000, 0, 0),
		soldAI(32000, 10000, 2000),
		{Price: 20000, Category: "AI", Sold: false},
		{Price: 15000, Category: "AI", Sold: false},
	}
	// blogs sell rarely and cheap
	for i := 0; i < 5; i++ {
		l = append(l, models.ListingRecord{Price: 2000, Category: "Blog", Sold: false})
	}
	l = append(l, models.ListingRecord{Price: 1500, Category: "Blog", Sold: true, Title: "travel blog"})
	// one-off category below the sample threshold
	l = append(l, models.ListingRecord{Price: 9000, Category: "Underwater Basket Weaving", Sold: true})
	return l
}

func TestMultiplierBounds(t *testing.T) {
	profile := fixedBuilder().Build(sampleListings())
	if len(profile.CategoryMultipliers) == 0 {
		t.Fatal("expected multipliers")
	}
	for name, m := range profile.CategoryMultipliers {
		if m < 0.6 || m > 2.0 {
			t.Errorf("multiplier %s = %v outside [0.6, 2.0]", name, m)
		}
	}
}

func TestLowSampleCategoryOmitted(t *testing.T) {
	profile := fixedBuilder().Build(sampleListings())
	if _, ok := profile.CategoryMultipliers["underwater basket weaving"]; ok {
		t.Error("category with weighted total < 3 must not appear")
	}
}

func TestStrongCategoryBeatsWeak(t *testing.T) {
	profile := fixedBuilder().Build(sampleListings())
	ai, ok := profile.CategoryMultipliers["ai"]
	if !ok {
		t.Fatal("ai multiplier missing")
	}
	blog, ok := profile.CategoryMultipliers["blog"]
	if !ok {
		t.Fatal("blog multiplier missing")
	}
	if ai <= blog {
		t.Errorf("ai multiplier %v should exceed blog %v", ai, blog)
	}
}

func TestBuildIdempotent(t *testing.T) {
	b := fixedBuilder()
	in := sampleListings()
	p1 := b.Build(in)
	p2 := b.Build(in)
	if !reflect.DeepEqual(p1, p2) {
		t.Error("same listings snapshot must yield identical profiles")
	}
}

func TestEmptyBatchYieldsDefaults(t *testing.T) {
	profile := fixedBuilder().Build(nil)
	want := DefaultProfile()
	if !reflect.DeepEqual(profile, want) {
		t.Error("empty batch should return the embedded default profile")
	}
}

func TestTrafficValueFiltersOutliers(t *testing.T) {
	l := []models.ListingRecord{
		{Price: 10000, Sold: true, Metrics: models.Metrics{Traffic: 50000}}, // 0.2
		{Price: 5000, Sold: true, Metrics: models.Metrics{Traffic: 25000}},  // 0.2
		{Price: 100000, Sold: true, Metrics: models.Metrics{Traffic: 100}},  // 1000, outlier
		{Price: 8000, Sold: false, Metrics: models.Metrics{Traffic: 90000}}, // unsold, ignored
	}
	profile := fixedBuilder().Build(l)
	if profile.AvgTrafficValue != 0.2 {
		t.Errorf("AvgTrafficValue: got %v, want 0.2", profile.AvgTrafficValue)
	}
}

func TestTrafficValueDefaultWithoutData(t *testing.T) {
	l := []models.ListingRecord{
		{Price: 10000, Sold: true},
		{Price: 5000, Sold: false},
	}
	profile := fixedBuilder().Build(l)
	if profile.AvgTrafficValue != 0.1 {
		t.Errorf("AvgTrafficValue default: got %v, want 0.1", profile.AvgTrafficValue)
	}
	if profile.AvgCommunityValue != 5.0 {
		t.Errorf("AvgCommunityValue default: got %v, want 5.0", profile.AvgCommunityValue)
	}
}

func TestKeywordFrequencyThreshold(t *testing.T) {
	profile := fixedBuilder().Build(sampleListings())
	for _, kw := range profile.TopPerformers.Keywords {
		if kw.Frequency < minKeywordCount {
			t.Errorf("keyword %q below frequency threshold: %d", kw.Word, kw.Frequency)
		}
		if len(kw.Word) < 3 {
			t.Errorf("keyword %q shorter than 3 chars", kw.Word)
		}
	}
}

func TestKeywordsKeepEveryFrequentWord(t *testing.T) {
	// any alphabetic run of length >= 3 counts once frequent enough; there
	// is no exclusion list
	var l []models.ListingRecord
	for i := 0; i < 6; i++ {
		l = append(l, models.ListingRecord{
			Price: 10000,
			Sold:  true,
			Title: "built with care",
		})
	}
	profile := fixedBuilder().Build(l)

	want := map[string]bool{"built": false, "with": false, "care": false}
	for _, kw := range profile.TopPerformers.Keywords {
		if _, ok := want[kw.Word]; ok {
			want[kw.Word] = true
			if kw.Frequency != 6 {
				t.Errorf("keyword %q frequency: got %d, want 6", kw.Word, kw.Frequency)
			}
		}
	}
	for w, seen := range want {
		if !seen {
			t.Errorf("frequent word %q missing from keywords", w)
		}
	}
}

func TestCategoryWeighting(t *testing.T) {
	// three listings whose only category signal is the broad field, at 0.3
	// weight each: total 0.9, below the multiplier threshold
	l := []models.ListingRecord{
		{Price: 10000, BroadCategory: "Gaming", Sold: true},
		{Price: 12000, BroadCategory: "Gaming", Sold: true},
		{Price: 9000, BroadCategory: "Gaming", Sold: true},
	}
	profile := fixedBuilder().Build(l)
	if _, ok := profile.CategoryMultipliers["gaming"]; ok {
		t.Error("broad-only category at weight 0.9 must not get a multiplier")
	}

	// the same three via the specific field clear the threshold
	for i := range l {
		l[i].Category = l[i].BroadCategory
		l[i].BroadCategory = ""
	}
	profile = fixedBuilder().Build(l)
	if _, ok := profile.CategoryMultipliers["gaming"]; !ok {
		t.Error("specific category at weight 3.0 should get a multiplier")
	}
}

func TestSuccessPatternsPartialData(t *testing.T) {
	l := []models.ListingRecord{
		{Price: 10000, Category: "SaaS", Sold: true, Metrics: models.Metrics{Users: 1000}},
		{Price: 20000, Category: "SaaS", Sold: true, Metrics: models.Metrics{Traffic: 40000}},
		{Price: 0, Category: "SaaS", Sold: true},
	}
	profile := fixedBuilder().Build(l)
	sp := profile.SuccessPatterns
	if sp.AvgSoldPrice != 15000 {
		t.Errorf("AvgSoldPrice: got %v, want 15000 (zero-price listing excluded)", sp.AvgSoldPrice)
	}
	if sp.AvgUserBase != 1000 {
		t.Errorf("AvgUserBase: got %v, want 1000", sp.AvgUserBase)
	}
	if sp.AvgTraffic != 40000 {
		t.Errorf("AvgTraffic: got %v, want 40000", sp.AvgTraffic)
	}
}

func TestTopPerformerRanking(t *testing.T) {
	profile := fixedBuilder().Build(sampleListings())
	perfs := profile.TopPerformers.SpecificCategories
	for i := 1; i < len(perfs); i++ {
		prev := perfs[i-1].SuccessRate * perfs[i-1].AvgPrice
		cur := perfs[i].SuccessRate * perfs[i].AvgPrice
		if prev < cur {
			t.Errorf("specific categories not ranked: %v before %v", prev, cur)
		}
	}
	for _, p := range perfs {
		if p.ListingCount < minPerformerCount {
			t.Errorf("performer %q below listing threshold", p.Name)
		}
	}
}
