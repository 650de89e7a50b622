package calibration

import (
	"math"
	"sort"
	"strings"
	"time"
	"unicode"

	"exitlens/internal/category"
	"exitlens/pkg/models"
)

// Category weighting: granular categories are more informative than broad
// umbrella ones and must not be diluted by them, so each field contributes at
// a different weight.
const (
	specificWeight = 1.0 // primary category field
	legacyWeight   = 0.8 // each entry of the legacy multi-category list
	broadWeight    = 0.3 // umbrella category field
)

// Minimum samples below which statistics are silently omitted rather than
// reported unstable.
const (
	minCategoryWeight = 3.0 // weighted listings per multiplier bucket
	minKeywordCount   = 5   // keyword occurrences among sold listings
	minPerformerCount = 3   // listings per top-performer row
)

const (
	topCategoryLimit  = 5
	topPerformerLimit = 5
	topKeywordLimit   = 10
)

// Config holds the calibration constants that are business decisions rather
// than derived statistics. Revenue/profit multiples are fixed here because the
// listings source does not reliably expose per-listing revenue or profit.
type Config struct {
	RevenueMultiple     float64
	ProfitMultiple      float64
	DefaultTrafficValue float64 // $ per monthly visit when no usable ratio data
	DefaultUserValue    float64 // $ per user when no usable ratio data
	TrafficRatioBound   float64 // price/traffic ratios outside (0, bound) are outliers
	UserRatioBound      float64 // price/users ratios outside (0, bound) are outliers
}

// DefaultConfig returns the normative calibration constants.
func DefaultConfig() Config {
	return Config{
		RevenueMultiple:     2.5,
		ProfitMultiple:      3.0,
		DefaultTrafficValue: 0.1,
		DefaultUserValue:    5.0,
		TrafficRatioBound:   50,
		UserRatioBound:      100,
	}
}

// Builder turns a batch of listing records into a MarketProfile. Building is a
// pure function of its input: the same snapshot always yields the same profile.
type Builder struct {
	cfg Config
	now func() time.Time
}

// NewBuilder creates a Builder with the given config.
func NewBuilder(cfg Config) *Builder {
	return &Builder{cfg: cfg, now: time.Now}
}

type bucket struct {
	weight     float64 // weighted listing count
	soldWeight float64 // weighted sold count
	soldPrice  float64 // weighted sold price sum
	count      int     // raw listing count
}

// Build computes a complete MarketProfile from listings. An empty batch yields
// the embedded default profile so the system is never left without calibration.
func (b *Builder) Build(listings []models.ListingRecord) models.MarketProfile {
	if len(listings) == 0 {
		return DefaultProfile()
	}

	buckets := make(map[string]*bucket)
	soldBuckets := make(map[string]*bucket)
	sold := 0

	for i := range listings {
		l := &listings[i]
		if l.Sold {
			sold++
		}
		accumulate(buckets, l)
		if l.Sold {
			accumulate(soldBuckets, l)
		}
	}

	profile := models.MarketProfile{
		LastUpdated:         b.now(),
		TotalListings:       len(listings),
		SoldListings:        sold,
		CategoryMultipliers: b.multipliers(buckets, len(listings)),
		AvgRevenueMultiple:  b.cfg.RevenueMultiple,
		AvgProfitMultiple:   b.cfg.ProfitMultiple,
		AvgTrafficValue:     avgRatio(listings, trafficRatio, b.cfg.TrafficRatioBound, b.cfg.DefaultTrafficValue),
		AvgCommunityValue:   avgRatio(listings, userRatio, b.cfg.UserRatioBound, b.cfg.DefaultUserValue),
		SuccessPatterns:     successPatterns(listings, soldBuckets),
		TopPerformers:       topPerformers(buckets, listings),
	}
	return profile
}

// accumulate adds one listing to every category bucket it belongs to, at the
// weight of the field it came from. Bucket keys are canonical category ids
// where resolvable so the estimate path and the public read path agree.
func accumulate(buckets map[string]*bucket, l *models.ListingRecord) {
	add := func(name string, w float64) {
		key := bucketKey(name)
		if key == "" {
			return
		}
		bk := buckets[key]
		if bk == nil {
			bk = &bucket{}
			buckets[key] = bk
		}
		bk.weight += w
		bk.count++
		if l.Sold {
			bk.soldWeight += w
			bk.soldPrice += l.Price * w
		}
	}

	add(l.Category, specificWeight)
	for _, c := range l.CategoryList {
		add(c, legacyWeight)
	}
	add(l.BroadCategory, broadWeight)
}

func bucketKey(name string) string {
	if id := category.Resolve(name); id != "" {
		return id
	}
	return category.Normalize(name)
}

// multipliers derives the per-category multiplier for every bucket meeting the
// minimum weighted sample. base 0.8 + successRate*0.8, plus a specificity
// bonus and a price-tier adjustment, clamped to [0.6, 2.0].
func (b *Builder) multipliers(buckets map[string]*bucket, total int) map[string]float64 {
	out := make(map[string]float64)
	for name, bk := range buckets {
		if bk.weight < minCategoryWeight {
			continue
		}
		successRate := bk.soldWeight / bk.weight
		avgPrice := bk.soldPrice / math.Max(bk.soldWeight, 1)

		m := 0.8 + successRate*0.8
		m += math.Min(bk.weight/float64(total), 1) * 0.2
		switch {
		case avgPrice > 20000:
			m += 0.2
		case avgPrice > 10000:
			m += 0.1
		case avgPrice < 5000:
			m -= 0.1
		}

		m = clamp(m, 0.6, 2.0)
		out[name] = math.Round(m*10) / 10
	}
	return out
}

func trafficRatio(l *models.ListingRecord) (float64, bool) {
	if !l.Sold || l.Metrics.Traffic <= 0 {
		return 0, false
	}
	return l.Price / l.Metrics.Traffic, true
}

func userRatio(l *models.ListingRecord) (float64, bool) {
	if !l.Sold || l.Metrics.Users <= 0 {
		return 0, false
	}
	return l.Price / l.Metrics.Users, true
}

// avgRatio averages a per-listing price ratio over sold listings exposing the
// metric, dropping outliers outside (0, bound). Falls back to def with no data.
func avgRatio(listings []models.ListingRecord, ratio func(*models.ListingRecord) (float64, bool), bound, def float64) float64 {
	var sum float64
	n := 0
	for i := range listings {
		r, ok := ratio(&listings[i])
		if !ok || r <= 0 || r >= bound {
			continue
		}
		sum += r
		n++
	}
	if n == 0 {
		return def
	}
	return math.Round(sum/float64(n)*100) / 100
}

// successPatterns ranks sold-listing categories by weighted frequency and
// averages price/users/traffic over the listings that expose each field.
func successPatterns(listings []models.ListingRecord, soldBuckets map[string]*bucket) models.SuccessPatterns {
	type freq struct {
		name   string
		weight float64
	}
	ranked := make([]freq, 0, len(soldBuckets))
	for name, bk := range soldBuckets {
		ranked = append(ranked, freq{name, bk.weight})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].weight != ranked[j].weight {
			return ranked[i].weight > ranked[j].weight
		}
		return ranked[i].name < ranked[j].name
	})
	if len(ranked) > topCategoryLimit {
		ranked = ranked[:topCategoryLimit]
	}
	top := make([]string, 0, len(ranked))
	for _, f := range ranked {
		top = append(top, f.name)
	}

	var priceSum, userSum, trafficSum float64
	priceN, userN, trafficN := 0, 0, 0
	for i := range listings {
		l := &listings[i]
		if !l.Sold {
			continue
		}
		if l.Price > 0 {
			priceSum += l.Price
			priceN++
		}
		if l.Metrics.Users > 0 {
			userSum += l.Metrics.Users
			userN++
		}
		if l.Metrics.Traffic > 0 {
			trafficSum += l.Metrics.Traffic
			trafficN++
		}
	}

	return models.SuccessPatterns{
		TopCategories: top,
		AvgSoldPrice:  safeAvg(priceSum, priceN),
		AvgUserBase:   safeAvg(userSum, userN),
		AvgTraffic:    safeAvg(trafficSum, trafficN),
	}
}

// topPerformers classifies buckets as main vs specific, keeps those with
// enough listings, and ranks by successRate x avgPrice. Keywords come from
// sold titles/descriptions.
func topPerformers(buckets map[string]*bucket, listings []models.ListingRecord) models.TopPerformers {
	var main, specific []models.CategoryPerformance
	for name, bk := range buckets {
		if bk.count < minPerformerCount {
			continue
		}
		perf := models.CategoryPerformance{
			Name:         name,
			SuccessRate:  round2(bk.soldWeight / bk.weight),
			AvgPrice:     round2(bk.soldPrice / math.Max(bk.soldWeight, 1)),
			ListingCount: bk.count,
		}
		if category.IsMain(name) {
			main = append(main, perf)
		} else {
			specific = append(specific, perf)
		}
	}

	rank := func(perfs []models.CategoryPerformance) []models.CategoryPerformance {
		sort.Slice(perfs, func(i, j int) bool {
			si := perfs[i].SuccessRate * perfs[i].AvgPrice
			sj := perfs[j].SuccessRate * perfs[j].AvgPrice
			if si != sj {
				return si > sj
			}
			return perfs[i].Name < perfs[j].Name
		})
		if len(perfs) > topPerformerLimit {
			perfs = perfs[:topPerformerLimit]
		}
		return perfs
	}

	return models.TopPerformers{
		MainCategories:     rank(main),
		SpecificCategories: rank(specific),
		Keywords:           topKeywords(listings),
	}
}

// topKeywords tokenizes sold titles+descriptions into lowercase alphabetic
// runs of length >= 3, keeps words seen at least minKeywordCount times and
// ranks by frequency x average sale price. The frequency threshold is the
// only filter; no word list is excluded.
func topKeywords(listings []models.ListingRecord) []models.KeywordStat {
	type agg struct {
		count    int
		priceSum float64
	}
	words := make(map[string]*agg)

	for i := range listings {
		l := &listings[i]
		if !l.Sold {
			continue
		}
		for _, w := range tokenize(l.Title + " " + l.Description) {
			a := words[w]
			if a == nil {
				a = &agg{}
				words[w] = a
			}
			a.count++
			a.priceSum += l.Price
		}
	}

	out := make([]models.KeywordStat, 0, len(words))
	for w, a := range words {
		if a.count < minKeywordCount {
			continue
		}
		out = append(out, models.KeywordStat{
			Word:      w,
			Frequency: a.count,
			AvgPrice:  round2(a.priceSum / float64(a.count)),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		si := float64(out[i].Frequency) * out[i].AvgPrice
		sj := float64(out[j].Frequency) * out[j].AvgPrice
		if si != sj {
			return si > sj
		}
		return out[i].Word < out[j].Word
	})
	if len(out) > topKeywordLimit {
		out = out[:topKeywordLimit]
	}
	return out
}

// tokenize splits text into lowercase alphabetic runs of length >= 3.
func tokenize(text string) []string {
	text = strings.ToLower(text)
	var out []string
	var b strings.Builder
	flush := func() {
		if b.Len() >= 3 {
			out = append(out, b.String())
		}
		b.Reset()
	}
	for _, r := range text {
		if unicode.IsLetter(r) && r < 128 {
			b.WriteRune(r)
			continue
		}
		flush()
	}
	flush()
	return out
}

func safeAvg(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return round2(sum / float64(n))
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
