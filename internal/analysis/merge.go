package analysis

import (
	"strings"

	"github.com/nowme-app/nowme-server/internal/category"
	"github.com/nowme-app/nowme-server/internal/models"
)

// Mode selects which shape Merge produces.
type Mode int

const (
	// Quick produces the preview shape: categories, colors, title, comment.
	Quick Mode = iota
	// Full produces the complete result shape.
	Full
)

// Merge coerces a raw model payload into a canonical AnalysisResult. Every
// field access tolerates absence, wrong types and excess length; Merge never
// fails. Field-level gaps are filled from the deterministic fallbacks, never
// invented.
func Merge(raw map[string]any, sourceText string, mode Mode) models.AnalysisResult {
	top := normalizeCategories(asList(raw["highLevelCategories"]), 2)
	if len(top) == 0 && mode == Full {
		top = normalizeCategories(asList(raw["categories"]), 2)
	}
	if len(top) == 0 {
		top = []category.Category{category.Default}
	}

	res := models.AnalysisResult{
		Title:     resolveTitle(raw, sourceText),
		AIComment: resolveComment(raw),
	}
	for _, c := range top {
		res.HighLevelCategories = append(res.HighLevelCategories, models.HighLevelCategory{Name: c.Name()})
		res.Colors = append(res.Colors, c.Color)
	}

	if mode != Full {
		return res
	}

	res.Summary = asString(raw["summary"])
	res.Emotions = resolveEmotions(raw["emotions"])
	res.MidTop = asStringSlice(raw["midTop"], 0)
	res.Keywords = asStringSlice(raw["keywords"], 0)
	// Clip before deduplicating so entries that only differ past the
	// display limit collapse into one.
	res.Thoughts = firstN(dedupe(clipEach(asStringSlice(raw["thoughts"], 0), 30)), 3)
	res.Hints = clipEach(asStringSlice(raw["hints"], 2), 150)
	res.PhotoURL = asString(raw["photoUrl"])
	res.Posts = asCount(raw["posts"])
	res.Streak = asCount(raw["streak"])

	// Compatibility alias: independently normalized when the model supplied
	// its own list, otherwise the top-2 list falls through.
	if alias := normalizeCategories(asList(raw["categories"]), 2); len(alias) > 0 {
		for _, c := range alias {
			res.Categories = append(res.Categories, models.HighLevelCategory{Name: c.Name()})
		}
	} else {
		res.Categories = append(res.Categories, res.HighLevelCategories...)
	}
	return res
}

// normalizeCategories windows the raw list to its first max entries and
// normalizes whatever is there; malformed entries degrade to the default
// category rather than promoting later entries into the window.
func normalizeCategories(entries []any, max int) []category.Category {
	if len(entries) > max {
		entries = entries[:max]
	}
	var out []category.Category
	for _, e := range entries {
		name := ""
		if m, ok := e.(map[string]any); ok {
			name = strings.TrimSpace(asString(m["name"]))
		}
		out = append(out, category.Normalize(name))
	}
	return out
}

func resolveTitle(raw map[string]any, sourceText string) string {
	if mids := asList(raw["midCategories"]); len(mids) > 0 {
		if s := strings.TrimSpace(asString(mids[0])); s != "" {
			return s
		}
	}
	if t := strings.TrimSpace(asString(raw["title"])); t != "" {
		return t
	}
	return FallbackTitle(sourceText)
}

func resolveComment(raw map[string]any) string {
	if c := strings.TrimSpace(asString(raw["aiComment"])); c != "" {
		return c
	}
	return FallbackComment()
}

func resolveEmotions(v any) *models.Emotions {
	m, ok := v.(map[string]any)
	if !ok {
		return &models.Emotions{Positive: 0.33, Neutral: 0.34, Negative: 0.33}
	}
	return &models.Emotions{
		Positive: clamp01(asFloat(m["positive"])),
		Neutral:  clamp01(asFloat(m["neutral"])),
		Negative: clamp01(asFloat(m["negative"])),
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return 0
}

func asList(v any) []any {
	l, _ := v.([]any)
	return l
}

// asStringSlice extracts the non-empty strings of a raw list, keeping at
// most max entries (0 means unbounded).
func asStringSlice(v any, max int) []string {
	var out []string
	for _, e := range asList(v) {
		s := strings.TrimSpace(asString(e))
		if s == "" {
			continue
		}
		out = append(out, s)
		if max > 0 && len(out) == max {
			break
		}
	}
	return out
}

func asCount(v any) int {
	switch n := v.(type) {
	case float64:
		if n >= 0 {
			return int(n)
		}
	case int:
		if n >= 0 {
			return n
		}
	}
	return 1
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func clipEach(in []string, maxRunes int) []string {
	for i, s := range in {
		if r := []rune(s); len(r) > maxRunes {
			in[i] = string(r[:maxRunes])
		}
	}
	return in
}

func firstN(in []string, n int) []string {
	if len(in) > n {
		return in[:n]
	}
	return in
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, s := range in {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
