package category

import (
	"regexp"
	"strings"
)

// Category is one of the seven canonical classification buckets. Every
// category-bearing field in an analysis result resolves to one of these.
type Category struct {
	ID    string // stable identifier, e.g. "work_career"
	Label string // plain display name, e.g. "仕事・キャリア"
	Emoji string
	Color string // hex display color
}

// Name returns the decorated display name used on the wire, e.g. "💼仕事・キャリア".
func (c Category) Name() string {
	return c.Emoji + c.Label
}

// FallbackColor is the neutral sentinel used when a category name cannot be
// resolved against the registry.
const FallbackColor = "#ddd"

// All lists the canonical categories. The order is significant: it is the
// priority order of the keyword rules in Normalize, and the first entry is
// the default for unclassifiable input.
var All = []Category{
	{ID: "work_career", Label: "仕事・キャリア", Emoji: "💼", Color: "#75A0E6"},
	{ID: "money_income", Label: "お金・収入", Emoji: "💰", Color: "#E5D68E"},
	{ID: "growth_dreams", Label: "自己成長・夢", Emoji: "✨", Color: "#C7B8EA"},
	{ID: "relationships", Label: "人間関係", Emoji: "🤝", Color: "#F8C78E"},
	{ID: "emotion_mental", Label: "感情・メンタル", Emoji: "⚡", Color: "#F6CED8"},
	{ID: "romance_partner", Label: "恋愛・パートナー", Emoji: "🩷", Color: "#F5A3B7"},
	{ID: "daily_life", Label: "日常・暮らし", Emoji: "🌿", Color: "#B7D3B1"},
}

// Default is the category every unmatched input degrades to.
var Default = All[0]

var (
	decorations = regexp.MustCompile(`[💼💰✨🤝⚡🩷🌿]`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// rules map keyword patterns to categories, evaluated in order; the first
// match wins. Keep this order in sync with All — it is the same priority
// order as the upstream classifier and must not be reshuffled.
var rules = []struct {
	re  *regexp.Regexp
	cat Category
}{
	{regexp.MustCompile(`仕事|キャリア|work|career`), All[0]},
	{regexp.MustCompile(`お金|収入|金|finance|money|income`), All[1]},
	{regexp.MustCompile(`自己成長|成長|夢|dream|growth`), All[2]},
	{regexp.MustCompile(`人間関係|関係|relationship|relations`), All[3]},
	{regexp.MustCompile(`感情|メンタル|心理|emotion|mental`), All[4]},
	{regexp.MustCompile(`恋愛|パートナー|love|partner`), All[5]},
	{regexp.MustCompile(`日常|暮らし|生活|daily|life`), All[6]},
}

// Normalize maps an arbitrary category-name string onto exactly one canonical
// category. Decorative emoji and whitespace are stripped and matching is
// case-insensitive. Normalize is total: anything unmatched, including the
// empty string, resolves to Default.
func Normalize(raw string) Category {
	s := decorations.ReplaceAllString(raw, "")
	s = whitespace.ReplaceAllString(s, "")
	s = strings.ToLower(s)
	for _, r := range rules {
		if r.re.MatchString(s) {
			return r.cat
		}
	}
	return Default
}

// ColorFor resolves the display color for a (possibly decorated) category
// name. Unknown names get the neutral fallback color.
func ColorFor(name string) string {
	clean := whitespace.ReplaceAllString(decorations.ReplaceAllString(name, ""), "")
	for _, c := range All {
		if c.Label == clean {
			return c.Color
		}
	}
	return FallbackColor
}
