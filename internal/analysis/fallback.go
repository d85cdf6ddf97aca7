package analysis

import (
	"regexp"
	"strings"
)

// PlaceholderTitle is returned when there is no text to derive a title from.
const PlaceholderTitle = "タイトル（自動）"

// DefaultComment is the fixed empathetic comment used when the model supplies
// none.
const DefaultComment = "気持ちわかるよ。深呼吸していこう。"

// titleWindow is how many runes of the source are considered when deriving a
// fallback title.
const titleWindow = 24

var (
	spaces        = regexp.MustCompile(`\s+`)
	sentenceEnds  = "。．.！!？?"
	genericPhrase = []string{
		"仕事によって得られる内面の達成感を重視",
		"他人の期待に合わせて動きがち",
		"自分軸での仕事の立ち位置を模索中",
	}
	genericHints = []string{
		"他人の期待より、自分の納得を大事にしよう\nー誰かに褒められても、すぐに消える\nー自分で「これでいい」と思えた瞬間のほうが、ずっと残る",
		"何をやるかより、どんな気持ちでやれるか\nー内容よりも、働いているときの自分の感情を大切に\nー心が動く瞬間こそ“自分らしさ”のサイン",
	}
)

// FallbackTitle derives a short title from the source text. The text is
// trimmed and whitespace-collapsed; if a sentence-final mark occurs within
// the first few runes the title is the text up to and including that mark
// (a complete sentence, so no ellipsis). Otherwise the title is the leading
// runes of the text, with an ellipsis appended whenever that actually cut
// something off.
func FallbackTitle(src string) string {
	s := strings.TrimSpace(spaces.ReplaceAllString(src, " "))
	if s == "" {
		return PlaceholderTitle
	}
	runes := []rune(s)
	limit := len(runes)
	if limit > titleWindow {
		limit = titleWindow
	}
	for i := 0; i < limit; i++ {
		if strings.ContainsRune(sentenceEnds, runes[i]) {
			return string(runes[:i+1])
		}
	}
	if len(runes) <= titleWindow {
		return s
	}
	return string(runes[:titleWindow]) + "…"
}

// FallbackComment returns the fixed empathetic two-line comment substitute.
func FallbackComment() string {
	return DefaultComment
}

// FallbackThoughts builds exactly three thought phrases from a candidate
// pool: candidates are trimmed, deduplicated and taken in order, then padded
// from a fixed generic list until three entries exist.
func FallbackThoughts(pool []string) []string {
	seen := make(map[string]struct{}, len(pool))
	out := make([]string, 0, 3)
	for _, t := range pool {
		s := strings.TrimSpace(t)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
		if len(out) == 3 {
			return out
		}
	}
	for _, g := range genericPhrase {
		if len(out) == 3 {
			break
		}
		if _, dup := seen[g]; dup {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	return out
}

// FallbackHints returns the two fixed multi-line reflective prompts.
func FallbackHints() []string {
	out := make([]string, len(genericHints))
	copy(out, genericHints)
	return out
}
