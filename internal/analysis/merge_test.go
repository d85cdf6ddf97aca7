package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeNeverPanics(t *testing.T) {
	cases := []map[string]any{
		nil,
		{},
		{"highLevelCategories": "not a list"},
		{"highLevelCategories": []any{"not a map", 42, nil}},
		{"highLevelCategories": []any{map[string]any{"name": 123}}},
		{"title": 7, "aiComment": []any{}, "emotions": "angry"},
		{"thoughts": map[string]any{}, "hints": 3.14, "posts": "many"},
		{"midCategories": []any{nil, false}},
	}
	for _, raw := range cases {
		assert.NotPanics(t, func() {
			Merge(raw, "text", Quick)
			Merge(raw, "text", Full)
		})
	}
}

func TestMergeCategories(t *testing.T) {
	t.Run("takes at most two, primary first", func(t *testing.T) {
		raw := map[string]any{
			"highLevelCategories": []any{
				map[string]any{"name": "仕事・キャリア", "ratio": 0.6},
				map[string]any{"name": "人間関係", "ratio": 0.3},
				map[string]any{"name": "日常・暮らし", "ratio": 0.1},
			},
		}
		res := Merge(raw, "", Quick)
		require.Len(t, res.HighLevelCategories, 2)
		assert.Equal(t, "💼仕事・キャリア", res.HighLevelCategories[0].Name)
		assert.Equal(t, "🤝人間関係", res.HighLevelCategories[1].Name)
	})

	t.Run("colors are positional", func(t *testing.T) {
		raw := map[string]any{
			"highLevelCategories": []any{
				map[string]any{"name": "お金・収入"},
				map[string]any{"name": "恋愛・パートナー"},
			},
		}
		res := Merge(raw, "", Quick)
		require.Len(t, res.Colors, 2)
		assert.Equal(t, "#E5D68E", res.Colors[0])
		assert.Equal(t, "#F5A3B7", res.Colors[1])
	})

	t.Run("malformed entries degrade in place instead of promoting later ones", func(t *testing.T) {
		raw := map[string]any{
			"highLevelCategories": []any{
				map[string]any{"name": ""},
				map[string]any{"name": "人間関係"},
				map[string]any{"name": "恋愛・パートナー"},
			},
		}
		res := Merge(raw, "", Quick)
		require.Len(t, res.HighLevelCategories, 2)
		assert.Equal(t, "💼仕事・キャリア", res.HighLevelCategories[0].Name)
		assert.Equal(t, "🤝人間関係", res.HighLevelCategories[1].Name)
	})

	t.Run("empty list gets exactly one default", func(t *testing.T) {
		res := Merge(map[string]any{}, "", Quick)
		require.Len(t, res.HighLevelCategories, 1)
		assert.Equal(t, "💼仕事・キャリア", res.HighLevelCategories[0].Name)
		assert.Equal(t, []string{"#75A0E6"}, res.Colors)
	})

	t.Run("full mode falls back to the categories list", func(t *testing.T) {
		raw := map[string]any{
			"highLevelCategories": []any{},
			"categories":          []any{map[string]any{"name": "感情・メンタル"}},
		}
		res := Merge(raw, "", Full)
		require.Len(t, res.HighLevelCategories, 1)
		assert.Equal(t, "⚡感情・メンタル", res.HighLevelCategories[0].Name)
	})

	t.Run("categories alias falls through to the top list", func(t *testing.T) {
		raw := map[string]any{
			"categories":          []any{},
			"highLevelCategories": []any{map[string]any{"name": "money"}},
		}
		res := Merge(raw, "", Full)
		assert.Equal(t, res.HighLevelCategories, res.Categories)
		assert.Equal(t, "💰お金・収入", res.Categories[0].Name)
	})

	t.Run("supplied categories alias is normalized independently", func(t *testing.T) {
		raw := map[string]any{
			"highLevelCategories": []any{map[string]any{"name": "仕事"}},
			"categories": []any{
				map[string]any{"name": "love"},
				map[string]any{"name": "daily"},
			},
		}
		res := Merge(raw, "", Full)
		require.Len(t, res.Categories, 2)
		assert.Equal(t, "🩷恋愛・パートナー", res.Categories[0].Name)
		assert.Equal(t, "🌿日常・暮らし", res.Categories[1].Name)
	})
}

func TestMergeTitleAndComment(t *testing.T) {
	t.Run("midCategories wins over title", func(t *testing.T) {
		raw := map[string]any{
			"midCategories": []any{"友達の転職に焦る"},
			"title":         "別のタイトル",
		}
		res := Merge(raw, "", Quick)
		assert.Equal(t, "友達の転職に焦る", res.Title)
	})

	t.Run("title is used when midCategories is empty", func(t *testing.T) {
		raw := map[string]any{
			"midCategories": []any{},
			"title":         "別のタイトル",
		}
		res := Merge(raw, "", Quick)
		assert.Equal(t, "別のタイトル", res.Title)
	})

	t.Run("fallback title derives from the source text", func(t *testing.T) {
		res := Merge(map[string]any{}, "今日は散歩した。楽しかった。", Quick)
		assert.Equal(t, "今日は散歩した。", res.Title)
	})

	t.Run("blank comment gets the fixed substitute", func(t *testing.T) {
		res := Merge(map[string]any{"aiComment": "   "}, "", Quick)
		assert.Equal(t, DefaultComment, res.AIComment)
	})
}

func TestMergeFullFields(t *testing.T) {
	t.Run("quick mode omits the full-only fields", func(t *testing.T) {
		raw := map[string]any{"summary": "要約", "thoughts": []any{"a"}}
		res := Merge(raw, "", Quick)
		assert.Empty(t, res.Summary)
		assert.Nil(t, res.Emotions)
		assert.Nil(t, res.Thoughts)
		assert.Zero(t, res.Posts)
	})

	t.Run("emotions default to an even split", func(t *testing.T) {
		res := Merge(map[string]any{}, "", Full)
		require.NotNil(t, res.Emotions)
		assert.InDelta(t, 0.33, res.Emotions.Positive, 1e-9)
		assert.InDelta(t, 0.34, res.Emotions.Neutral, 1e-9)
		assert.InDelta(t, 0.33, res.Emotions.Negative, 1e-9)
	})

	t.Run("emotions are clamped to the unit interval", func(t *testing.T) {
		raw := map[string]any{"emotions": map[string]any{
			"positive": 1.7, "neutral": -0.4, "negative": 0.2,
		}}
		res := Merge(raw, "", Full)
		assert.Equal(t, 1.0, res.Emotions.Positive)
		assert.Equal(t, 0.0, res.Emotions.Neutral)
		assert.Equal(t, 0.2, res.Emotions.Negative)
	})

	t.Run("thoughts capped at three unique entries", func(t *testing.T) {
		raw := map[string]any{"thoughts": []any{"同じ", "同じ", "別", "もう一つ", "余り"}}
		res := Merge(raw, "", Full)
		assert.Equal(t, []string{"同じ", "別", "もう一つ"}, res.Thoughts)
	})

	t.Run("thoughts identical after clipping collapse to one", func(t *testing.T) {
		prefix := strings.Repeat("あ", 30)
		raw := map[string]any{"thoughts": []any{prefix + "一", prefix + "二", "別"}}
		res := Merge(raw, "", Full)
		assert.Equal(t, []string{prefix, "別"}, res.Thoughts)
	})

	t.Run("hint entries clipped in length", func(t *testing.T) {
		long := strings.Repeat("あ", 200)
		res := Merge(map[string]any{"hints": []any{long}}, "", Full)
		require.Len(t, res.Hints, 1)
		assert.Equal(t, 150, len([]rune(res.Hints[0])))
	})

	t.Run("hints capped at two", func(t *testing.T) {
		res := Merge(map[string]any{"hints": []any{"a", "b", "c"}}, "", Full)
		assert.Equal(t, []string{"a", "b"}, res.Hints)
	})

	t.Run("posts and streak default to one", func(t *testing.T) {
		res := Merge(map[string]any{}, "", Full)
		assert.Equal(t, 1, res.Posts)
		assert.Equal(t, 1, res.Streak)

		res = Merge(map[string]any{"posts": 4.0, "streak": 9.0}, "", Full)
		assert.Equal(t, 4, res.Posts)
		assert.Equal(t, 9, res.Streak)

		res = Merge(map[string]any{"posts": "many", "streak": -2.0}, "", Full)
		assert.Equal(t, 1, res.Posts)
		assert.Equal(t, 1, res.Streak)
	})
}
