package presenter

import (
	"testing"

	"github.com/nowme-app/nowme-server/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestPresent(t *testing.T) {
	t.Run("background tint from the primary category", func(t *testing.T) {
		rm := Present(models.AnalysisResult{
			Categories: []models.HighLevelCategory{{Name: "💼仕事・キャリア"}},
		})
		// #75A0E6 at the fixed alpha.
		assert.Equal(t, "rgba(117, 160, 230, 0.3)", rm.Background)
	})

	t.Run("falls back to highLevelCategories for the tint", func(t *testing.T) {
		rm := Present(models.AnalysisResult{
			HighLevelCategories: []models.HighLevelCategory{{Name: "🌿日常・暮らし"}},
		})
		assert.Equal(t, "rgba(183, 211, 177, 0.3)", rm.Background)
	})

	t.Run("no category yields the neutral gray tint", func(t *testing.T) {
		rm := Present(models.AnalysisResult{})
		assert.Equal(t, "rgba(221, 221, 221, 0.3)", rm.Background)
	})

	t.Run("stored thoughts and hints pass through", func(t *testing.T) {
		rm := Present(models.AnalysisResult{
			Thoughts: []string{"a", "b"},
			Hints:    []string{"h1"},
		})
		assert.Equal(t, []string{"a", "b"}, rm.Thoughts)
		assert.Equal(t, []string{"h1"}, rm.Hints)
	})

	t.Run("missing thoughts derive from midTop and keywords", func(t *testing.T) {
		rm := Present(models.AnalysisResult{
			MidTop:   []string{"評価", "将来不安"},
			Keywords: []string{"評価", "挑戦"},
		})
		assert.Equal(t, []string{"評価", "将来不安", "挑戦"}, rm.Thoughts)
	})

	t.Run("missing hints get the fixed prompts", func(t *testing.T) {
		rm := Present(models.AnalysisResult{})
		assert.Len(t, rm.Hints, 2)
	})

	t.Run("counters default to one", func(t *testing.T) {
		rm := Present(models.AnalysisResult{})
		assert.Equal(t, 1, rm.Posts)
		assert.Equal(t, 1, rm.Streak)

		rm = Present(models.AnalysisResult{Posts: 5, Streak: 2})
		assert.Equal(t, 5, rm.Posts)
		assert.Equal(t, 2, rm.Streak)
	})
}
