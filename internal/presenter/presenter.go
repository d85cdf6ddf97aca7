package presenter

import (
	"fmt"
	"strconv"

	"github.com/nowme-app/nowme-server/internal/analysis"
	"github.com/nowme-app/nowme-server/internal/category"
	"github.com/nowme-app/nowme-server/internal/models"
)

// backgroundAlpha is the fixed blend applied to the primary category color.
const backgroundAlpha = 0.3

// Present derives the render model for a stored full result. Pure: missing
// thoughts/hints are rebuilt from the secondary fields with the same
// pool-then-pad derivation the fallback generator uses.
func Present(result models.AnalysisResult) models.RenderModel {
	rm := models.RenderModel{
		Background: backgroundTint(result),
		Title:      result.Title,
		Thoughts:   displayThoughts(result),
		Hints:      displayHints(result),
		Posts:      result.Posts,
		Streak:     result.Streak,
		PhotoURL:   result.PhotoURL,
	}
	if rm.Posts < 1 {
		rm.Posts = 1
	}
	if rm.Streak < 1 {
		rm.Streak = 1
	}
	return rm
}

func backgroundTint(result models.AnalysisResult) string {
	name := ""
	if len(result.Categories) > 0 {
		name = result.Categories[0].Name
	} else if len(result.HighLevelCategories) > 0 {
		name = result.HighLevelCategories[0].Name
	}
	r, g, b := hexToRGB(category.ColorFor(name))
	return fmt.Sprintf("rgba(%d, %d, %d, %g)", r, g, b, backgroundAlpha)
}

func displayThoughts(result models.AnalysisResult) []string {
	if len(result.Thoughts) > 0 {
		if len(result.Thoughts) > 3 {
			return result.Thoughts[:3]
		}
		return result.Thoughts
	}
	pool := append(append([]string{}, result.MidTop...), result.Keywords...)
	return analysis.FallbackThoughts(pool)
}

func displayHints(result models.AnalysisResult) []string {
	if len(result.Hints) > 0 {
		if len(result.Hints) > 2 {
			return result.Hints[:2]
		}
		return result.Hints
	}
	return analysis.FallbackHints()
}

func hexToRGB(hex string) (int, int, int) {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0xd9, 0xd9, 0xd9
	}
	return int(n >> 16 & 0xff), int(n >> 8 & 0xff), int(n & 0xff)
}
