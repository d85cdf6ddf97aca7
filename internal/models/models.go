package models

// HighLevelCategory is one classified bucket of an analysis result, in
// descending relevance order; the first entry is the primary category.
type HighLevelCategory struct {
	Name string `json:"name"`
}

// Emotions is the positive/neutral/negative split of a full analysis,
// each component in [0,1].
type Emotions struct {
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

// AnalysisResult is the canonical analysis record, a superset covering both
// the quick preview shape and the full shape. Quick results carry only the
// first four fields; full results carry everything.
type AnalysisResult struct {
	HighLevelCategories []HighLevelCategory `json:"highLevelCategories"`
	Colors              []string            `json:"colors"`
	Title               string              `json:"title"`
	AIComment           string              `json:"aiComment"`

	Summary    string              `json:"summary,omitempty"`
	Emotions   *Emotions           `json:"emotions,omitempty"`
	Categories []HighLevelCategory `json:"categories,omitempty"`
	MidTop     []string            `json:"midTop,omitempty"`
	Keywords   []string            `json:"keywords,omitempty"`
	Thoughts   []string            `json:"thoughts,omitempty"`
	Hints      []string            `json:"hints,omitempty"`
	Posts      int                 `json:"posts,omitempty"`
	Streak     int                 `json:"streak,omitempty"`
	PhotoURL   string              `json:"photoUrl,omitempty"`
}

// RenderModel is the presentation-ready projection of a stored full result.
type RenderModel struct {
	Background string   `json:"background"` // rgba() tint from the primary category
	Title      string   `json:"title"`
	Thoughts   []string `json:"thoughts"`
	Hints      []string `json:"hints"`
	Posts      int      `json:"posts"`
	Streak     int      `json:"streak"`
	PhotoURL   string   `json:"photoUrl,omitempty"`
}

// EngagementState is the gate's observable two-flag record. Both flags are
// monotone: once set they never reset within a session.
type EngagementState struct {
	AnalysisDone bool `json:"analysisDone"`
	Engaged      bool `json:"engaged"`
}
