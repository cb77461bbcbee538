package engine

// Weights holds the relative importance of each artifact attribute in the
// combined similarity score. Values must be non-negative; they do not have to
// sum to 1.0, the engine normalizes them at construction time.
type Weights struct {
	Title       float64 `json:"title"`
	Description float64 `json:"description"`
	Content     float64 `json:"content"`
	Tags        float64 `json:"tags"`
}

// DefaultWeights mirrors the historical defaults (title 0.4, description 0.3,
// content 0.3, tags 0.3 before normalization).
func DefaultWeights() Weights {
	return Weights{Title: 0.4, Description: 0.3, Content: 0.3, Tags: 0.3}
}

// normalized returns a copy scaled so the weights sum to 1.0. An all-zero
// input falls back to an equal split instead of dividing by zero.
func (w Weights) normalized() Weights {
	total := w.Title + w.Description + w.Content + w.Tags
	if total == 0 {
		return Weights{Title: 0.25, Description: 0.25, Content: 0.25, Tags: 0.25}
	}
	return Weights{
		Title:       w.Title / total,
		Description: w.Description / total,
		Content:     w.Content / total,
		Tags:        w.Tags / total,
	}
}
