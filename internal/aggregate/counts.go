package aggregate

import "fmt"

// Counts holds rolled-up content totals for a part, episode, or project.
// Summing is a pure fold; an unloaded child contributes zero, never an error.
type Counts struct {
	Beats           int `json:"beats"`
	Shots           int `json:"shots"`
	Storyboards     int `json:"storyboards"`
	Images          int `json:"images"`
	Clips           int `json:"clips"`
	ScreenplayLines int `json:"screenplay_lines"`
}

// Add folds another set of counts into this one.
func (c Counts) Add(other Counts) Counts {
	return Counts{
		Beats:           c.Beats + other.Beats,
		Shots:           c.Shots + other.Shots,
		Storyboards:     c.Storyboards + other.Storyboards,
		Images:          c.Images + other.Images,
		Clips:           c.Clips + other.Clips,
		ScreenplayLines: c.ScreenplayLines + other.ScreenplayLines,
	}
}

// Ratio is a derived metric that may be undefined. Invalid ratios render as
// "n/a" instead of dividing by zero.
type Ratio struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// NewRatio builds a ratio, guarding the zero denominator.
func NewRatio(numerator, denominator int) Ratio {
	if denominator == 0 {
		return Ratio{}
	}
	return Ratio{Value: float64(numerator) / float64(denominator), Valid: true}
}

func (r Ratio) String() string {
	if !r.Valid {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", r.Value)
}

// BeatsPerShot reports the average beats-per-shot density of the counts.
func (c Counts) BeatsPerShot() Ratio {
	return NewRatio(c.Beats, c.Shots)
}

// ShotsPerBeat reports the average shots-per-beat density of the counts.
func (c Counts) ShotsPerBeat() Ratio {
	return NewRatio(c.Shots, c.Beats)
}
