package game

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"menagerie/internal/genetics"
)

// ScoreDetail explains how a score was reached.
type ScoreDetail struct {
	Attributes []Attribute `json:"attributes"`
	Base       float64     `json:"base"`
	Training   int         `json:"training"`
	Luck       float64     `json:"luck"`
}

// Result is one scored entry in an event.
type Result struct {
	Owner     string      `json:"owner"`
	Animal    string      `json:"animal"`
	Score     float64     `json:"score"`
	Placement int         `json:"placement"`
	Detail    ScoreDetail `json:"detail"`
	Marks     JudgeMarks  `json:"marks"`
}

// JudgeMarks are cosmetic 80-100 marks shown next to a result.
type JudgeMarks struct {
	Speed      float64 `json:"speed"`
	Accuracy   float64 `json:"accuracy"`
	Style      float64 `json:"style"`
	Difficulty float64 `json:"difficulty"`
}

// ScoreParticipant scores a for category: the mean of the category's
// attributes, plus training in the matching discipline, plus a uniform
// perturbation in [-10, 10). Scores floor at 0 and are rounded to two
// decimals.
func ScoreParticipant(src genetics.Source, rules *SpeciesRules, a *Animal, category string) (float64, ScoreDetail, error) {
	attrs, ok := rules.Categories[category]
	if !ok || len(attrs) == 0 {
		return 0, ScoreDetail{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	sum := 0
	for _, attr := range attrs {
		sum += a.Stats[attr]
	}
	d := ScoreDetail{
		Attributes: attrs,
		Base:       float64(sum) / float64(len(attrs)),
		Training:   a.Training[TrainingKey(category)],
		Luck:       (src.Float64() - 0.5) * 20,
	}
	score := math.Max(0, d.Base+float64(d.Training)+d.Luck)
	return round2(score), d, nil
}

// RankResults sorts by score, highest first, keeping registration order for
// ties, and assigns placements from 1.
func RankResults(results []Result) {
	slices.SortStableFunc(results, func(a, b Result) int {
		return cmp.Compare(b.Score, a.Score)
	})
	for i := range results {
		results[i].Placement = i + 1
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func judgeMarks(src genetics.Source) JudgeMarks {
	mark := func() float64 { return round2(80 + src.Float64()*20) }
	return JudgeMarks{Speed: mark(), Accuracy: mark(), Style: mark(), Difficulty: mark()}
}
