package game

import (
	"fmt"
	"math"
	"strings"
)

const (
	trainingEnergyCost = 20
	statImproveChance  = 0.1
)

// TrainingKey maps an event category to its discipline key,
// e.g. "Show Jumping" to "show_jumping".
func TrainingKey(category string) string {
	return strings.ReplaceAll(strings.ToLower(category), " ", "_")
}

// TrainingGain is the outcome of one training session.
type TrainingGain struct {
	Discipline string    `json:"discipline"`
	Gain       int       `json:"gain"`
	Improved   Attribute `json:"improvedStat,omitempty"`
}

// Train runs one session in discipline. It costs 20 energy and raises the
// discipline by 1-5 (capped at 100); one time in ten a related stat gains a
// point.
func (e *Engine) Train(a *Animal, discipline string) (TrainingGain, error) {
	rules, err := e.Tables.Rules(a.Species)
	if err != nil {
		return TrainingGain{}, err
	}
	related, ok := rules.Disciplines[discipline]
	if !ok {
		return TrainingGain{}, fmt.Errorf("%w: %q", ErrUnknownCategory, discipline)
	}
	if a.Health.Energy < trainingEnergyCost {
		return TrainingGain{}, fmt.Errorf("%w: %s has %d energy", ErrTooTired, a.Name, a.Health.Energy)
	}
	if a.Training == nil {
		a.Training = newTraining(rules)
	}

	res := TrainingGain{Discipline: discipline, Gain: 1 + e.Source.IntN(5)}
	a.Training[discipline] = min(100, a.Training[discipline]+res.Gain)
	a.Health.Energy = max(0, a.Health.Energy-trainingEnergyCost)

	if e.Source.Float64() < statImproveChance {
		attr := pick(e.Source, related)
		if a.Stats == nil {
			a.Stats = Stats{}
		}
		a.Stats[attr] = min(100, a.Stats[attr]+1)
		res.Improved = attr
	}
	return res, nil
}

// TrainingLevel is the rounded mean over every discipline of the species.
func TrainingLevel(rules *SpeciesRules, a *Animal) int {
	if len(rules.Disciplines) == 0 {
		return 0
	}
	total := 0
	for d := range rules.Disciplines {
		total += a.Training[d]
	}
	return int(math.Round(float64(total) / float64(len(rules.Disciplines))))
}
