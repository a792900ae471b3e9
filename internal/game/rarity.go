package game

import (
	"errors"
	"sort"

	"menagerie/internal/genetics"
)

// Rarity is an ordered tier assigned once at creation.
type Rarity string

const (
	Common    Rarity = "common"
	Uncommon  Rarity = "uncommon"
	Rare      Rarity = "rare"
	Epic      Rarity = "epic"
	Legendary Rarity = "legendary"
)

// Rarities lists the tiers from lowest to highest.
var Rarities = []Rarity{Common, Uncommon, Rare, Epic, Legendary}

// Rank orders tiers: common is 0, legendary 4, unknown -1.
func (r Rarity) Rank() int {
	for i, x := range Rarities {
		if x == r {
			return i
		}
	}
	return -1
}

// Valid reports whether r is a known tier.
func (r Rarity) Valid() bool { return r.Rank() >= 0 }

// RarityThresholds are ascending cumulative base probabilities for the
// capture roll of one species.
type RarityThresholds struct {
	Legendary float64 `yaml:"legendary"`
	Epic      float64 `yaml:"epic"`
	Rare      float64 `yaml:"rare"`
	Uncommon  float64 `yaml:"uncommon"`
}

func (t RarityThresholds) validate() error {
	if !(0 < t.Legendary && t.Legendary < t.Epic && t.Epic < t.Rare && t.Rare < t.Uncommon && t.Uncommon <= 1) {
		return errors.New("thresholds must ascend within (0, 1]")
	}
	return nil
}

// ClassifyRarity maps roll in [0,1) to a tier. Every threshold is scaled by
// locationMod, doubled again for a special trait, and checked from
// legendary down; the first match wins. Scaled thresholds above 1 are not
// renormalised, so high modifiers saturate the upper tiers.
func ClassifyRarity(t RarityThresholds, roll, locationMod float64, special bool) Rarity {
	mod := locationMod
	if special {
		mod *= 2
	}
	switch {
	case roll < t.Legendary*mod:
		return Legendary
	case roll < t.Epic*mod:
		return Epic
	case roll < t.Rare*mod:
		return Rare
	case roll < t.Uncommon*mod:
		return Uncommon
	default:
		return Common
	}
}

// RollRarity draws the capture roll and classifies it.
func RollRarity(src genetics.Source, t RarityThresholds, locationMod float64, special bool) Rarity {
	return ClassifyRarity(t, src.Float64(), locationMod, special)
}

// RarityRoll is one step of a sequential rarity draw.
type RarityRoll struct {
	Tier   Rarity  `yaml:"tier"`
	Chance float64 `yaml:"chance"`
}

// RollSequential makes one independent roll per step and returns the first
// tier whose roll succeeds, or common.
func RollSequential(src genetics.Source, steps []RarityRoll) Rarity {
	for _, s := range steps {
		if genetics.Chance(src, s.Chance) {
			return s.Tier
		}
	}
	return Common
}

func pick[T any](src genetics.Source, list []T) T {
	return list[src.IntN(len(list))]
}

// horseTemperament chooses a temperament word for a captured horse.
func horseTemperament(src genetics.Source, words []string, effects Effect, stage *Stage) string {
	switch {
	case effects.Has(CalmTemperament):
		if genetics.Chance(src, 0.6) {
			return "calm"
		}
		return "balanced"
	case effects.Has(TemperamentVariation):
		if genetics.Chance(src, 0.4) {
			return "difficult"
		}
		if genetics.Chance(src, 0.7) {
			return "spirited"
		}
		return "balanced"
	case stage.StubbornChance > 0:
		if genetics.Chance(src, stage.StubbornChance) {
			return "stubborn"
		}
		return pick(src, words)
	default:
		if genetics.Chance(src, 0.4) {
			return "balanced"
		}
		return pick(src, words)
	}
}

// dogTemperament picks from the location bias word list.
func dogTemperament(src genetics.Source, words map[string][]string, bias string) string {
	list, ok := words[bias]
	if !ok || len(list) == 0 {
		list = words["balanced"]
	}
	return pick(src, list)
}

// specialTitle rolls for a rare title at locations that grant one.
func specialTitle(src genetics.Source, c CaptureTuning, effects Effect) string {
	if !effects.Has(StrayHeroChance) || !genetics.Chance(src, c.TitleChance) {
		return ""
	}
	return pick(src, c.Titles)
}

// affinities makes one roll and, on success, tags every discipline whose
// breed list contains breed.
func affinities(src genetics.Source, rule AffinityRule, breed string) []string {
	if rule.Chance <= 0 || !genetics.Chance(src, rule.Chance) {
		return nil
	}
	disciplines := make([]string, 0, len(rule.Disciplines))
	for d := range rule.Disciplines {
		disciplines = append(disciplines, d)
	}
	sort.Strings(disciplines)
	var out []string
	for _, d := range disciplines {
		for _, b := range rule.Disciplines[d] {
			if b == breed {
				out = append(out, d)
				break
			}
		}
	}
	return out
}
