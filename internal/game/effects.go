package game

import (
	"encoding/json"
	"fmt"
	"math/bits"

	"gopkg.in/yaml.v3"
)

// Effect is a set of special capture-location behaviours.
type Effect uint32

const (
	// Horse biomes
	HighMarkings         Effect = 1 << iota // 2-4 markings from the high pool
	RarePatterns                            // pattern genes via overrides
	CleanHealth                             // probabilistic N/N reset of defect loci
	StatBoost                               // additive stat modifiers
	RareColors                              // colour genes via overrides
	TemperamentVariation                    // difficult/spirited leaning temperament
	UniqueOverlays                          // occasional coat overlay
	CalmTemperament                         // calm/balanced temperament
	RareRecessive                           // recessive traits via overrides
	ExclusiveCoats                          // frequent coat overlay
	StatExtremes                            // per-stat extreme redraw

	// Dog locations
	BondingSpeedBonus
	HiddenDisorders // carrier injection and occasional affected locus
	StrayHeroChance // rare special title
	PurebredBonus
	DisciplineAffinity
	BreederPoints // capture awards breeder points

	lastEffect = BreederPoints
)

var effectNames = map[Effect]string{
	HighMarkings:         "high_markings",
	RarePatterns:         "rare_patterns",
	CleanHealth:          "clean_health",
	StatBoost:            "stat_boost",
	RareColors:           "rare_colors",
	TemperamentVariation: "temperament_variation",
	UniqueOverlays:       "unique_overlays",
	CalmTemperament:      "calm_temperament",
	RareRecessive:        "rare_recessive",
	ExclusiveCoats:       "exclusive_coats",
	StatExtremes:         "stat_extremes",
	BondingSpeedBonus:    "bonding_speed_bonus",
	HiddenDisorders:      "hidden_disorders",
	StrayHeroChance:      "stray_hero_chance",
	PurebredBonus:        "purebred_bonus",
	DisciplineAffinity:   "discipline_affinity",
	BreederPoints:        "breeder_points",
}

// Has checks if the set contains every effect in other.
func (e Effect) Has(other Effect) bool {
	return e&other == other
}

// Add adds effects to the set.
func (e Effect) Add(other Effect) Effect {
	return e | other
}

// ParseEffect maps a tag like "clean_health" to its flag.
func ParseEffect(name string) (Effect, error) {
	for f, n := range effectNames {
		if n == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown special effect %q", name)
}

// Names lists the tags in the set in flag order.
func (e Effect) Names() []string {
	out := make([]string, 0, bits.OnesCount32(uint32(e)))
	for f := Effect(1); f <= lastEffect; f <<= 1 {
		if e.Has(f) {
			out = append(out, effectNames[f])
		}
	}
	return out
}

func (e Effect) String() string {
	return fmt.Sprint(e.Names())
}

// UnmarshalYAML decodes a list of effect tags. Unknown tags fail loading.
func (e *Effect) UnmarshalYAML(node *yaml.Node) error {
	var names []string
	if err := node.Decode(&names); err != nil {
		return err
	}
	set, err := parseEffects(names)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*e = set
	return nil
}

func parseEffects(names []string) (Effect, error) {
	var set Effect
	for _, n := range names {
		f, err := ParseEffect(n)
		if err != nil {
			return 0, err
		}
		set = set.Add(f)
	}
	return set, nil
}

// MarshalYAML encodes the set as a tag list.
func (e Effect) MarshalYAML() (any, error) {
	return e.Names(), nil
}

// MarshalJSON encodes the set as a tag list.
func (e Effect) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Names())
}

// UnmarshalJSON decodes a tag list. Unknown tags are rejected.
func (e *Effect) UnmarshalJSON(b []byte) error {
	var names []string
	if err := json.Unmarshal(b, &names); err != nil {
		return err
	}
	set, err := parseEffects(names)
	if err != nil {
		return err
	}
	*e = set
	return nil
}
