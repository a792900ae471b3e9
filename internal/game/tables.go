package game

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"gopkg.in/yaml.v3"

	"menagerie/internal/genetics"
)

//go:embed tables.yaml
var defaultTablesYAML []byte

// Range is an inclusive floating point interval.
type Range struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// IntRange is an inclusive integer interval.
type IntRange struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// Breed is one row of a species' baseline table.
type Breed struct {
	Stats  Stats  `yaml:"stats" json:"stats"`
	Height *Range `yaml:"height" json:"height,omitempty"`
	Weight *Range `yaml:"weight" json:"weight,omitempty"`
}

// GeneticBonus adds Bonus to Attribute when the genome carries Pair at Locus.
type GeneticBonus struct {
	Locus     string        `yaml:"locus"`
	Pair      genetics.Pair `yaml:"pair"`
	Attribute Attribute     `yaml:"attribute"`
	Bonus     int           `yaml:"bonus"`
}

// SpeciesRules is everything the engine knows about one species.
type SpeciesRules struct {
	Sire                 Gender                 `yaml:"sire"`
	Dam                  Gender                 `yaml:"dam"`
	Newborn              string                 `yaml:"newborn"`
	Attributes           []Attribute            `yaml:"attributes"`
	DefaultHeight        Range                  `yaml:"default_height"`
	DefaultWeight        *Range                 `yaml:"default_weight"`
	NewbornHeight        Range                  `yaml:"newborn_height"`
	NewbornWeight        *Range                 `yaml:"newborn_weight"`
	DefaultValue         int                    `yaml:"default_value"`
	MinBreedingAgeMonths int                    `yaml:"min_breeding_age_months"`
	CooldownDays         int                    `yaml:"cooldown_days"`
	CaptureRarity        RarityThresholds       `yaml:"capture_rarity"`
	PurchaseRarity       []RarityRoll           `yaml:"purchase_rarity"`
	OffspringRarity      []RarityRoll           `yaml:"offspring_rarity"`
	GeneticBonuses       []GeneticBonus         `yaml:"genetic_bonuses"`
	Categories           map[string][]Attribute `yaml:"categories"`
	Disciplines          map[string][]Attribute `yaml:"disciplines"`
	Breeds               map[string]Breed       `yaml:"breeds"`
}

// HasAttribute reports whether a belongs to the species' stat set.
func (s *SpeciesRules) HasAttribute(a Attribute) bool {
	for _, x := range s.Attributes {
		if x == a {
			return true
		}
	}
	return false
}

// BreedNames returns the breeds in sorted order.
func (s *SpeciesRules) BreedNames() []string {
	out := make([]string, 0, len(s.Breeds))
	for name := range s.Breeds {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Biome configures wild horse capture.
type Biome struct {
	Name              string              `yaml:"name" json:"name"`
	Description       string              `yaml:"description" json:"description"`
	Costs             Cost                `yaml:"costs" json:"costs"`
	StatModifiers     Stats               `yaml:"stat_modifiers" json:"statModifiers,omitempty"`
	BreedPreferences  []string            `yaml:"breed_preferences" json:"breedPreferences,omitempty"`
	RarityModifier    float64             `yaml:"rarity_modifier" json:"rarityModifier"`
	Effects           Effect              `yaml:"effects" json:"effects"`
	EventOnly         bool                `yaml:"event_only" json:"eventOnly,omitempty"`
	CleanHealthChance float64             `yaml:"clean_health_chance" json:"-"`
	Overrides         []genetics.Override `yaml:"overrides" json:"-"`
	Overlays          []string            `yaml:"overlays" json:"-"`
}

// Stage is a horse maturity bracket.
type Stage struct {
	Name              string  `yaml:"name" json:"name"`
	MinAgeMonths      int     `yaml:"min_age_months" json:"minAgeMonths"`
	MaxAgeMonths      int     `yaml:"max_age_months" json:"maxAgeMonths"`
	StatScale         float64 `yaml:"stat_scale" json:"statScale"`
	BondingModifier   float64 `yaml:"bonding_modifier" json:"bondingModifier"`
	TrainingPotential string  `yaml:"training_potential" json:"trainingPotential"`
	StubbornChance    float64 `yaml:"stubborn_chance" json:"-"`
}

// AffinityRule tags captured dogs with show disciplines their breed suits.
type AffinityRule struct {
	Chance      float64             `yaml:"chance"`
	Disciplines map[string][]string `yaml:"disciplines"`
}

// Location configures wild dog capture.
type Location struct {
	Name              string       `yaml:"name" json:"name"`
	Description       string       `yaml:"description" json:"description"`
	Costs             Cost         `yaml:"costs" json:"costs"`
	BreedPreferences  []string     `yaml:"breed_preferences" json:"breedPreferences"`
	TemperamentBias   string       `yaml:"temperament_bias" json:"temperamentBias"`
	StatsModifier     float64      `yaml:"stats_modifier" json:"statsModifier"`
	BondingSpeedBonus int          `yaml:"bonding_speed_bonus" json:"bondingSpeedBonus"`
	TamingDifficulty  float64      `yaml:"taming_difficulty" json:"tamingDifficulty"`
	RarityModifier    float64      `yaml:"rarity_modifier" json:"rarityModifier"`
	COI               IntRange     `yaml:"coi" json:"-"`
	Effects           Effect       `yaml:"effects" json:"effects"`
	CleanHealthChance float64      `yaml:"clean_health_chance" json:"-"`
	PremiumOnly       bool         `yaml:"premium_only" json:"premiumOnly"`
	Affinity          AffinityRule `yaml:"affinity" json:"-"`
}

// MarkingRule draws between Min and Max markings from Pool.
type MarkingRule struct {
	Min  int      `yaml:"min"`
	Max  int      `yaml:"max"`
	Pool []string `yaml:"pool"`
}

// ChancePool grants the whole Pool with probability Chance.
type ChancePool struct {
	Chance float64  `yaml:"chance"`
	Pool   []string `yaml:"pool"`
}

// CaptureTuning holds the constants shared by every capture location.
type CaptureTuning struct {
	HorsePreferredChance   float64             `yaml:"horse_preferred_chance"`
	DogPreferredChance     float64             `yaml:"dog_preferred_chance"`
	ExtremeChance          float64             `yaml:"extreme_chance"`
	Markings               MarkingRule         `yaml:"markings"`
	HighMarkings           MarkingRule         `yaml:"high_markings"`
	DogMarkings            ChancePool          `yaml:"dog_markings"`
	UniqueOverlayChance    float64             `yaml:"unique_overlay_chance"`
	ExclusiveOverlayChance float64             `yaml:"exclusive_overlay_chance"`
	CarrierRate            float64             `yaml:"carrier_rate"`
	AffectedChance         float64             `yaml:"affected_chance"`
	TitleChance            float64             `yaml:"title_chance"`
	Titles                 []string            `yaml:"titles"`
	HorseTemperaments      []string            `yaml:"horse_temperaments"`
	DogTemperaments        map[string][]string `yaml:"dog_temperaments"`
	BreederPoints          int                 `yaml:"breeder_points"`
	Experience             int                 `yaml:"experience"`
	EventExperienceBonus   int                 `yaml:"event_experience_bonus"`
	ExperiencePerLevel     int                 `yaml:"experience_per_level"`
}

// ReputationRules are shelter reputation gains per action.
type ReputationRules struct {
	Adopt             int `yaml:"adopt"`
	AdoptWithDisorder int `yaml:"adopt_with_disorder"`
	AdoptSenior       int `yaml:"adopt_senior"`
	Sponsor           int `yaml:"sponsor"`
	DonatePer100Coins int `yaml:"donate_per_100_coins"`
	CompleteQuest     int `yaml:"complete_quest"`
}

// ShelterRules prices adoptions and rewards shelter activity.
type ShelterRules struct {
	BaseAdoptionFee      int                `yaml:"base_adoption_fee"`
	RarityFeeMultipliers map[Rarity]float64 `yaml:"rarity_fee_multipliers"`
	DisorderDiscount     float64            `yaml:"disorder_discount"`
	SeniorAgeYears       int                `yaml:"senior_age_years"`
	SeniorDiscount       float64            `yaml:"senior_discount"`
	TitlePremium         float64            `yaml:"title_premium"`
	Reputation           ReputationRules    `yaml:"reputation"`
	MaxSponsored         int                `yaml:"max_sponsored"`
}

// Tables is the validated reference data. Treat it as read-only once
// LoadTables returns; it is shared across goroutines without locking.
type Tables struct {
	Species   map[genetics.Species]*SpeciesRules `yaml:"species"`
	Biomes    map[string]*Biome                  `yaml:"biomes"`
	Stages    map[string]*Stage                  `yaml:"stages"`
	Locations map[string]*Location               `yaml:"locations"`
	Capture   CaptureTuning                      `yaml:"capture"`
	Shelter   ShelterRules                       `yaml:"shelter"`
}

// LoadTables loads the embedded tables, overlays the YAML file at path when
// it is non-empty, and validates the result.
func LoadTables(path string) (*Tables, error) {
	t := &Tables{}
	if err := yaml.Unmarshal(defaultTablesYAML, t); err != nil {
		return nil, fmt.Errorf("parsing embedded tables: %w", err)
	}
	if path != "" {
		b, err := os.ReadFile(filepath.Clean(path)) //nolint:gosec // operator supplied path
		if err != nil {
			return nil, fmt.Errorf("reading tables file: %w", err)
		}
		if err := yaml.Unmarshal(b, t); err != nil {
			return nil, fmt.Errorf("parsing tables file: %w", err)
		}
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// DefaultTables returns the embedded tables. It panics if they are invalid,
// which only a broken build can cause.
func DefaultTables() *Tables {
	t, err := LoadTables("")
	if err != nil {
		panic(fmt.Sprintf("game: embedded tables: %v", err))
	}
	return t
}

// Rules returns the rules for a species.
func (t *Tables) Rules(species genetics.Species) (*SpeciesRules, error) {
	r, ok := t.Species[species]
	if !ok {
		return nil, fmt.Errorf("%w: species %q", ErrInvalidSpeciesOrBreed, species)
	}
	return r, nil
}

// Baseline returns the breed's baseline stats. For an unknown breed it
// returns a flat baseline of 50 and false.
func (t *Tables) Baseline(species genetics.Species, breed string) (Stats, bool, error) {
	r, err := t.Rules(species)
	if err != nil {
		return nil, false, err
	}
	if b, ok := r.Breeds[breed]; ok {
		return b.Stats, true, nil
	}
	generic := make(Stats, len(r.Attributes))
	for _, a := range r.Attributes {
		generic[a] = 50
	}
	return generic, false, nil
}

// Biome looks up a horse capture biome.
func (t *Tables) Biome(id string) (*Biome, error) {
	b, ok := t.Biomes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBiome, id)
	}
	return b, nil
}

// Stage looks up a maturity stage.
func (t *Tables) Stage(id string) (*Stage, error) {
	s, ok := t.Stages[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStage, id)
	}
	return s, nil
}

// Location looks up a dog capture location.
func (t *Tables) Location(id string) (*Location, error) {
	l, ok := t.Locations[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLocation, id)
	}
	return l, nil
}

// SuggestBreed returns the closest known breed name for a misspelt one.
func (t *Tables) SuggestBreed(species genetics.Species, name string) (string, bool) {
	r, ok := t.Species[species]
	if !ok || name == "" {
		return "", false
	}
	in := strings.ToLower(strings.TrimSpace(name))
	best, bestDist := "", -1
	for _, cand := range r.BreedNames() {
		dist := levenshtein.ComputeDistance(in, strings.ToLower(cand))
		if dist > levenshteinLimit(len(cand)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = cand, dist
		}
	}
	return best, bestDist >= 0
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

// Validate checks cross references and numeric ranges across all tables.
func (t *Tables) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	for _, sp := range []genetics.Species{genetics.Horse, genetics.Dog} {
		r, ok := t.Species[sp]
		if !ok {
			add("species %s: missing", sp)
			continue
		}
		errs = append(errs, r.validate(sp)...)
	}
	horse, dog := t.Species[genetics.Horse], t.Species[genetics.Dog]

	if len(t.Biomes) == 0 {
		add("biomes: none defined")
	}
	for id, b := range t.Biomes {
		if b.RarityModifier <= 0 {
			add("biome %s: rarity_modifier must be positive", id)
		}
		if b.Costs.Coins == 0 && b.Costs.Gems == 0 && len(b.Costs.Items) == 0 {
			add("biome %s: no cost", id)
		}
		if horse != nil {
			for a := range b.StatModifiers {
				if !horse.HasAttribute(a) {
					add("biome %s: unknown stat %q", id, a)
				}
			}
			for _, name := range b.BreedPreferences {
				if _, ok := horse.Breeds[name]; !ok {
					add("biome %s: unknown breed %q", id, name)
				}
			}
		}
		if b.Effects.Has(CleanHealth) != (b.CleanHealthChance > 0) {
			add("biome %s: clean_health effect and clean_health_chance must be set together", id)
		}
		if (b.Effects.Has(UniqueOverlays) || b.Effects.Has(ExclusiveCoats)) && len(b.Overlays) == 0 {
			add("biome %s: overlay effect without overlays", id)
		}
		if err := validateOverrides(genetics.Horse, b.Overrides); err != nil {
			add("biome %s: %w", id, err)
		}
	}

	if len(t.Stages) == 0 {
		add("stages: none defined")
	}
	for id, s := range t.Stages {
		if s.MinAgeMonths < 0 || s.MaxAgeMonths < s.MinAgeMonths {
			add("stage %s: bad age range %d-%d", id, s.MinAgeMonths, s.MaxAgeMonths)
		}
		if s.StatScale <= 0 || s.StatScale > 1 {
			add("stage %s: stat_scale %v outside (0, 1]", id, s.StatScale)
		}
	}

	if len(t.Locations) == 0 {
		add("locations: none defined")
	}
	for id, l := range t.Locations {
		if l.StatsModifier <= 0 || l.RarityModifier <= 0 {
			add("location %s: modifiers must be positive", id)
		}
		if l.COI.Min < 0 || l.COI.Max < l.COI.Min {
			add("location %s: bad coi range", id)
		}
		if _, ok := t.Capture.DogTemperaments[l.TemperamentBias]; !ok {
			if _, ok := t.Capture.DogTemperaments["balanced"]; !ok {
				add("location %s: no temperament words for %q", id, l.TemperamentBias)
			}
		}
		if l.Effects.Has(CleanHealth) != (l.CleanHealthChance > 0) {
			add("location %s: clean_health effect and clean_health_chance must be set together", id)
		}
		if l.Effects.Has(StrayHeroChance) && len(t.Capture.Titles) == 0 {
			add("location %s: stray_hero_chance without titles", id)
		}
		if dog != nil {
			for _, name := range l.BreedPreferences {
				if _, ok := dog.Breeds[name]; !ok {
					add("location %s: unknown breed %q", id, name)
				}
			}
			for disc, breeds := range l.Affinity.Disciplines {
				for _, name := range breeds {
					if _, ok := dog.Breeds[name]; !ok {
						add("location %s: affinity %s: unknown breed %q", id, disc, name)
					}
				}
			}
		}
	}

	c := t.Capture
	for name, m := range map[string]MarkingRule{"markings": c.Markings, "high_markings": c.HighMarkings} {
		if m.Min < 0 || m.Max < m.Min || len(m.Pool) == 0 {
			add("capture %s: bad rule", name)
		}
	}
	if len(c.HorseTemperaments) == 0 {
		add("capture: horse_temperaments empty")
	}
	if c.ExperiencePerLevel <= 0 {
		add("capture: experience_per_level must be positive")
	}
	for _, tier := range Rarities {
		if _, ok := t.Shelter.RarityFeeMultipliers[tier]; !ok {
			add("shelter: no fee multiplier for %s", tier)
		}
	}

	return errors.Join(errs...)
}

func (r *SpeciesRules) validate(sp genetics.Species) []error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("species %s: "+format, append([]any{sp}, args...)...))
	}

	if r.Sire == "" || r.Dam == "" || r.Sire == r.Dam {
		add("sire and dam genders must be distinct")
	}
	if len(r.Attributes) != 10 {
		add("expected 10 attributes, got %d", len(r.Attributes))
	}
	seen := map[Attribute]bool{}
	for _, a := range r.Attributes {
		if seen[a] {
			add("duplicate attribute %q", a)
		}
		seen[a] = true
	}
	if len(r.Breeds) == 0 {
		add("no breeds")
	}
	for name, b := range r.Breeds {
		if len(b.Stats) != len(r.Attributes) {
			add("breed %s: %d stats for %d attributes", name, len(b.Stats), len(r.Attributes))
		}
		for a, v := range b.Stats {
			if !seen[a] {
				add("breed %s: unknown stat %q", name, a)
			}
			if v < 0 || v > 100 {
				add("breed %s: %s=%d outside 0-100", name, a, v)
			}
		}
	}
	if err := r.CaptureRarity.validate(); err != nil {
		add("capture_rarity: %w", err)
	}
	for _, rolls := range [][]RarityRoll{r.PurchaseRarity, r.OffspringRarity} {
		for _, roll := range rolls {
			if !roll.Tier.Valid() || roll.Chance < 0 || roll.Chance > 1 {
				add("bad rarity roll %+v", roll)
			}
		}
	}
	if len(r.Categories) == 0 {
		add("no event categories")
	}
	for cat, attrs := range r.Categories {
		if len(attrs) < 2 || len(attrs) > 3 {
			add("category %s: expected 2-3 attributes, got %d", cat, len(attrs))
		}
		for _, a := range attrs {
			if !seen[a] {
				add("category %s: unknown stat %q", cat, a)
			}
		}
		if _, ok := r.Disciplines[TrainingKey(cat)]; !ok {
			add("category %s: no discipline %q", cat, TrainingKey(cat))
		}
	}
	for disc, attrs := range r.Disciplines {
		if len(attrs) == 0 {
			add("discipline %s: no stats", disc)
		}
		for _, a := range attrs {
			if !seen[a] {
				add("discipline %s: unknown stat %q", disc, a)
			}
		}
	}
	table, err := genetics.Table(sp)
	if err != nil {
		add("%w", err)
		return errs
	}
	for _, gb := range r.GeneticBonuses {
		l, err := table.Locus(gb.Locus)
		if err != nil {
			add("genetic bonus: %w", err)
			continue
		}
		if !l.Valid(gb.Pair.A) || !l.Valid(gb.Pair.B) {
			add("genetic bonus: %w: %s", genetics.ErrUnknownAllele, gb.Pair)
		}
		if !seen[gb.Attribute] {
			add("genetic bonus: unknown stat %q", gb.Attribute)
		}
	}
	return errs
}

func validateOverrides(sp genetics.Species, overrides []genetics.Override) error {
	table, err := genetics.Table(sp)
	if err != nil {
		return err
	}
	for _, o := range overrides {
		l, err := table.Locus(o.Locus)
		if err != nil {
			return err
		}
		if !l.Valid(o.Pair.A) || !l.Valid(o.Pair.B) {
			return fmt.Errorf("%w: override %s=%s", genetics.ErrUnknownAllele, o.Locus, o.Pair)
		}
		if o.Probability < 0 || o.Probability > 1 {
			return fmt.Errorf("override %s: probability %v outside [0, 1]", o.Locus, o.Probability)
		}
	}
	return nil
}
