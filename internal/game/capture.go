package game

import (
	"fmt"
	"math"
	"slices"

	"menagerie/internal/genetics"
)

// CaptureResult is a freshly captured animal plus the progress it earns.
type CaptureResult struct {
	Animal        *Animal `json:"animal"`
	Experience    int     `json:"experienceGained"`
	BreederPoints int     `json:"breederPoints,omitempty"`
}

// BiomeActive reports whether an event-only biome can be visited.
func (e *Engine) BiomeActive(id string) bool {
	b, ok := e.Tables.Biomes[id]
	if !ok {
		return false
	}
	if !b.EventOnly || e.EventActive == nil {
		return true
	}
	return e.EventActive(id)
}

// CaptureHorse generates a wild horse for a biome and maturity stage.
// Payment is the caller's concern and must already be settled.
func (e *Engine) CaptureHorse(owner, biomeID, stageID string) (*CaptureResult, error) {
	biome, err := e.Tables.Biome(biomeID)
	if err != nil {
		return nil, err
	}
	stage, err := e.Tables.Stage(stageID)
	if err != nil {
		return nil, err
	}
	if !e.BiomeActive(biomeID) {
		return nil, fmt.Errorf("%w: %s", ErrBiomeInactive, biome.Name)
	}
	rules, err := e.Tables.Rules(genetics.Horse)
	if err != nil {
		return nil, err
	}
	tune := e.Tables.Capture

	breed := e.captureBreed(rules, biome.BreedPreferences, tune.HorsePreferredChance)
	gender := e.randomGender(rules)
	age := genetics.IntBetween(e.Source, stage.MinAgeMonths, stage.MaxAgeMonths)

	mods := &genetics.Modifiers{Overrides: biome.Overrides}
	if biome.Effects.Has(CleanHealth) {
		mods.CleanHealth = biome.CleanHealthChance
	}
	genome, err := genetics.Generate(e.Source, genetics.Horse, breed, mods)
	if err != nil {
		return nil, err
	}
	base, err := e.baseline(genetics.Horse, breed)
	if err != nil {
		return nil, err
	}
	ctx := StatContext{
		Genome:   genome,
		Bonuses:  rules.GeneticBonuses,
		Additive: biome.StatModifiers,
		Scale:    stage.StatScale,
	}
	if biome.Effects.Has(StatExtremes) {
		ctx.ExtremeChance = tune.ExtremeChance
	}
	stats := DeriveStats(e.Source, rules.Attributes, base, ctx)

	color := genetics.ResolveColor(genome)
	color.Markings = e.markings(biome.Effects, tune)
	color.Overlays = e.overlays(biome, tune)

	wild := &WildTraits{
		Origin:             biomeID,
		CapturedAt:         e.now(),
		MaturityStage:      stageID,
		TemperamentQuality: horseTemperament(e.Source, tune.HorseTemperaments, biome.Effects, stage),
		BondingPotential:   int(math.Floor(50 + e.Source.Float64()*50*stage.BondingModifier)),
		TrainingPotential:  stage.TrainingPotential,
	}
	rarity := RollRarity(e.Source, rules.CaptureRarity, biome.RarityModifier, false)

	a := &Animal{
		Owner:     owner,
		Name:      fmt.Sprintf("Wild %s Horse", biome.Name),
		Species:   genetics.Horse,
		Breed:     breed,
		Gender:    gender,
		AgeMonths: age,
		Height:    float64(14 + e.Source.IntN(4)),
		Genome:    genome,
		Stats:     stats,
		Training:  newTraining(rules),
		Color:     color,
		Rarity:    rarity,
		Health:    Health{Status: Healthy, Energy: 100, Happiness: 60 + e.Source.IntN(40)},
		Wild:      wild,
		Value:     e.captureValue(biome.Costs.Coins, rules.DefaultValue, 0.8, 0.4),
		CreatedAt: e.now(),
	}

	xp := tune.Experience
	if biome.EventOnly {
		xp += tune.EventExperienceBonus
	}
	e.logger().Info("horse captured", "biome", biomeID, "stage", stageID, "breed", breed, "rarity", rarity)
	return &CaptureResult{Animal: a, Experience: xp}, nil
}

// CaptureDog generates a wild dog for a capture location.
func (e *Engine) CaptureDog(owner, locationID string, premium bool) (*CaptureResult, error) {
	loc, err := e.Tables.Location(locationID)
	if err != nil {
		return nil, err
	}
	if loc.PremiumOnly && !premium {
		return nil, fmt.Errorf("%w: %s", ErrPremiumOnly, loc.Name)
	}
	rules, err := e.Tables.Rules(genetics.Dog)
	if err != nil {
		return nil, err
	}
	tune := e.Tables.Capture

	breed := e.captureBreed(rules, loc.BreedPreferences, tune.DogPreferredChance)
	title := specialTitle(e.Source, tune, loc.Effects)
	affinity := affinities(e.Source, loc.Affinity, breed)

	mods := &genetics.Modifiers{}
	if loc.Effects.Has(HiddenDisorders) {
		mods.CarrierRate = tune.CarrierRate
		mods.AffectedChance = tune.AffectedChance
	}
	if loc.Effects.Has(CleanHealth) {
		mods.CleanHealth = loc.CleanHealthChance
	}
	genome, err := genetics.Generate(e.Source, genetics.Dog, breed, mods)
	if err != nil {
		return nil, err
	}
	base, err := e.baseline(genetics.Dog, breed)
	if err != nil {
		return nil, err
	}
	stats := DeriveStats(e.Source, rules.Attributes, base, StatContext{
		Genome:     genome,
		Bonuses:    rules.GeneticBonuses,
		Multiplier: loc.StatsModifier,
		Bias:       TemperamentBias(loc.TemperamentBias),
	})

	color := genetics.ResolveColor(genome)
	if genetics.Chance(e.Source, tune.DogMarkings.Chance) {
		color.Markings = append([]string(nil), tune.DogMarkings.Pool...)
	}

	wild := &WildTraits{
		Origin:             locationID,
		CapturedAt:         e.now(),
		TemperamentQuality: dogTemperament(e.Source, tune.DogTemperaments, loc.TemperamentBias),
		COI:                genetics.IntBetween(e.Source, loc.COI.Min, loc.COI.Max),
		TamingDifficulty:   clamp(int(math.Floor(50 * loc.TamingDifficulty))),
		BondingSpeed:       min(100, 50+loc.BondingSpeedBonus),
		SpecialTitle:       title,
		Affinities:         affinity,
	}
	rarity := RollRarity(e.Source, rules.CaptureRarity, loc.RarityModifier, title != "")

	a := &Animal{
		Owner:     owner,
		Name:      fmt.Sprintf("Wild %s Dog", loc.Name),
		Species:   genetics.Dog,
		Breed:     breed,
		Gender:    e.randomGender(rules),
		AgeMonths: 12 * genetics.IntBetween(e.Source, 1, 8),
		Height:    float64(16 + e.Source.IntN(12)),
		Weight:    float64(25 + e.Source.IntN(75)),
		Genome:    genome,
		Stats:     stats,
		Training:  newTraining(rules),
		Color:     color,
		Rarity:    rarity,
		Health:    Health{Status: Healthy, Energy: 100, Happiness: 60 + e.Source.IntN(40)},
		Wild:      wild,
		Value:     e.captureValue(loc.Costs.Coins, rules.DefaultValue, 0.6, 0.8),
		CreatedAt: e.now(),
	}

	res := &CaptureResult{Animal: a, Experience: tune.Experience}
	if loc.Effects.Has(BreederPoints) {
		res.BreederPoints = tune.BreederPoints
	}
	e.logger().Info("dog captured", "location", locationID, "breed", breed, "rarity", rarity, "title", title)
	return res, nil
}

func (e *Engine) captureBreed(rules *SpeciesRules, preferred []string, chance float64) string {
	if len(preferred) > 0 && genetics.Chance(e.Source, chance) {
		return pick(e.Source, preferred)
	}
	return pick(e.Source, rules.BreedNames())
}

// markings draws a count from the rule and keeps the distinct picks.
func (e *Engine) markings(effects Effect, tune CaptureTuning) []string {
	rule := tune.Markings
	if effects.Has(HighMarkings) {
		rule = tune.HighMarkings
	}
	n := genetics.IntBetween(e.Source, rule.Min, rule.Max)
	var out []string
	for i := 0; i < n; i++ {
		m := pick(e.Source, rule.Pool)
		if !slices.Contains(out, m) {
			out = append(out, m)
		}
	}
	return out
}

func (e *Engine) overlays(b *Biome, tune CaptureTuning) []string {
	var chance float64
	switch {
	case b.Effects.Has(ExclusiveCoats):
		chance = tune.ExclusiveOverlayChance
	case b.Effects.Has(UniqueOverlays):
		chance = tune.UniqueOverlayChance
	default:
		return nil
	}
	if !genetics.Chance(e.Source, chance) {
		return nil
	}
	return []string{pick(e.Source, b.Overlays)}
}

// captureValue is floor(lo·price + r·spread·price). Locations priced only
// in gems or items use the species default value as the price.
func (e *Engine) captureValue(coins, fallback int, lo, spread float64) int {
	price := float64(coins)
	if coins <= 0 {
		price = float64(fallback)
	}
	return int(math.Floor(price*lo + e.Source.Float64()*price*spread))
}
