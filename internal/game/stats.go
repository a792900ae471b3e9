package game

import (
	"math"

	"menagerie/internal/genetics"
)

// TemperamentBias names a dog location's temperament leaning.
type TemperamentBias string

const (
	Friendly TemperamentBias = "friendly"
	Wary     TemperamentBias = "wary"
	Obedient TemperamentBias = "obedient"
)

// StatContext carries the creation-time modifiers for DeriveStats. The zero
// value derives plain baseline plus variation.
type StatContext struct {
	// Genome enables genetic bonuses.
	Genome  genetics.Genome
	Bonuses []GeneticBonus
	// Additive modifiers, e.g. biome stat bonuses.
	Additive Stats
	// Multiplier scales every attribute (dog location stats modifier);
	// zero means 1.
	Multiplier float64
	Bias       TemperamentBias
	// ExtremeChance is the per-attribute chance of an extreme redraw.
	ExtremeChance float64
	// Scale is the maturity stage factor applied last; zero means 1.
	Scale float64
}

// DeriveStats computes creation-time stats over attrs. Passes run in order,
// each clamped to 0-100:
//
//  1. baseline ±10, or an extreme redraw (0-19 or 80-99)
//  2. genetic bonuses
//  3. additive modifiers
//  4. multiplier, floored
//  5. temperament bias
//  6. stage scale, floored
func DeriveStats(src genetics.Source, attrs []Attribute, baseline Stats, ctx StatContext) Stats {
	out := make(Stats, len(attrs))
	for _, a := range attrs {
		if ctx.ExtremeChance > 0 && genetics.Chance(src, ctx.ExtremeChance) {
			out[a] = extreme(src)
			continue
		}
		out[a] = clamp(baseline[a] + variation(src))
	}

	for _, gb := range ctx.Bonuses {
		if p, ok := ctx.Genome[gb.Locus]; ok && p.Equal(gb.Pair) {
			if _, ok := out[gb.Attribute]; ok {
				out[gb.Attribute] = clamp(out[gb.Attribute] + gb.Bonus)
			}
		}
	}

	for a, mod := range ctx.Additive {
		if _, ok := out[a]; ok {
			out[a] = clamp(out[a] + mod)
		}
	}

	if ctx.Multiplier > 0 && ctx.Multiplier != 1 {
		for a, v := range out {
			out[a] = clamp(int(math.Floor(float64(v) * ctx.Multiplier)))
		}
	}

	applyBias(out, ctx.Bias)

	if ctx.Scale > 0 && ctx.Scale != 1 {
		for a, v := range out {
			out[a] = int(math.Floor(float64(v) * ctx.Scale))
		}
	}
	return out
}

// InheritStats averages the parents per attribute, adds ±10 and floors.
// The breed table is never consulted.
func InheritStats(src genetics.Source, attrs []Attribute, a, b Stats) Stats {
	out := make(Stats, len(attrs))
	for _, attr := range attrs {
		avg := float64(a[attr]+b[attr]) / 2
		out[attr] = clamp(int(math.Floor(avg + float64(variation(src)))))
	}
	return out
}

func applyBias(s Stats, bias TemperamentBias) {
	bump := func(a Attribute, d int) {
		if _, ok := s[a]; ok {
			s[a] = clamp(s[a] + d)
		}
	}
	switch bias {
	case Friendly:
		bump(Temperament, 15)
		bump(Obedience, 10)
	case Wary:
		bump(Temperament, -10)
		bump(Intelligence, 10)
	case Obedient:
		bump(Obedience, 20)
		bump(Focus, 15)
	}
}

func variation(src genetics.Source) int {
	return genetics.IntBetween(src, -10, 10)
}

func extreme(src genetics.Source) int {
	if genetics.Chance(src, 0.5) {
		return src.IntN(20)
	}
	return 80 + src.IntN(20)
}

func clamp(v int) int {
	return max(0, min(100, v))
}
