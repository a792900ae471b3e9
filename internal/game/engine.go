package game

import (
	"log/slog"
	"math"
	"time"

	"menagerie/internal/genetics"
)

// Engine ties the reference tables to a random source. Every generation,
// breeding and scoring call draws from Source, so a seeded source makes the
// engine fully deterministic.
type Engine struct {
	Tables *Tables
	Source genetics.Source
	Log    *slog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
	// EventActive gates event-only biomes; nil means always active.
	EventActive func(biome string) bool
}

// NewEngine returns an engine with the default clock.
func NewEngine(tables *Tables, src genetics.Source, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{Tables: tables, Source: src, Log: log, Now: time.Now}
}

func (e *Engine) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func (e *Engine) logger() *slog.Logger {
	if e.Log == nil {
		return slog.Default()
	}
	return e.Log
}

// baseline looks up breed stats, warning when the generic fallback is used.
func (e *Engine) baseline(species genetics.Species, breed string) (Stats, error) {
	stats, known, err := e.Tables.Baseline(species, breed)
	if err != nil {
		return nil, err
	}
	if !known {
		e.logger().Warn("unknown breed, using generic baseline", "species", species, "breed", breed)
	}
	return stats, nil
}

func (e *Engine) randomGender(r *SpeciesRules) Gender {
	if genetics.Chance(e.Source, 0.5) {
		return r.Dam
	}
	return r.Sire
}

// uniform returns a value in [lo, hi) rounded to one decimal.
func (e *Engine) uniform(r Range) float64 {
	v := r.Min + e.Source.Float64()*(r.Max-r.Min)
	return math.Round(v*10) / 10
}
