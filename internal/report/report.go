// Package report runs repeated matings of one pair and summarizes what the
// litter looks like: allele frequencies, hereditary condition incidence,
// coat colours and stat distributions. Reports export to CSV.
package report

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"gonum.org/v1/gonum/stat"

	"menagerie/internal/game"
	"menagerie/internal/genetics"
)

// AlleleFrequency is the share of all offspring allele copies at a locus.
type AlleleFrequency struct {
	Locus     string
	Allele    genetics.Allele
	Frequency float64
}

// Condition counts affected and carrier offspring for one defect.
type Condition struct {
	Name        string
	Affected    int
	Carriers    int
	Incidence   float64
	CarrierRate float64
}

// StatSummary describes one attribute across all offspring.
type StatSummary struct {
	Attribute game.Attribute
	Mean      float64
	StdDev    float64
	Min       float64
	Max       float64
	P10       float64
	P90       float64
}

// ColorShare counts offspring by base colour and pattern.
type ColorShare struct {
	Color string
	Count int
	Share float64
}

// Report is the outcome of Simulate.
type Report struct {
	Species genetics.Species
	Breed   string
	Sire    string
	Dam     string
	Trials  int
	Alleles []AlleleFrequency
	Defects []Condition
	Stats   []StatSummary
	Colors  []ColorShare
}

// Simulate breeds sire and dam trials times. Only genetic compatibility is
// checked; age, pregnancy and cooldown do not apply to simulated matings.
func Simulate(src genetics.Source, rules *game.SpeciesRules, sire, dam *game.Animal, trials int) (*Report, error) {
	if trials <= 0 {
		return nil, errors.New("trials must be positive")
	}
	table, err := genetics.Table(sire.Species)
	if err != nil {
		return nil, err
	}

	alleleCounts := map[string]map[genetics.Allele]int{}
	affected := map[string]int{}
	carriers := map[string]int{}
	colors := map[string]int{}
	stats := make(map[game.Attribute][]float64, len(rules.Attributes))

	for i := 0; i < trials; i++ {
		off, err := game.BreedPair(src, rules, sire, dam)
		if err != nil {
			return nil, err
		}
		for name, p := range off.Genome {
			m := alleleCounts[name]
			if m == nil {
				m = map[genetics.Allele]int{}
				alleleCounts[name] = m
			}
			m[p.A]++
			m[p.B]++
		}
		d, err := genetics.CheckDefects(sire.Species, off.Genome)
		if err != nil {
			return nil, fmt.Errorf("trial %d: %w", i, err)
		}
		for _, c := range d {
			affected[c]++
		}
		cs, err := genetics.Carriers(sire.Species, off.Genome)
		if err != nil {
			return nil, fmt.Errorf("trial %d: %w", i, err)
		}
		for _, c := range cs {
			carriers[c]++
		}
		col := genetics.ResolveColor(off.Genome)
		colors[col.Base+" "+col.Pattern]++
		for _, attr := range rules.Attributes {
			stats[attr] = append(stats[attr], float64(off.Stats[attr]))
		}
	}

	r := &Report{
		Species: sire.Species,
		Breed:   sire.Breed,
		Sire:    sire.Name,
		Dam:     dam.Name,
		Trials:  trials,
	}
	copies := float64(2 * trials)
	for _, l := range table.Loci() {
		for _, a := range l.Alleles {
			if n := alleleCounts[l.Name][a]; n > 0 {
				r.Alleles = append(r.Alleles, AlleleFrequency{Locus: l.Name, Allele: a, Frequency: float64(n) / copies})
			}
		}
	}
	for _, l := range table.DefectLoci() {
		name := l.Defect.Condition
		r.Defects = append(r.Defects, Condition{
			Name:        name,
			Affected:    affected[name],
			Carriers:    carriers[name],
			Incidence:   float64(affected[name]) / float64(trials),
			CarrierRate: float64(carriers[name]) / float64(trials),
		})
	}
	for _, attr := range rules.Attributes {
		r.Stats = append(r.Stats, summarize(attr, stats[attr]))
	}
	for c, n := range colors {
		r.Colors = append(r.Colors, ColorShare{Color: c, Count: n, Share: float64(n) / float64(trials)})
	}
	sort.Slice(r.Colors, func(i, j int) bool {
		if r.Colors[i].Count != r.Colors[j].Count {
			return r.Colors[i].Count > r.Colors[j].Count
		}
		return r.Colors[i].Color < r.Colors[j].Color
	})
	return r, nil
}

func summarize(attr game.Attribute, xs []float64) StatSummary {
	mean, sd := stat.MeanStdDev(xs, nil)
	sorted := slices.Clone(xs)
	slices.Sort(sorted)
	return StatSummary{
		Attribute: attr,
		Mean:      mean,
		StdDev:    sd,
		Min:       sorted[0],
		Max:       sorted[len(sorted)-1],
		P10:       stat.Quantile(0.1, stat.Empirical, sorted, nil),
		P90:       stat.Quantile(0.9, stat.Empirical, sorted, nil),
	}
}

// Affected returns the incidence of a condition, or 0 if it is unknown.
func (r *Report) Affected(condition string) float64 {
	for _, c := range r.Defects {
		if c.Name == condition {
			return c.Incidence
		}
	}
	return 0
}

// Frequency returns the frequency of allele at locus.
func (r *Report) Frequency(locus string, allele genetics.Allele) float64 {
	for _, a := range r.Alleles {
		if a.Locus == locus && a.Allele == allele {
			return a.Frequency
		}
	}
	return 0
}
