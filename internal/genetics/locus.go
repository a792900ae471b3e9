// Package genetics implements the genome model shared by every animal:
// weighted allele sampling, genome generation, Mendelian inheritance,
// coat phenotype resolution and hereditary defect detection.
//
// Everything here is pure computation over immutable locus tables. Callers
// supply the random Source, which keeps tests deterministic.
package genetics

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrUnknownSpecies indicates there is no locus table for a species.
	ErrUnknownSpecies = errors.New("unknown species")
	// ErrUnknownLocus indicates a locus name missing from the species table.
	ErrUnknownLocus = errors.New("unknown locus")
	// ErrUnknownAllele indicates an allele outside the locus's allele set.
	ErrUnknownAllele = errors.New("unknown allele")
	// ErrLocusMismatch indicates two genomes that do not share a locus set.
	ErrLocusMismatch = errors.New("genome locus sets differ")
)

// Species selects a locus vocabulary.
type Species string

const (
	Horse Species = "horse"
	Dog   Species = "dog"
)

// DefectRule marks a locus as a hereditary condition: an animal is affected
// only when homozygous for Affected.
type DefectRule struct {
	Condition string
	Normal    Allele
	Affected  Allele
}

// Locus is a named genetic position with its allele set and default
// sampling weights (nil means uniform).
type Locus struct {
	Name    string
	Alleles []Allele
	Weights []float64
	Defect  *DefectRule
}

// Valid reports whether a belongs to the locus's allele set.
func (l Locus) Valid(a Allele) bool {
	for _, x := range l.Alleles {
		if x == a {
			return true
		}
	}
	return false
}

// LocusTable is the immutable, ordered locus set of one species.
type LocusTable struct {
	species Species
	loci    []Locus
	index   map[string]int
}

func newLocusTable(species Species, loci []Locus) *LocusTable {
	t := &LocusTable{species: species, loci: loci, index: make(map[string]int, len(loci))}
	for i, l := range loci {
		if err := validateLocus(l); err != nil {
			panic(fmt.Sprintf("genetics: %s locus table: %v", species, err))
		}
		if _, dup := t.index[l.Name]; dup {
			panic(fmt.Sprintf("genetics: %s locus table: duplicate locus %q", species, l.Name))
		}
		t.index[l.Name] = i
	}
	return t
}

func validateLocus(l Locus) error {
	if l.Name == "" || len(l.Alleles) == 0 {
		return fmt.Errorf("locus %q has no alleles", l.Name)
	}
	if l.Weights != nil {
		if len(l.Weights) != len(l.Alleles) {
			return fmt.Errorf("locus %q: %d weights for %d alleles", l.Name, len(l.Weights), len(l.Alleles))
		}
		sum := 0.0
		for _, w := range l.Weights {
			sum += w
		}
		if math.Abs(sum-1) > 1e-9 {
			return fmt.Errorf("locus %q: weights sum to %v", l.Name, sum)
		}
	}
	if d := l.Defect; d != nil {
		if !l.Valid(d.Normal) || !l.Valid(d.Affected) {
			return fmt.Errorf("locus %q: defect alleles outside allele set", l.Name)
		}
	}
	return nil
}

// Species returns the species the table describes.
func (t *LocusTable) Species() Species { return t.species }

// Loci returns the loci in table order. The slice must not be modified.
func (t *LocusTable) Loci() []Locus { return t.loci }

// Len returns the number of loci.
func (t *LocusTable) Len() int { return len(t.loci) }

// Locus looks up a locus by name.
func (t *LocusTable) Locus(name string) (Locus, error) {
	i, ok := t.index[name]
	if !ok {
		return Locus{}, fmt.Errorf("%w: %s has no locus %q", ErrUnknownLocus, t.species, name)
	}
	return t.loci[i], nil
}

// DefectLoci returns the loci carrying a defect rule, in table order.
func (t *LocusTable) DefectLoci() []Locus {
	var out []Locus
	for _, l := range t.loci {
		if l.Defect != nil {
			out = append(out, l)
		}
	}
	return out
}

// Table returns the locus table for a species.
func Table(species Species) (*LocusTable, error) {
	switch species {
	case Horse:
		return horseLoci, nil
	case Dog:
		return dogLoci, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSpecies, species)
	}
}

func alleles(s ...string) []Allele {
	out := make([]Allele, len(s))
	for i, a := range s {
		out[i] = Allele(a)
	}
	return out
}

func defect(condition, affected string) *DefectRule {
	return &DefectRule{Condition: condition, Normal: "N", Affected: Allele(affected)}
}

var horseLoci = newLocusTable(Horse, []Locus{
	{Name: "agouti", Alleles: alleles("Ay", "at", "a")},
	{Name: "extension", Alleles: alleles("E", "e")},
	{Name: "cream", Alleles: alleles("C", "Ccr", "Cprl")},
	{Name: "dun", Alleles: alleles("D", "d")},
	{Name: "gray", Alleles: alleles("G", "g")},
	{Name: "silver", Alleles: alleles("Z", "z")},
	{Name: "champagne", Alleles: alleles("Ch", "ch")},
	{Name: "tobiano", Alleles: alleles("TO", "to")},
	{Name: "sabino", Alleles: alleles("SB1", "sb1")},
	{Name: "splashed_white", Alleles: alleles("SW", "sw")},
	{Name: "overo", Alleles: alleles("O", "o"), Weights: []float64{0.05, 0.95}},
	{Name: "pearl", Alleles: alleles("prl", "+"), Weights: []float64{0.05, 0.95}},
	{Name: "brindle", Alleles: alleles("Br", "br"), Weights: []float64{0.02, 0.98}},
	{Name: "chimera", Alleles: alleles("Chi", "chi"), Weights: []float64{0.01, 0.99}},
	{Name: "hyperkalemic_paralysis", Alleles: alleles("N", "H"), Weights: []float64{0.95, 0.05},
		Defect: defect("Hyperkalemic Paralysis", "H")},
	{Name: "malignant_hyperthermia", Alleles: alleles("N", "M"), Weights: []float64{0.98, 0.02},
		Defect: defect("Malignant Hyperthermia", "M")},
	{Name: "polysaccharide_storage", Alleles: alleles("N", "P"), Weights: []float64{0.92, 0.08},
		Defect: defect("Polysaccharide Storage Myopathy", "P")},
})

var dogLoci = newLocusTable(Dog, []Locus{
	{Name: "agouti", Alleles: alleles("Ay", "at", "a")},
	{Name: "k_locus", Alleles: alleles("KB", "ky")},
	{Name: "extension", Alleles: alleles("E", "e")},
	{Name: "brown", Alleles: alleles("B", "b")},
	{Name: "dilution", Alleles: alleles("D", "d")},
	{Name: "merle", Alleles: alleles("M", "m"), Weights: []float64{0.1, 0.9}},
	{Name: "spotting", Alleles: alleles("S", "si", "sp", "sw")},
	{Name: "graying", Alleles: alleles("G", "g")},
	{Name: "brindle", Alleles: alleles("Br", "br")},
	{Name: "ticking", Alleles: alleles("T", "t")},
	{Name: "pra", Alleles: alleles("N", "pra"), Weights: []float64{0.9, 0.1},
		Defect: defect("Progressive Retinal Atrophy", "pra")},
	{Name: "dm", Alleles: alleles("N", "dm"), Weights: []float64{0.85, 0.15},
		Defect: defect("Degenerative Myelopathy", "dm")},
	{Name: "mdr1", Alleles: alleles("N", "mdr1"), Weights: []float64{0.8, 0.2},
		Defect: defect("Multi-Drug Resistance", "mdr1")},
	{Name: "cea", Alleles: alleles("N", "cea"), Weights: []float64{0.9, 0.1},
		Defect: defect("Collie Eye Anomaly", "cea")},
	{Name: "huu", Alleles: alleles("N", "huu"), Weights: []float64{0.95, 0.05},
		Defect: defect("Hyperuricosuria", "huu")},
	{Name: "hip_dysplasia", Alleles: alleles("N", "hip"), Weights: []float64{0.9, 0.1},
		Defect: defect("Hip Dysplasia", "hip")},
	{Name: "elbow_dysplasia", Alleles: alleles("N", "elbow"), Weights: []float64{0.93, 0.07},
		Defect: defect("Elbow Dysplasia", "elbow")},
	{Name: "heart_condition", Alleles: alleles("N", "heart"), Weights: []float64{0.95, 0.05},
		Defect: defect("Heart Condition", "heart")},
	{Name: "epilepsy", Alleles: alleles("N", "epilepsy"), Weights: []float64{0.96, 0.04},
		Defect: defect("Epilepsy", "epilepsy")},
})
