package genetics

import (
	"fmt"
	"sort"
)

// Genome maps every locus of a species to the pair carried there. A genome is
// built once and never edited; breeding produces a new one.
type Genome map[string]Pair

// Override forces a locus to Pair with the given probability.
type Override struct {
	Locus       string  `yaml:"locus"`
	Pair        Pair    `yaml:"pair"`
	Probability float64 `yaml:"probability"`
}

// Modifiers bias genome generation for a capture location. All rules are
// probabilistic: even a clean-health location leaves residual defects.
type Modifiers struct {
	// Overrides are applied in order after the default draw.
	Overrides []Override `yaml:"overrides"`
	// CarrierRate is the per-defect-locus chance of becoming a carrier.
	CarrierRate float64 `yaml:"carrier_rate"`
	// AffectedChance is the chance that one random defect locus is forced
	// homozygous affected.
	AffectedChance float64 `yaml:"affected_chance"`
	// CleanHealth is the chance that every defect locus is reset to
	// homozygous normal. It is rolled once, last.
	CleanHealth float64 `yaml:"clean_health"`
}

// Generate produces a complete genome for species. The breed argument is
// reserved for breed-specific weighting; the current tables are species-wide.
func Generate(src Source, species Species, _ string, mods *Modifiers) (Genome, error) {
	table, err := Table(species)
	if err != nil {
		return nil, err
	}
	g := make(Genome, table.Len())
	for _, l := range table.Loci() {
		g[l.Name] = SampleLocus(src, l)
	}
	if mods == nil {
		return g, nil
	}
	if err := mods.apply(src, table, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (m *Modifiers) apply(src Source, table *LocusTable, g Genome) error {
	defects := table.DefectLoci()
	if m.CarrierRate > 0 {
		for _, l := range defects {
			if Chance(src, m.CarrierRate) {
				g[l.Name] = Pair{A: l.Defect.Normal, B: l.Defect.Affected}
			}
		}
	}
	if m.AffectedChance > 0 && len(defects) > 0 && Chance(src, m.AffectedChance) {
		l := defects[src.IntN(len(defects))]
		g[l.Name] = Pair{A: l.Defect.Affected, B: l.Defect.Affected}
	}
	for _, o := range m.Overrides {
		l, err := table.Locus(o.Locus)
		if err != nil {
			return err
		}
		if !l.Valid(o.Pair.A) || !l.Valid(o.Pair.B) {
			return fmt.Errorf("%w: override %s=%s", ErrUnknownAllele, o.Locus, o.Pair)
		}
		if Chance(src, o.Probability) {
			g[o.Locus] = o.Pair
		}
	}
	if m.CleanHealth > 0 && Chance(src, m.CleanHealth) {
		for _, l := range defects {
			g[l.Name] = Pair{A: l.Defect.Normal, B: l.Defect.Normal}
		}
	}
	return nil
}

// Validate checks that g covers exactly the species' locus set and that
// every allele belongs to its locus.
func (g Genome) Validate(species Species) error {
	table, err := Table(species)
	if err != nil {
		return err
	}
	if len(g) != table.Len() {
		for name := range g {
			if _, err := table.Locus(name); err != nil {
				return err
			}
		}
	}
	for _, l := range table.Loci() {
		p, ok := g[l.Name]
		if !ok {
			return fmt.Errorf("%w: genome missing %q", ErrUnknownLocus, l.Name)
		}
		if !l.Valid(p.A) || !l.Valid(p.B) {
			return fmt.Errorf("%w: %s=%s", ErrUnknownAllele, l.Name, p)
		}
	}
	return nil
}

// Names returns the locus names in sorted order.
func (g Genome) Names() []string {
	out := make([]string, 0, len(g))
	for name := range g {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Encode returns the string form used at storage and API boundaries.
func (g Genome) Encode() map[string]string {
	out := make(map[string]string, len(g))
	for name, p := range g {
		out[name] = p.String()
	}
	return out
}

// Decode parses and validates a stored genome.
func Decode(species Species, raw map[string]string) (Genome, error) {
	g := make(Genome, len(raw))
	for name, s := range raw {
		p, err := ParsePair(s)
		if err != nil {
			return nil, fmt.Errorf("locus %s: %w", name, err)
		}
		g[name] = p
	}
	if err := g.Validate(species); err != nil {
		return nil, err
	}
	return g, nil
}
