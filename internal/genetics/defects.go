package genetics

import "fmt"

// CheckDefects lists the hereditary conditions g expresses: a condition is
// reported only when its locus is homozygous for the affected allele.
// Carriers are never reported. Results follow locus-table order and are
// always recomputed from the genome.
func CheckDefects(species Species, g Genome) ([]string, error) {
	return scanDefects(species, g, func(p Pair, d *DefectRule) bool {
		return p.HomozygousFor(d.Affected)
	})
}

// Carriers lists the conditions g carries a single affected copy of.
func Carriers(species Species, g Genome) ([]string, error) {
	return scanDefects(species, g, func(p Pair, d *DefectRule) bool {
		return p.Count(d.Affected) == 1
	})
}

func scanDefects(species Species, g Genome, match func(Pair, *DefectRule) bool) ([]string, error) {
	table, err := Table(species)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, l := range table.DefectLoci() {
		p, ok := g[l.Name]
		if !ok {
			return nil, fmt.Errorf("%w: genome missing %q", ErrUnknownLocus, l.Name)
		}
		if match(p, l.Defect) {
			out = append(out, l.Defect.Condition)
		}
	}
	return out, nil
}
