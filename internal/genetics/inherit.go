package genetics

import "fmt"

// Inherit builds an offspring genome by independent per-locus sampling: one
// allele drawn from each parent's pair at the same locus. There is no linkage
// between loci. Parents must share a locus set.
func Inherit(src Source, a, b Genome) (Genome, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: %d vs %d loci", ErrLocusMismatch, len(a), len(b))
	}
	child := make(Genome, len(a))
	for _, name := range a.Names() {
		pb, ok := b[name]
		if !ok {
			return nil, fmt.Errorf("%w: second parent lacks %q", ErrLocusMismatch, name)
		}
		child[name] = Pair{A: pick(src, a[name]), B: pick(src, pb)}
	}
	return child, nil
}

func pick(src Source, p Pair) Allele {
	if src.IntN(2) == 0 {
		return p.A
	}
	return p.B
}
