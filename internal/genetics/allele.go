package genetics

import (
	"fmt"
	"strings"
)

// Allele is one heritable variant symbol at a locus, e.g. "Ay" or "pra".
type Allele string

// Pair is the genotype an individual carries at one locus. Order carries no
// meaning; generation code emits alleles in draw order.
type Pair struct {
	A Allele
	B Allele
}

// P builds a pair from two allele symbols.
func P(a, b Allele) Pair {
	return Pair{A: a, B: b}
}

// String encodes the pair as "A/B".
func (p Pair) String() string {
	return string(p.A) + "/" + string(p.B)
}

// Has reports whether either allele equals a.
func (p Pair) Has(a Allele) bool {
	return p.A == a || p.B == a
}

// Count returns how many copies of a the pair carries (0, 1 or 2).
func (p Pair) Count(a Allele) int {
	n := 0
	if p.A == a {
		n++
	}
	if p.B == a {
		n++
	}
	return n
}

// HomozygousFor reports whether both alleles equal a.
func (p Pair) HomozygousFor(a Allele) bool {
	return p.A == a && p.B == a
}

// Equal compares genotypes ignoring allele order.
func (p Pair) Equal(o Pair) bool {
	return (p.A == o.A && p.B == o.B) || (p.A == o.B && p.B == o.A)
}

// ParsePair decodes an "A/B" genotype string.
func ParsePair(s string) (Pair, error) {
	a, b, ok := strings.Cut(s, "/")
	if !ok || a == "" || b == "" || strings.Contains(b, "/") {
		return Pair{}, fmt.Errorf("%w: malformed genotype %q", ErrUnknownAllele, s)
	}
	return Pair{A: Allele(a), B: Allele(b)}, nil
}

// MarshalText implements encoding.TextMarshaler so genomes serialize as
// {"agouti": "Ay/at"} in JSON and YAML.
func (p Pair) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Pair) UnmarshalText(b []byte) error {
	v, err := ParsePair(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
