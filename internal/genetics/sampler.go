package genetics

// SampleAllele draws one allele. With weights, the draw walks the cumulative
// distribution; a roll left over by rounding falls back to a uniform pick.
// An empty candidate list or a weight slice of the wrong length is a
// programming error and panics.
func SampleAllele(src Source, candidates []Allele, weights []float64) Allele {
	if len(candidates) == 0 {
		panic("genetics: SampleAllele with no candidates")
	}
	if weights != nil {
		if len(weights) != len(candidates) {
			panic("genetics: SampleAllele weight count does not match candidates")
		}
		roll := src.Float64()
		cumulative := 0.0
		for i, w := range weights {
			cumulative += w
			if roll <= cumulative {
				return candidates[i]
			}
		}
	}
	return candidates[src.IntN(len(candidates))]
}

// SamplePair draws two independent alleles. Homozygous results are expected.
func SamplePair(src Source, candidates []Allele, weights []float64) Pair {
	return Pair{
		A: SampleAllele(src, candidates, weights),
		B: SampleAllele(src, candidates, weights),
	}
}

// SampleLocus draws a pair with the locus's default weights.
func SampleLocus(src Source, l Locus) Pair {
	return SamplePair(src, l.Alleles, l.Weights)
}
