package genetics

import (
	"math"
	"testing"
)

// scriptedSource replays fixed values; it cycles when exhausted.
type scriptedSource struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[s.fi%len(s.floats)]
	s.fi++
	return v
}

func (s *scriptedSource) IntN(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[s.ii%len(s.ints)]
	s.ii++
	return v % n
}

func TestSampleAllele_Weighted(t *testing.T) {
	src := NewSource(1)
	candidates := alleles("N", "pra")
	weights := []float64{0.9, 0.1}

	counts := map[Allele]int{}
	const trials = 20000
	for i := 0; i < trials; i++ {
		counts[SampleAllele(src, candidates, weights)]++
	}
	frac := float64(counts["pra"]) / trials
	if math.Abs(frac-0.1) > 0.015 {
		t.Errorf("Expected pra frequency near 0.1, got %.4f", frac)
	}
	if counts["N"]+counts["pra"] != trials {
		t.Errorf("Expected only candidate alleles, got %v", counts)
	}
}

func TestSampleAllele_UniformWithoutWeights(t *testing.T) {
	src := NewSource(2)
	candidates := alleles("S", "si", "sp", "sw")
	counts := map[Allele]int{}
	for i := 0; i < 8000; i++ {
		counts[SampleAllele(src, candidates, nil)]++
	}
	for _, a := range candidates {
		if counts[a] < 1700 || counts[a] > 2300 {
			t.Errorf("Expected about 2000 draws of %s, got %d", a, counts[a])
		}
	}
}

func TestSampleAllele_CumulativeBoundary(t *testing.T) {
	candidates := alleles("M", "m")
	weights := []float64{0.1, 0.9}

	got := SampleAllele(&scriptedSource{floats: []float64{0.1}}, candidates, weights)
	if got != "M" {
		t.Errorf("Expected roll equal to first cumulative weight to pick M, got %s", got)
	}
	got = SampleAllele(&scriptedSource{floats: []float64{0.10001}}, candidates, weights)
	if got != "m" {
		t.Errorf("Expected roll past first weight to pick m, got %s", got)
	}
}

func TestSamplePair_AllowsHomozygous(t *testing.T) {
	src := NewSource(3)
	candidates := alleles("E", "e")
	homozygous := 0
	for i := 0; i < 1000; i++ {
		p := SamplePair(src, candidates, nil)
		if p.A == p.B {
			homozygous++
		}
	}
	if homozygous < 400 || homozygous > 600 {
		t.Errorf("Expected roughly half homozygous pairs, got %d/1000", homozygous)
	}
}

func TestSampleAllele_PanicsOnMismatchedWeights(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for mismatched weights")
		}
	}()
	SampleAllele(NewSource(1), alleles("A", "B"), []float64{1})
}

func TestSampleAllele_PanicsOnEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for empty candidate list")
		}
	}()
	SampleAllele(NewSource(1), nil, nil)
}

func TestLockedSource_Concurrent(t *testing.T) {
	src := NewLockedSource(NewSource(9))
	done := make(chan bool, 8)
	for i := 0; i < 8; i++ {
		go func() {
			for j := 0; j < 500; j++ {
				if v := src.Float64(); v < 0 || v >= 1 {
					t.Errorf("Float64 out of range: %v", v)
				}
				if v := src.IntN(6); v < 0 || v > 5 {
					t.Errorf("IntN out of range: %d", v)
				}
			}
			done <- true
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}

func TestIntBetween(t *testing.T) {
	src := NewSource(4)
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		v := IntBetween(src, 4, 12)
		if v < 4 || v > 12 {
			t.Fatalf("IntBetween out of range: %d", v)
		}
		seen[v] = true
	}
	if len(seen) != 9 {
		t.Errorf("Expected all 9 values between 4 and 12, got %d", len(seen))
	}
	if IntBetween(src, 5, 5) != 5 {
		t.Error("Expected degenerate range to return its bound")
	}
}
