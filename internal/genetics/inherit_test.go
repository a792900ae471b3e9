package genetics

import (
	"errors"
	"testing"
)

func TestInherit_AllelesComeFromParents(t *testing.T) {
	src := NewSource(21)
	for _, species := range []Species{Horse, Dog} {
		sire, _ := Generate(src, species, "", nil)
		dam, _ := Generate(src, species, "", nil)
		for i := 0; i < 10000; i++ {
			foal, err := Inherit(src, sire, dam)
			if err != nil {
				t.Fatalf("Inherit: %v", err)
			}
			if len(foal) != len(sire) {
				t.Fatalf("Expected %d loci, got %d", len(sire), len(foal))
			}
			for name, p := range foal {
				if !sire[name].Has(p.A) {
					t.Fatalf("Locus %s: allele %s not in sire pair %s", name, p.A, sire[name])
				}
				if !dam[name].Has(p.B) {
					t.Fatalf("Locus %s: allele %s not in dam pair %s", name, p.B, dam[name])
				}
			}
		}
	}
}

func TestInherit_MendelianRatio(t *testing.T) {
	src := NewSource(22)
	carrier := Genome{"pra": P("N", "pra")}
	affected := 0
	const trials = 10000
	for i := 0; i < trials; i++ {
		pup, err := Inherit(src, carrier, carrier)
		if err != nil {
			t.Fatalf("Inherit: %v", err)
		}
		if pup["pra"].HomozygousFor("pra") {
			affected++
		}
	}
	// Two carriers produce affected offspring a quarter of the time.
	if affected < 2300 || affected > 2700 {
		t.Errorf("Expected about 2500 affected offspring, got %d", affected)
	}
}

func TestInherit_Deterministic(t *testing.T) {
	sire, _ := Generate(NewSource(1), Horse, "Arabian", nil)
	dam, _ := Generate(NewSource(2), Horse, "Arabian", nil)
	a, _ := Inherit(NewSource(99), sire, dam)
	b, _ := Inherit(NewSource(99), sire, dam)
	for name := range a {
		if a[name] != b[name] {
			t.Errorf("Expected identical offspring for identical seeds at %s: %s vs %s", name, a[name], b[name])
		}
	}
}

func TestInherit_LocusMismatch(t *testing.T) {
	horse, _ := Generate(NewSource(1), Horse, "Arabian", nil)
	dog, _ := Generate(NewSource(1), Dog, "Beagle", nil)
	if _, err := Inherit(NewSource(1), horse, dog); !errors.Is(err, ErrLocusMismatch) {
		t.Errorf("Expected ErrLocusMismatch, got %v", err)
	}

	a := Genome{"gray": P("G", "g"), "dun": P("D", "d")}
	b := Genome{"gray": P("G", "g"), "silver": P("Z", "z")}
	if _, err := Inherit(NewSource(1), a, b); !errors.Is(err, ErrLocusMismatch) {
		t.Errorf("Expected ErrLocusMismatch for differing locus names, got %v", err)
	}
}
