package genetics

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestGenerate_Completeness(t *testing.T) {
	src := NewSource(11)
	for _, tc := range []struct {
		species Species
		breeds  []string
	}{
		{Horse, []string{"Arabian", "Mustang", "Clydesdale", "Unknown Breed"}},
		{Dog, []string{"Border Collie", "Rottweiler", "Siberian Husky"}},
	} {
		table, err := Table(tc.species)
		if err != nil {
			t.Fatalf("Table(%s): %v", tc.species, err)
		}
		for _, breed := range tc.breeds {
			for i := 0; i < 200; i++ {
				g, err := Generate(src, tc.species, breed, nil)
				if err != nil {
					t.Fatalf("Generate(%s, %s): %v", tc.species, breed, err)
				}
				if len(g) != table.Len() {
					t.Fatalf("Expected %d loci, got %d", table.Len(), len(g))
				}
				if err := g.Validate(tc.species); err != nil {
					t.Fatalf("Generated genome invalid: %v", err)
				}
			}
		}
	}
}

func TestGenerate_UnknownSpecies(t *testing.T) {
	_, err := Generate(NewSource(1), "cat", "Siamese", nil)
	if !errors.Is(err, ErrUnknownSpecies) {
		t.Errorf("Expected ErrUnknownSpecies, got %v", err)
	}
}

func TestGenerate_ForcedOverride(t *testing.T) {
	mods := &Modifiers{Overrides: []Override{
		{Locus: "sabino", Pair: P("SB1", "sb1"), Probability: 1},
		{Locus: "overo", Pair: P("O", "o"), Probability: 0},
	}}
	src := NewSource(5)
	overoForced := 0
	for i := 0; i < 200; i++ {
		g, err := Generate(src, Horse, "Mustang", mods)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if g["sabino"] != P("SB1", "sb1") {
			t.Fatalf("Expected sabino override SB1/sb1, got %s", g["sabino"])
		}
		if g["overo"] == P("O", "o") {
			overoForced++
		}
	}
	// O/o can still come from the default draw, but rarely.
	if overoForced > 40 {
		t.Errorf("Expected zero-probability override to leave default draws, got %d O/o", overoForced)
	}
}

func TestGenerate_CleanHealthIsProbabilistic(t *testing.T) {
	src := NewSource(6)
	mods := &Modifiers{CleanHealth: 0.75}
	table, _ := Table(Dog)
	clean, dirty := 0, 0
	for i := 0; i < 2000; i++ {
		g, err := Generate(src, Dog, "Border Collie", mods)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		allNormal := true
		for _, l := range table.DefectLoci() {
			if !g[l.Name].HomozygousFor("N") {
				allNormal = false
			}
		}
		if allNormal {
			clean++
		} else {
			dirty++
		}
	}
	if clean < 1450 {
		t.Errorf("Expected most genomes clean, got %d clean", clean)
	}
	if dirty == 0 {
		t.Error("Expected residual carriers even with clean-health bias")
	}
}

func TestGenerate_CarrierInjection(t *testing.T) {
	src := NewSource(7)
	mods := &Modifiers{CarrierRate: 1, CleanHealth: 0}
	g, err := Generate(src, Dog, "German Shepherd", mods)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	table, _ := Table(Dog)
	for _, l := range table.DefectLoci() {
		if g[l.Name] != P(l.Defect.Normal, l.Defect.Affected) {
			t.Errorf("Expected carrier N/%s at %s, got %s", l.Defect.Affected, l.Name, g[l.Name])
		}
	}
}

func TestGenerate_AffectedChance(t *testing.T) {
	src := NewSource(8)
	mods := &Modifiers{AffectedChance: 1}
	g, err := Generate(src, Dog, "Rottweiler", mods)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	defects, err := CheckDefects(Dog, g)
	if err != nil {
		t.Fatalf("CheckDefects: %v", err)
	}
	if len(defects) == 0 {
		t.Error("Expected at least one expressed defect")
	}
}

func TestGenerate_BadOverrideFailsLoudly(t *testing.T) {
	_, err := Generate(NewSource(1), Horse, "Arabian", &Modifiers{Overrides: []Override{
		{Locus: "merle", Pair: P("M", "m"), Probability: 1},
	}})
	if !errors.Is(err, ErrUnknownLocus) {
		t.Errorf("Expected ErrUnknownLocus for dog locus on horse, got %v", err)
	}
	_, err = Generate(NewSource(1), Horse, "Arabian", &Modifiers{Overrides: []Override{
		{Locus: "gray", Pair: P("G", "X"), Probability: 1},
	}})
	if !errors.Is(err, ErrUnknownAllele) {
		t.Errorf("Expected ErrUnknownAllele, got %v", err)
	}
}

func TestGenome_ValidateRejectsExtraAndMissing(t *testing.T) {
	g, _ := Generate(NewSource(2), Horse, "Arabian", nil)

	extra := Genome{}
	for k, v := range g {
		extra[k] = v
	}
	extra["merle"] = P("M", "m")
	if err := extra.Validate(Horse); !errors.Is(err, ErrUnknownLocus) {
		t.Errorf("Expected ErrUnknownLocus for extraneous locus, got %v", err)
	}

	missing := Genome{}
	for k, v := range g {
		if k != "gray" {
			missing[k] = v
		}
	}
	if err := missing.Validate(Horse); !errors.Is(err, ErrUnknownLocus) {
		t.Errorf("Expected ErrUnknownLocus for missing locus, got %v", err)
	}
}

func TestGenome_EncodeDecode(t *testing.T) {
	g, _ := Generate(NewSource(3), Dog, "Border Collie", nil)
	raw := g.Encode()
	if raw["pra"] != g["pra"].String() {
		t.Errorf("Expected encoded pra %s, got %s", g["pra"], raw["pra"])
	}
	back, err := Decode(Dog, raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for name, p := range g {
		if back[name] != p {
			t.Errorf("Locus %s: expected %s, got %s", name, p, back[name])
		}
	}

	raw["pra"] = "N-pra"
	if _, err := Decode(Dog, raw); !errors.Is(err, ErrUnknownAllele) {
		t.Errorf("Expected ErrUnknownAllele for malformed genotype, got %v", err)
	}
}

func TestGenome_JSONUsesGenotypeStrings(t *testing.T) {
	g := Genome{"agouti": P("Ay", "at")}
	b, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(b) != `{"agouti":"Ay/at"}` {
		t.Errorf("Expected genotype string encoding, got %s", b)
	}
	var back Genome
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back["agouti"] != P("Ay", "at") {
		t.Errorf("Expected Ay/at, got %s", back["agouti"])
	}
}

func TestPair_Equal(t *testing.T) {
	if !P("N", "pra").Equal(P("pra", "N")) {
		t.Error("Expected pair equality to ignore order")
	}
	if P("N", "N").Equal(P("N", "pra")) {
		t.Error("Expected different genotypes to differ")
	}
}
