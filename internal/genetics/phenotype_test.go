package genetics

import "testing"

func TestResolveColor(t *testing.T) {
	tests := []struct {
		name    string
		genome  Genome
		base    string
		pattern string
	}{
		{"default bay", Genome{"extension": P("E", "e"), "agouti": P("Ay", "a")}, "bay", "solid"},
		{"chestnut", Genome{"extension": P("e", "e"), "agouti": P("a", "a")}, "chestnut", "solid"},
		{"black", Genome{"extension": P("E", "E"), "agouti": P("a", "a")}, "black", "solid"},
		{"palomino", Genome{"extension": P("e", "e"), "cream": P("C", "Ccr")}, "chestnut_cream", "solid"},
		{"dilute dog", Genome{"extension": P("E", "e"), "agouti": P("a", "a"), "dilution": P("d", "d")}, "black_dilute", "solid"},
		{"dilute carrier dog", Genome{"extension": P("E", "E"), "agouti": P("a", "a"), "dilution": P("D", "d")}, "black_dilute", "solid"},
		{"undiluted dog", Genome{"extension": P("E", "E"), "agouti": P("a", "a"), "dilution": P("D", "D")}, "black", "solid"},
		{"gray wins", Genome{"extension": P("e", "e"), "cream": P("Ccr", "Ccr"), "gray": P("G", "g")}, "gray", "solid"},
		{"graying dog", Genome{"graying": P("g", "G"), "merle": P("m", "m")}, "gray", "solid"},
		{"tobiano", Genome{"tobiano": P("to", "TO")}, "bay", "tobiano"},
		{"merle", Genome{"merle": P("M", "m")}, "bay", "merle"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ResolveColor(tt.genome)
			if c.Base != tt.base {
				t.Errorf("Expected base %s, got %s", tt.base, c.Base)
			}
			if c.Pattern != tt.pattern {
				t.Errorf("Expected pattern %s, got %s", tt.pattern, c.Pattern)
			}
		})
	}
}

func TestResolveColor_ChestnutParentsBreedTrue(t *testing.T) {
	src := NewSource(31)
	sire, _ := Generate(src, Horse, "Quarter Horse", nil)
	dam, _ := Generate(src, Horse, "Quarter Horse", nil)
	sire["extension"] = P("e", "e")
	dam["extension"] = P("e", "e")
	sire["gray"] = P("g", "g")
	dam["gray"] = P("g", "g")

	for i := 0; i < 500; i++ {
		foal, err := Inherit(src, sire, dam)
		if err != nil {
			t.Fatalf("Inherit: %v", err)
		}
		if base := ResolveColor(foal).Base; !IsChestnutFamily(base) {
			t.Fatalf("Expected chestnut family base, got %s", base)
		}
	}
}

func TestIsChestnutFamily(t *testing.T) {
	if !IsChestnutFamily("chestnut_cream") {
		t.Error("Expected chestnut_cream to be chestnut family")
	}
	if IsChestnutFamily("bay") {
		t.Error("Expected bay not to be chestnut family")
	}
}
