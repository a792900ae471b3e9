package game

import (
	"testing"

	"menagerie/internal/genetics"
)

var horseThresholds = RarityThresholds{Legendary: 0.05, Epic: 0.15, Rare: 0.35, Uncommon: 0.60}

func TestClassifyRarity_Tiers(t *testing.T) {
	cases := []struct {
		roll float64
		want Rarity
	}{
		{0, Legendary},
		{0.049, Legendary},
		{0.05, Epic},
		{0.149, Epic},
		{0.3, Rare},
		{0.5, Uncommon},
		{0.6, Common},
		{0.99, Common},
	}
	for _, c := range cases {
		if got := ClassifyRarity(horseThresholds, c.roll, 1, false); got != c.want {
			t.Errorf("Expected %s for roll %v, got %s", c.want, c.roll, got)
		}
	}
}

func TestClassifyRarity_Saturates(t *testing.T) {
	for roll := 0.0; roll < 1; roll += 0.001 {
		if got := ClassifyRarity(horseThresholds, roll, 4.0, false); got == Common {
			t.Fatalf("Expected no common tier at modifier 4.0, got common for roll %v", roll)
		}
	}
	if got := ClassifyRarity(horseThresholds, 0.19, 4.0, false); got != Legendary {
		t.Errorf("Expected legendary at 0.19 with modifier 4.0, got %s", got)
	}
	if got := ClassifyRarity(horseThresholds, 0.59, 4.0, false); got != Epic {
		t.Errorf("Expected epic at 0.59 with modifier 4.0, got %s", got)
	}
}

func TestClassifyRarity_SpecialDoubles(t *testing.T) {
	dog := RarityThresholds{Legendary: 0.02, Epic: 0.08, Rare: 0.20, Uncommon: 0.45}
	if got := ClassifyRarity(dog, 0.03, 1, false); got != Epic {
		t.Errorf("Expected epic without title, got %s", got)
	}
	if got := ClassifyRarity(dog, 0.03, 1, true); got != Legendary {
		t.Errorf("Expected legendary with title, got %s", got)
	}
}

func TestRarityRank(t *testing.T) {
	for i, r := range Rarities {
		if r.Rank() != i {
			t.Errorf("Expected rank %d for %s, got %d", i, r, r.Rank())
		}
	}
	if Rarity("mythic").Valid() {
		t.Error("Expected mythic to be invalid")
	}
}

func TestRollSequential(t *testing.T) {
	purchase := []RarityRoll{{Tier: Rare, Chance: 0.1}, {Tier: Uncommon, Chance: 0.3}}
	cases := []struct {
		roll float64
		want Rarity
	}{
		{0.05, Rare},
		{0.12, Uncommon},
		{0.5, Common},
	}
	for _, c := range cases {
		if got := RollSequential(fixedSource{f: c.roll}, purchase); got != c.want {
			t.Errorf("Expected %s for roll %v, got %s", c.want, c.roll, got)
		}
	}
}

func TestRollSequential_Distribution(t *testing.T) {
	purchase := []RarityRoll{{Tier: Rare, Chance: 0.1}, {Tier: Uncommon, Chance: 0.3}}
	src := genetics.NewSource(21)
	counts := map[Rarity]int{}
	const n = 20000
	for i := 0; i < n; i++ {
		counts[RollSequential(src, purchase)]++
	}
	// rare 10%, uncommon 0.9 x 0.3 = 27%
	if counts[Rare] < 1700 || counts[Rare] > 2300 {
		t.Errorf("Expected about 2000 rare, got %d", counts[Rare])
	}
	if counts[Uncommon] < 5000 || counts[Uncommon] > 5800 {
		t.Errorf("Expected about 5400 uncommon, got %d", counts[Uncommon])
	}
}

func TestAffinities_TagsMatchingDisciplines(t *testing.T) {
	rule := AffinityRule{Chance: 0.6, Disciplines: map[string][]string{
		"herding":  {"Border Collie"},
		"tracking": {"Border Collie", "Beagle"},
		"guarding": {"Rottweiler"},
	}}
	got := affinities(fixedSource{f: 0.5}, rule, "Border Collie")
	if len(got) != 2 || got[0] != "herding" || got[1] != "tracking" {
		t.Errorf("Expected [herding tracking], got %v", got)
	}
	if got := affinities(fixedSource{f: 0.7}, rule, "Border Collie"); got != nil {
		t.Errorf("Expected no affinities on a failed roll, got %v", got)
	}
}

func TestHorseTemperament(t *testing.T) {
	adult := &Stage{StubbornChance: 0.3}
	if got := horseTemperament(fixedSource{f: 0.5}, []string{"calm"}, CalmTemperament, adult); got != "calm" {
		t.Errorf("Expected calm, got %s", got)
	}
	if got := horseTemperament(fixedSource{f: 0.2}, []string{"calm"}, 0, adult); got != "stubborn" {
		t.Errorf("Expected stubborn adult, got %s", got)
	}
	if got := horseTemperament(fixedSource{f: 0.3}, []string{"calm"}, TemperamentVariation, adult); got != "difficult" {
		t.Errorf("Expected difficult, got %s", got)
	}
}
