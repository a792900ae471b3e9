package game

import (
	"errors"
	"slices"
	"testing"

	"menagerie/internal/genetics"
)

func checkStats(t *testing.T, a *Animal) {
	t.Helper()
	for attr, v := range a.Stats {
		if v < 0 || v > 100 {
			t.Fatalf("Expected %s in [0, 100], got %d", attr, v)
		}
	}
}

func TestCaptureHorse_EveryBiome(t *testing.T) {
	e := newTestEngine(31)
	e.EventActive = func(string) bool { return true }
	rules, _ := e.Tables.Rules(genetics.Horse)

	for biomeID := range e.Tables.Biomes {
		for stageID, stage := range e.Tables.Stages {
			for i := 0; i < 100; i++ {
				res, err := e.CaptureHorse("u1", biomeID, stageID)
				if err != nil {
					t.Fatalf("Unexpected error for %s/%s: %v", biomeID, stageID, err)
				}
				a := res.Animal
				checkStats(t, a)
				if err := a.Genome.Validate(genetics.Horse); err != nil {
					t.Fatalf("Expected a complete genome, got %v", err)
				}
				if _, ok := rules.Breeds[a.Breed]; !ok {
					t.Fatalf("Expected a known breed, got %s", a.Breed)
				}
				if a.AgeMonths < stage.MinAgeMonths || a.AgeMonths > stage.MaxAgeMonths {
					t.Fatalf("Expected age in %d-%d, got %d", stage.MinAgeMonths, stage.MaxAgeMonths, a.AgeMonths)
				}
				if !a.Rarity.Valid() {
					t.Fatalf("Expected a valid rarity, got %s", a.Rarity)
				}
				if a.Wild == nil || a.Wild.Origin != biomeID || a.Wild.MaturityStage != stageID {
					t.Fatalf("Expected wild traits for %s/%s, got %+v", biomeID, stageID, a.Wild)
				}
				if a.Height < 14 || a.Height > 17 {
					t.Fatalf("Expected height 14-17, got %v", a.Height)
				}
			}
		}
	}
}

func TestCaptureHorse_StageScale(t *testing.T) {
	e := newTestEngine(32)
	for i := 0; i < 500; i++ {
		res, err := e.CaptureHorse("u1", "plains", "foal")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		for attr, v := range res.Animal.Stats {
			if v > 60 {
				t.Fatalf("Expected foal %s at most 60, got %d", attr, v)
			}
		}
	}
}

func TestCaptureHorse_EventBiome(t *testing.T) {
	e := newTestEngine(33)
	e.EventActive = func(string) bool { return false }
	if _, err := e.CaptureHorse("u1", "volcanic_ridge", "adult"); !errors.Is(err, ErrBiomeInactive) {
		t.Fatalf("Expected ErrBiomeInactive, got %v", err)
	}

	e.EventActive = func(string) bool { return true }
	pool := e.Tables.Biomes["volcanic_ridge"].Overlays
	overlays := 0
	for i := 0; i < 500; i++ {
		res, err := e.CaptureHorse("u1", "volcanic_ridge", "adult")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if res.Experience != 150 {
			t.Fatalf("Expected 150 experience, got %d", res.Experience)
		}
		for _, o := range res.Animal.Color.Overlays {
			if !slices.Contains(pool, o) {
				t.Fatalf("Expected overlay from %v, got %s", pool, o)
			}
			overlays++
		}
	}
	// exclusive coats: 70%
	if overlays < 300 || overlays > 400 {
		t.Errorf("Expected about 350 overlays, got %d", overlays)
	}
}

func TestCaptureHorse_LookupErrors(t *testing.T) {
	e := newTestEngine(34)
	if _, err := e.CaptureHorse("u1", "jungle", "adult"); !errors.Is(err, ErrUnknownBiome) {
		t.Errorf("Expected ErrUnknownBiome, got %v", err)
	}
	if _, err := e.CaptureHorse("u1", "plains", "elder"); !errors.Is(err, ErrUnknownStage) {
		t.Errorf("Expected ErrUnknownStage, got %v", err)
	}
}

func TestCaptureDog_Locations(t *testing.T) {
	e := newTestEngine(35)
	rules, _ := e.Tables.Rules(genetics.Dog)
	for locID, loc := range e.Tables.Locations {
		for i := 0; i < 300; i++ {
			res, err := e.CaptureDog("u1", locID, true)
			if err != nil {
				t.Fatalf("Unexpected error for %s: %v", locID, err)
			}
			a := res.Animal
			checkStats(t, a)
			if _, ok := rules.Breeds[a.Breed]; !ok {
				t.Fatalf("Expected a known breed, got %s", a.Breed)
			}
			if a.Wild.COI < loc.COI.Min || a.Wild.COI > loc.COI.Max {
				t.Fatalf("Expected COI in %d-%d, got %d", loc.COI.Min, loc.COI.Max, a.Wild.COI)
			}
			if a.AgeYears() < 1 || a.AgeYears() > 8 {
				t.Fatalf("Expected age 1-8 years, got %d", a.AgeYears())
			}
			if a.Wild.SpecialTitle != "" && !loc.Effects.Has(StrayHeroChance) {
				t.Fatalf("Expected no title at %s, got %s", locID, a.Wild.SpecialTitle)
			}
		}
	}
}

func TestCaptureDog_LocationTraits(t *testing.T) {
	e := newTestEngine(36)

	park, err := e.CaptureDog("u1", "park", false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if park.Animal.Wild.BondingSpeed != 75 {
		t.Errorf("Expected park bonding speed 75, got %d", park.Animal.Wild.BondingSpeed)
	}
	if park.Animal.Wild.TamingDifficulty != 35 {
		t.Errorf("Expected park taming difficulty 35, got %d", park.Animal.Wild.TamingDifficulty)
	}
	if park.BreederPoints != 0 {
		t.Errorf("Expected no breeder points at the park, got %d", park.BreederPoints)
	}

	farm, err := e.CaptureDog("u1", "farm", true)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if farm.BreederPoints != 10 {
		t.Errorf("Expected 10 breeder points, got %d", farm.BreederPoints)
	}
	if farm.Animal.Wild.TamingDifficulty != 45 {
		t.Errorf("Expected farm taming difficulty 45, got %d", farm.Animal.Wild.TamingDifficulty)
	}
	if farm.Animal.Wild.BondingSpeed != 50 {
		t.Errorf("Expected farm bonding speed 50, got %d", farm.Animal.Wild.BondingSpeed)
	}
}

func TestCaptureDog_PremiumOnly(t *testing.T) {
	e := newTestEngine(37)
	if _, err := e.CaptureDog("u1", "streets", false); !errors.Is(err, ErrPremiumOnly) {
		t.Errorf("Expected ErrPremiumOnly, got %v", err)
	}
	if _, err := e.CaptureDog("u1", "mall", true); !errors.Is(err, ErrUnknownLocation) {
		t.Errorf("Expected ErrUnknownLocation, got %v", err)
	}
}

func TestCaptureDog_StreetsCarryMoreDisorders(t *testing.T) {
	e := newTestEngine(38)
	affected := func(loc string) int {
		n := 0
		for i := 0; i < 1000; i++ {
			res, err := e.CaptureDog("u1", loc, true)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			d, err := res.Animal.Defects()
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(d) > 0 {
				n++
			}
		}
		return n
	}
	streets, farm := affected("streets"), affected("farm")
	if streets <= farm {
		t.Errorf("Expected more affected dogs from the streets (%d) than the farm (%d)", streets, farm)
	}
}

func TestCreateAnimal(t *testing.T) {
	e := newTestEngine(39)
	pony, err := e.CreateAnimal(CreateRequest{Owner: "u1", Name: "Pip", Species: genetics.Horse, Breed: "Shetland Pony", Gender: Mare})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if pony.Height < 12 || pony.Height > 15 {
		t.Errorf("Expected pony height 12-15, got %v", pony.Height)
	}
	if pony.AgeMonths != 0 || pony.Value != 1000 || pony.Health.Status != Healthy {
		t.Errorf("Expected a healthy newborn worth 1000, got %+v", pony)
	}
	if len(pony.Training) != 7 {
		t.Errorf("Expected 7 zeroed disciplines, got %v", pony.Training)
	}
	checkStats(t, pony)

	unknown, err := e.CreateAnimal(CreateRequest{Owner: "u1", Name: "Odd", Species: genetics.Horse, Breed: "Unicorn", Gender: Stallion})
	if err != nil {
		t.Fatalf("Expected generic baseline for unknown breed, got %v", err)
	}
	for attr, v := range unknown.Stats {
		if v < 40 || v > 65 {
			t.Errorf("Expected %s within 40-65, got %d", attr, v)
		}
	}

	if _, err := e.CreateAnimal(CreateRequest{Species: genetics.Horse, Breed: "Arabian", Gender: Male}); !errors.Is(err, ErrInvalidSpeciesOrBreed) {
		t.Errorf("Expected ErrInvalidSpeciesOrBreed for a male horse, got %v", err)
	}
	if _, err := e.CreateAnimal(CreateRequest{Species: "cat", Gender: Male}); !errors.Is(err, ErrInvalidSpeciesOrBreed) {
		t.Errorf("Expected ErrInvalidSpeciesOrBreed for a cat, got %v", err)
	}
}
