package game

import (
	"errors"
	"strings"
	"testing"
	"time"

	"menagerie/internal/genetics"
)

func buyAnimal(t *testing.T, e *Engine, species genetics.Species, breed string, gender Gender, name string) *Animal {
	t.Helper()
	a, err := e.CreateAnimal(CreateRequest{Owner: "u1", Name: name, Species: species, Breed: breed, Gender: gender})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	a.ID = name
	rules, _ := e.Tables.Rules(species)
	a.AgeMonths = rules.MinBreedingAgeMonths
	return a
}

func TestBreedPair_RejectsDifferentBreeds(t *testing.T) {
	e := newTestEngine(1)
	rules, _ := e.Tables.Rules(genetics.Horse)
	arabian := buyAnimal(t, e, genetics.Horse, "Arabian", Stallion, "Sultan")
	mustang := buyAnimal(t, e, genetics.Horse, "Mustang", Mare, "Dusty")

	_, err := BreedPair(e.Source, rules, arabian, mustang)
	if !errors.Is(err, ErrIncompatibleBreedingPair) {
		t.Fatalf("Expected ErrIncompatibleBreedingPair, got %v", err)
	}
	var ib *IncompatibleBreedingError
	if !errors.As(err, &ib) || !strings.Contains(ib.Reason, "Arabian") {
		t.Errorf("Expected a reason naming the breeds, got %v", err)
	}
}

func TestBreedPair_SameBreed(t *testing.T) {
	e := newTestEngine(2)
	rules, _ := e.Tables.Rules(genetics.Dog)
	a := buyAnimal(t, e, genetics.Dog, "Border Collie", Male, "Rex")
	b := buyAnimal(t, e, genetics.Dog, "Border Collie", Female, "Fly")

	off, err := BreedPair(e.Source, rules, a, b)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := off.Genome.Validate(genetics.Dog); err != nil {
		t.Errorf("Expected a complete dog genome, got %v", err)
	}
	for locus, p := range off.Genome {
		if !a.Genome[locus].Has(p.A) && !b.Genome[locus].Has(p.A) {
			t.Errorf("Allele %s at %s not present in either parent", p.A, locus)
		}
	}
	if len(off.Stats) != len(rules.Attributes) {
		t.Errorf("Expected %d stats, got %d", len(rules.Attributes), len(off.Stats))
	}
}

func TestBreed_Validation(t *testing.T) {
	e := newTestEngine(3)
	sire := buyAnimal(t, e, genetics.Horse, "Arabian", Stallion, "Sultan")
	dam := buyAnimal(t, e, genetics.Horse, "Arabian", Mare, "Layla")
	otherSire := buyAnimal(t, e, genetics.Horse, "Arabian", Stallion, "Zephyr")

	if _, err := e.Breed(sire, otherSire); !errors.Is(err, ErrIncompatibleBreedingPair) {
		t.Errorf("Expected two stallions to be rejected, got %v", err)
	}

	young := buyAnimal(t, e, genetics.Horse, "Arabian", Mare, "Filly")
	young.AgeMonths = 35
	if _, err := e.Breed(sire, young); !errors.Is(err, ErrIncompatibleBreedingPair) {
		t.Errorf("Expected an under-age mare to be rejected, got %v", err)
	}

	dam.Breeding.Pregnant = true
	if _, err := e.Breed(sire, dam); !errors.Is(err, ErrIncompatibleBreedingPair) {
		t.Errorf("Expected a pregnant mare to be rejected, got %v", err)
	}
	dam.Breeding.Pregnant = false

	recent := testNow.Add(-10 * 24 * time.Hour)
	dam.Breeding.LastBred = &recent
	if _, err := e.Breed(sire, dam); !errors.Is(err, ErrIncompatibleBreedingPair) {
		t.Errorf("Expected a mare in cooldown to be rejected, got %v", err)
	}

	old := testNow.Add(-31 * 24 * time.Hour)
	dam.Breeding.LastBred = &old
	if _, err := e.Breed(sire, dam); err != nil {
		t.Errorf("Expected cooldown to have expired, got %v", err)
	}
}

func TestBreed_CreatesFoal(t *testing.T) {
	e := newTestEngine(4)
	sire := buyAnimal(t, e, genetics.Horse, "Friesian", Stallion, "Storm")
	dam := buyAnimal(t, e, genetics.Horse, "Friesian", Mare, "Raven")

	foal, err := e.Breed(sire, dam)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if foal.Name != "Storm x Raven Foal" {
		t.Errorf("Expected name 'Storm x Raven Foal', got '%s'", foal.Name)
	}
	if foal.AgeMonths != 0 {
		t.Errorf("Expected age 0, got %d", foal.AgeMonths)
	}
	if foal.Breeding.Sire != "Storm" || foal.Breeding.Dam != "Raven" {
		t.Errorf("Expected parent links, got %+v", foal.Breeding)
	}
	if foal.Gender != Stallion && foal.Gender != Mare {
		t.Errorf("Expected a horse gender, got %s", foal.Gender)
	}
	if want := genetics.ResolveColor(foal.Genome); foal.Color.Base != want.Base || foal.Color.Pattern != want.Pattern {
		t.Errorf("Expected colour %+v from the foal's genome, got %+v", want, foal.Color)
	}
	if foal.Rarity != Common && foal.Rarity != Epic && foal.Rarity != Legendary {
		t.Errorf("Expected common, epic or legendary offspring, got %s", foal.Rarity)
	}
	if len(sire.Breeding.Offspring) != 0 || dam.Breeding.Pregnancies != 0 || dam.Breeding.LastBred != nil {
		t.Errorf("Expected Breed to leave the parents unchanged, got %+v %+v", sire.Breeding, dam.Breeding)
	}

	RecordOffspring(sire, dam, "foal-1", testNow)
	if len(sire.Breeding.Offspring) != 1 || dam.Breeding.Offspring[0] != "foal-1" {
		t.Errorf("Expected offspring recorded on both parents")
	}
	if dam.Breeding.Pregnancies != 1 || dam.Breeding.LastBred == nil {
		t.Errorf("Expected dam pregnancy count and last bred set, got %+v", dam.Breeding)
	}
	if _, err := e.Breed(sire, dam); !errors.Is(err, ErrIncompatibleBreedingPair) {
		t.Errorf("Expected the dam to be in cooldown, got %v", err)
	}
}

func TestBreed_PuppyName(t *testing.T) {
	e := newTestEngine(5)
	sire := buyAnimal(t, e, genetics.Dog, "Siberian Husky", Male, "Snoop")
	dam := buyAnimal(t, e, genetics.Dog, "Siberian Husky", Female, "Daisy")
	pup, err := e.Breed(sire, dam)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if pup.Name != "Snoop x Daisy Puppy" {
		t.Errorf("Expected 'Snoop x Daisy Puppy', got '%s'", pup.Name)
	}
	if pup.Weight <= 0 {
		t.Errorf("Expected a newborn weight, got %v", pup.Weight)
	}
}
