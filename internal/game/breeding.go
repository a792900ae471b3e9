package game

import (
	"fmt"
	"time"

	"menagerie/internal/genetics"
)

// Offspring is the genetic result of a mating.
type Offspring struct {
	Genome genetics.Genome
	Stats  Stats
}

// BreedPair combines two same-breed parents: Mendelian sampling per locus
// and parent-average stats. Different breeds or species are rejected.
func BreedPair(src genetics.Source, rules *SpeciesRules, a, b *Animal) (Offspring, error) {
	if a.Species != b.Species {
		return Offspring{}, incompatible(fmt.Sprintf("cannot breed a %s with a %s", a.Species, b.Species))
	}
	if a.Breed != b.Breed {
		return Offspring{}, incompatible(fmt.Sprintf("cannot breed %s with %s", a.Breed, b.Breed))
	}
	genome, err := genetics.Inherit(src, a.Genome, b.Genome)
	if err != nil {
		return Offspring{}, err
	}
	return Offspring{
		Genome: genome,
		Stats:  InheritStats(src, rules.Attributes, a.Stats, b.Stats),
	}, nil
}

// CheckBreeding validates roles, age, pregnancy and cooldown.
func (r *SpeciesRules) CheckBreeding(sire, dam *Animal, now time.Time) error {
	if sire.Species != dam.Species {
		return incompatible(fmt.Sprintf("cannot breed a %s with a %s", sire.Species, dam.Species))
	}
	if sire.Gender != r.Sire || dam.Gender != r.Dam {
		return incompatible(fmt.Sprintf("need a %s and a %s", r.Sire, r.Dam))
	}
	if sire.Breed != dam.Breed {
		return incompatible(fmt.Sprintf("cannot breed %s with %s", sire.Breed, dam.Breed))
	}
	if sire.AgeMonths < r.MinBreedingAgeMonths || dam.AgeMonths < r.MinBreedingAgeMonths {
		return incompatible(fmt.Sprintf("both parents must be at least %d months old", r.MinBreedingAgeMonths))
	}
	if dam.Breeding.Pregnant {
		return incompatible(fmt.Sprintf("%s is already pregnant", dam.Name))
	}
	if last := dam.Breeding.LastBred; last != nil {
		cooldown := time.Duration(r.CooldownDays) * 24 * time.Hour
		if now.Sub(*last) < cooldown {
			return incompatible(fmt.Sprintf("%s is still in breeding cooldown", dam.Name))
		}
	}
	return nil
}

// Breed validates the pair and produces the newborn. Parents are left
// untouched: the caller assigns the newborn an ID, then calls
// RecordOffspring to update both parents' breeding records and persists
// all three.
func (e *Engine) Breed(sire, dam *Animal) (*Animal, error) {
	rules, err := e.Tables.Rules(sire.Species)
	if err != nil {
		return nil, err
	}
	now := e.now()
	if err := rules.CheckBreeding(sire, dam, now); err != nil {
		return nil, err
	}
	off, err := BreedPair(e.Source, rules, sire, dam)
	if err != nil {
		return nil, err
	}

	child := &Animal{
		Owner:     dam.Owner,
		Name:      fmt.Sprintf("%s x %s %s", sire.Name, dam.Name, rules.Newborn),
		Species:   sire.Species,
		Breed:     sire.Breed,
		Gender:    e.randomGender(rules),
		Height:    e.uniform(rules.NewbornHeight),
		Genome:    off.Genome,
		Stats:     off.Stats,
		Training:  newTraining(rules),
		Color:     genetics.ResolveColor(off.Genome),
		Health:    newHealth(),
		Breeding:  BreedingRecord{Sire: sire.ID, Dam: dam.ID},
		Value:     rules.DefaultValue,
		CreatedAt: now,
	}
	if rules.NewbornWeight != nil {
		child.Weight = e.uniform(*rules.NewbornWeight)
	}
	child.Rarity = RollSequential(e.Source, rules.OffspringRarity)

	e.logger().Info("animals bred", "species", sire.Species, "breed", sire.Breed, "sire", sire.ID, "dam", dam.ID, "rarity", child.Rarity)
	return child, nil
}

// RecordOffspring links a stored newborn to its parents and starts the
// dam's cooldown.
func RecordOffspring(sire, dam *Animal, childID string, at time.Time) {
	sire.Breeding.Offspring = append(sire.Breeding.Offspring, childID)
	dam.Breeding.Offspring = append(dam.Breeding.Offspring, childID)
	dam.Breeding.Pregnancies++
	dam.Breeding.LastBred = &at
}
