package game

import (
	"fmt"

	"menagerie/internal/genetics"
)

// CreateRequest describes a shop purchase.
type CreateRequest struct {
	Owner   string
	Name    string
	Species genetics.Species
	Breed   string
	Gender  Gender
}

// CreateAnimal generates a newborn animal of the requested breed. An unknown
// breed still gets a complete genome and the generic baseline stats.
func (e *Engine) CreateAnimal(req CreateRequest) (*Animal, error) {
	rules, err := e.Tables.Rules(req.Species)
	if err != nil {
		return nil, err
	}
	if req.Gender != rules.Sire && req.Gender != rules.Dam {
		return nil, fmt.Errorf("%w: gender %q for %s", ErrInvalidSpeciesOrBreed, req.Gender, req.Species)
	}
	genome, err := genetics.Generate(e.Source, req.Species, req.Breed, nil)
	if err != nil {
		return nil, err
	}
	base, err := e.baseline(req.Species, req.Breed)
	if err != nil {
		return nil, err
	}

	a := &Animal{
		Owner:     req.Owner,
		Name:      req.Name,
		Species:   req.Species,
		Breed:     req.Breed,
		Gender:    req.Gender,
		Genome:    genome,
		Stats:     DeriveStats(e.Source, rules.Attributes, base, StatContext{Genome: genome, Bonuses: rules.GeneticBonuses}),
		Training:  newTraining(rules),
		Color:     genetics.ResolveColor(genome),
		Health:    newHealth(),
		Value:     rules.DefaultValue,
		CreatedAt: e.now(),
	}
	breed, known := rules.Breeds[req.Breed]
	a.Height = e.uniform(rules.DefaultHeight)
	if known && breed.Height != nil {
		a.Height = e.uniform(*breed.Height)
	}
	switch {
	case known && breed.Weight != nil:
		a.Weight = e.uniform(*breed.Weight)
	case rules.DefaultWeight != nil:
		a.Weight = e.uniform(*rules.DefaultWeight)
	}
	a.Rarity = RollSequential(e.Source, rules.PurchaseRarity)
	return a, nil
}

func newTraining(r *SpeciesRules) map[string]int {
	t := make(map[string]int, len(r.Disciplines))
	for d := range r.Disciplines {
		t[d] = 0
	}
	return t
}
