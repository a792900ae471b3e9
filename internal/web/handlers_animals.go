package web

import (
	"fmt"
	"net/http"
	"slices"

	"menagerie/internal/game"
	"menagerie/internal/genetics"
)

type speciesView struct {
	Species     genetics.Species            `json:"species"`
	Breeds      []string                    `json:"breeds"`
	Attributes  []game.Attribute            `json:"attributes"`
	Categories  map[string][]game.Attribute `json:"categories"`
	Disciplines map[string][]game.Attribute `json:"disciplines"`
	Biomes      map[string]*game.Biome      `json:"biomes,omitempty"`
	Stages      map[string]*game.Stage      `json:"stages,omitempty"`
	Locations   map[string]*game.Location   `json:"locations,omitempty"`
}

// GET /api/species/{species}
func (s *Server) handleSpecies(w http.ResponseWriter, r *http.Request) {
	sp := genetics.Species(r.PathValue("species"))
	rules, err := s.Engine.Tables.Rules(sp)
	if err != nil {
		s.fail(w, r, fmt.Errorf("%w: %v", errNotFound, err))
		return
	}
	v := speciesView{
		Species:     sp,
		Breeds:      rules.BreedNames(),
		Attributes:  rules.Attributes,
		Categories:  rules.Categories,
		Disciplines: rules.Disciplines,
	}
	switch sp {
	case genetics.Horse:
		v.Biomes, v.Stages = s.Engine.Tables.Biomes, s.Engine.Tables.Stages
	case genetics.Dog:
		v.Locations = s.Engine.Tables.Locations
	}
	writeJSON(w, http.StatusOK, v)
}

// GET /api/wallet
func (s *Server) handleWallet(w http.ResponseWriter, r *http.Request) {
	owner := s.owner(w, r)
	s.mu.Lock()
	defer s.mu.Unlock()
	wal, err := s.wallet(r.Context(), owner)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wal)
}

// GET /api/animals
func (s *Server) handleListAnimals(w http.ResponseWriter, r *http.Request) {
	owner := s.owner(w, r)
	s.mu.RLock()
	defer s.mu.RUnlock()
	all, err := s.Animals.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	mine := slices.DeleteFunc(all, func(a *game.Animal) bool { return a.Owner != owner })
	if mine == nil {
		mine = []*game.Animal{}
	}
	writeJSON(w, http.StatusOK, mine)
}

// GET /api/animals/{id}
func (s *Server) handleGetAnimal(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, err := s.animal(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

type createRequest struct {
	Name    string           `json:"name"`
	Species genetics.Species `json:"species"`
	Breed   string           `json:"breed"`
	Gender  game.Gender      `json:"gender"`
}

// POST /api/animals buys a newborn from the shop. Unknown breeds are
// rejected with the closest known name.
func (s *Server) handleCreateAnimal(w http.ResponseWriter, r *http.Request) {
	owner := s.owner(w, r)
	var req createRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if req.Name == "" {
		s.fail(w, r, fmt.Errorf("%w: name is required", errBadRequest))
		return
	}
	rules, err := s.Engine.Tables.Rules(req.Species)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if _, ok := rules.Breeds[req.Breed]; !ok {
		hint, _ := s.Engine.Tables.SuggestBreed(req.Species, req.Breed)
		s.failWith(w, r, fmt.Errorf("%w: unknown %s breed %q", game.ErrInvalidSpeciesOrBreed, req.Species, req.Breed), hint)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.Engine.CreateAnimal(game.CreateRequest{
		Owner:   owner,
		Name:    req.Name,
		Species: req.Species,
		Breed:   req.Breed,
		Gender:  req.Gender,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.saveAnimal(r.Context(), a); err != nil {
		s.fail(w, r, err)
		return
	}
	s.logger().Info("animal created", "animal", a.ID, "species", a.Species, "breed", a.Breed, "rarity", a.Rarity)
	writeJSON(w, http.StatusCreated, a)
}

type trainRequest struct {
	Discipline string `json:"discipline"`
}

// POST /api/animals/{id}/train
func (s *Server) handleTrain(w http.ResponseWriter, r *http.Request) {
	owner := s.owner(w, r)
	var req trainRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	ctx := r.Context()
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.ownedAnimal(ctx, owner, r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	gain, err := s.Engine.Train(a, req.Discipline)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.saveAnimal(ctx, a); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"animal": a, "gain": gain})
}

type healthView struct {
	Defects  []string `json:"defects"`
	Carriers []string `json:"carriers"`
}

// GET /api/animals/{id}/defects
func (s *Server) handleDefects(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, err := s.animal(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	defects, err := a.Defects()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	carriers, err := a.Carriers()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	v := healthView{Defects: defects, Carriers: carriers}
	if v.Defects == nil {
		v.Defects = []string{}
	}
	if v.Carriers == nil {
		v.Carriers = []string{}
	}
	writeJSON(w, http.StatusOK, v)
}
