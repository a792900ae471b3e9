package web

import (
	"net/http"

	"menagerie/internal/game"
)

type breedRequest struct {
	Sire string `json:"sire"`
	Dam  string `json:"dam"`
}

// POST /api/breedings breeds two of the caller's animals and stores the
// newborn with the dam's owner.
func (s *Server) handleBreed(w http.ResponseWriter, r *http.Request) {
	owner := s.owner(w, r)
	var req breedRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	ctx := r.Context()
	s.mu.Lock()
	defer s.mu.Unlock()

	sire, err := s.ownedAnimal(ctx, owner, req.Sire)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	dam, err := s.ownedAnimal(ctx, owner, req.Dam)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	child, err := s.Engine.Breed(sire, dam)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.saveAnimal(ctx, child); err != nil {
		s.fail(w, r, err)
		return
	}
	game.RecordOffspring(sire, dam, child.ID, child.CreatedAt)
	for _, a := range []*game.Animal{sire, dam} {
		if err := s.saveAnimal(ctx, a); err != nil {
			s.fail(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusCreated, child)
}
