package web

import (
	"fmt"
	"net/http"

	"menagerie/internal/game"
	"menagerie/internal/genetics"
)

type feeView struct {
	Animal     string `json:"animal"`
	Fee        int    `json:"fee"`
	Reputation int    `json:"reputation"`
}

// GET /api/shelter/{id}/fee prices a shelter dog and the reputation its
// adoption would earn.
func (s *Server) handleAdoptionFee(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, err := s.animal(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if a.Species != genetics.Dog {
		s.fail(w, r, fmt.Errorf("%w: only dogs are sheltered", errBadRequest))
		return
	}
	rules := s.Engine.Tables.Shelter
	fee, err := rules.AdoptionFee(a)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	rep, err := rules.ReputationGain(game.Adopt, a, 0)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, feeView{Animal: a.ID, Fee: fee, Reputation: rep})
}

// POST /api/shelter/{id}/sponsor
func (s *Server) handleSponsor(w http.ResponseWriter, r *http.Request) {
	owner := s.owner(w, r)
	ctx := r.Context()
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.animal(ctx, r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	wal, err := s.wallet(ctx, owner)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.Engine.Tables.Shelter.SponsorAnimal(wal, a); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.Wallets.Put(ctx, owner, wal); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wal)
}

type donateRequest struct {
	Coins int `json:"coins"`
}

// POST /api/shelter/donate
func (s *Server) handleDonate(w http.ResponseWriter, r *http.Request) {
	owner := s.owner(w, r)
	var req donateRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if req.Coins <= 0 {
		s.fail(w, r, fmt.Errorf("%w: donation must be positive", errBadRequest))
		return
	}
	ctx := r.Context()
	s.mu.Lock()
	defer s.mu.Unlock()

	wal, err := s.wallet(ctx, owner)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	rep, err := s.Engine.Tables.Shelter.ReputationGain(game.Donate, nil, req.Coins)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := wal.PayFee(req.Coins); err != nil {
		s.fail(w, r, err)
		return
	}
	wal.ShelterReputation += rep
	if err := s.Wallets.Put(ctx, owner, wal); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wal)
}
