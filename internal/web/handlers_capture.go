package web

import (
	"context"
	"fmt"
	"net/http"

	"menagerie/internal/game"
)

type captureRequest struct {
	Biome    string             `json:"biome,omitempty"`
	Stage    string             `json:"stage,omitempty"`
	Location string             `json:"location,omitempty"`
	Method   game.PaymentMethod `json:"method"`
}

type captureResponse struct {
	*game.CaptureResult
	Wallet  *game.Wallet `json:"wallet"`
	LevelUp bool         `json:"levelUp,omitempty"`
}

// POST /api/captures/horse
func (s *Server) handleCaptureHorse(w http.ResponseWriter, r *http.Request) {
	var req captureRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	biome, err := s.Engine.Tables.Biome(req.Biome)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if _, err := s.Engine.Tables.Stage(req.Stage); err != nil {
		s.fail(w, r, err)
		return
	}
	if !s.Engine.BiomeActive(req.Biome) {
		s.fail(w, r, fmt.Errorf("%w: %s", game.ErrBiomeInactive, biome.Name))
		return
	}
	s.capture(w, r, biome.Costs, req.Method, func(owner string, _ *game.Wallet) (*game.CaptureResult, error) {
		return s.Engine.CaptureHorse(owner, req.Biome, req.Stage)
	})
}

// POST /api/captures/dog
func (s *Server) handleCaptureDog(w http.ResponseWriter, r *http.Request) {
	var req captureRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	loc, err := s.Engine.Tables.Location(req.Location)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.capture(w, r, loc.Costs, req.Method, func(owner string, wal *game.Wallet) (*game.CaptureResult, error) {
		return s.Engine.CaptureDog(owner, req.Location, wal.Premium)
	})
}

// capture generates the animal first and only then takes payment, so a
// rejected capture (premium, inactive biome) costs nothing.
func (s *Server) capture(w http.ResponseWriter, r *http.Request, cost game.Cost, method game.PaymentMethod,
	generate func(owner string, wal *game.Wallet) (*game.CaptureResult, error)) {
	owner := s.owner(w, r)
	ctx := r.Context()
	s.mu.Lock()
	defer s.mu.Unlock()

	wal, err := s.wallet(ctx, owner)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	res, err := generate(owner, wal)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := wal.Pay(cost, method); err != nil {
		s.fail(w, r, err)
		return
	}
	levelUp := wal.AddExperience(res.Experience, s.Engine.Tables.Capture.ExperiencePerLevel)
	wal.BreederPoints += res.BreederPoints

	if err := s.persistCapture(ctx, wal, res.Animal); err != nil {
		s.fail(w, r, err)
		return
	}
	s.logger().Info("animal captured", "owner", owner, "animal", res.Animal.ID, "species", res.Animal.Species,
		"breed", res.Animal.Breed, "rarity", res.Animal.Rarity, "method", method)
	writeJSON(w, http.StatusCreated, captureResponse{CaptureResult: res, Wallet: wal, LevelUp: levelUp})
}

func (s *Server) persistCapture(ctx context.Context, wal *game.Wallet, a *game.Animal) error {
	if err := s.saveAnimal(ctx, a); err != nil {
		return err
	}
	return s.Wallets.Put(ctx, wal.Owner, wal)
}
