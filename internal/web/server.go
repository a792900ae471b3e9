package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"menagerie/internal/game"
	"menagerie/internal/genetics"
	"menagerie/internal/store"
)

// Server exposes the engine as a JSON API. Players are identified by a
// cookie, or by the X-Owner header for API clients.
type Server struct {
	Engine  *game.Engine
	Animals store.Store[*game.Animal]
	Wallets store.Store[*game.Wallet]
	Events  store.Store[*game.Event]
	Log     *slog.Logger

	StartingCoins int
	StartingGems  int
	// PortraitDir holds breed photos; StaticDir holds biome backdrops.
	PortraitDir string
	StaticDir   string

	// mu serializes read-modify-write cycles across stores. Readers hold it
	// too because the memory store hands out the stored pointers.
	mu sync.RWMutex
}

const (
	cookieName  = "menagerie_owner"
	ownerHeader = "X-Owner"
)

// starterItems lets a new player make one plains and one park capture.
var starterItems = map[string]int{"rope": 1, "nylon_leash": 1}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/species/{species}", s.handleSpecies)
	mux.HandleFunc("GET /api/wallet", s.handleWallet)

	mux.HandleFunc("GET /api/animals", s.handleListAnimals)
	mux.HandleFunc("POST /api/animals", s.handleCreateAnimal)
	mux.HandleFunc("GET /api/animals/{id}", s.handleGetAnimal)
	mux.HandleFunc("POST /api/animals/{id}/train", s.handleTrain)
	mux.HandleFunc("GET /api/animals/{id}/defects", s.handleDefects)
	mux.HandleFunc("GET /api/animals/{id}/certificate", s.handleCertificate)

	mux.HandleFunc("POST /api/captures/horse", s.handleCaptureHorse)
	mux.HandleFunc("POST /api/captures/dog", s.handleCaptureDog)
	mux.HandleFunc("POST /api/breedings", s.handleBreed)

	mux.HandleFunc("GET /api/events", s.handleListEvents)
	mux.HandleFunc("POST /api/events", s.handleCreateEvent)
	mux.HandleFunc("GET /api/events/{id}", s.handleGetEvent)
	mux.HandleFunc("POST /api/events/{id}/open", s.handleOpenEvent)
	mux.HandleFunc("POST /api/events/{id}/close", s.handleCloseEvent)
	mux.HandleFunc("POST /api/events/{id}/register", s.handleRegister)
	mux.HandleFunc("POST /api/events/{id}/run", s.handleRunEvent)
	mux.HandleFunc("GET /api/events/{id}/results.csv", s.handleResultsCSV)

	mux.HandleFunc("GET /api/shelter/{id}/fee", s.handleAdoptionFee)
	mux.HandleFunc("POST /api/shelter/{id}/sponsor", s.handleSponsor)
	mux.HandleFunc("POST /api/shelter/donate", s.handleDonate)

	mux.HandleFunc("GET /biomes/{file}", s.handleBiome)
	mux.HandleFunc("GET /portraits/{breed}", s.handlePortrait)
	return mux
}

func (s *Server) logger() *slog.Logger {
	if s.Log == nil {
		return slog.Default()
	}
	return s.Log
}

// owner returns the caller's player ID, issuing a cookie on first contact.
func (s *Server) owner(w http.ResponseWriter, r *http.Request) string {
	if id := r.Header.Get(ownerHeader); id != "" {
		return id
	}
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	id := s.Wallets.NewID()
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// wallet loads the owner's wallet, creating a starter wallet if needed.
func (s *Server) wallet(ctx context.Context, owner string) (*game.Wallet, error) {
	w, ok, err := s.Wallets.Get(ctx, owner)
	if err != nil {
		return nil, err
	}
	if ok {
		return w, nil
	}
	w = game.NewWallet(owner, s.StartingCoins, s.StartingGems, starterItems)
	w.ID = owner
	if err := s.Wallets.Put(ctx, owner, w); err != nil {
		return nil, err
	}
	return w, nil
}

// ownedAnimal loads an animal and checks the caller owns it.
func (s *Server) ownedAnimal(ctx context.Context, owner, id string) (*game.Animal, error) {
	a, err := s.animal(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Owner != owner {
		return nil, fmt.Errorf("%w: animal %s", errForbidden, id)
	}
	return a, nil
}

func (s *Server) animal(ctx context.Context, id string) (*game.Animal, error) {
	a, ok, err := s.Animals.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: animal %s", errNotFound, id)
	}
	return a, nil
}

func (s *Server) event(ctx context.Context, id string) (*game.Event, error) {
	ev, ok, err := s.Events.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: event %s", errNotFound, id)
	}
	return ev, nil
}

// saveAnimal assigns an ID to new records.
func (s *Server) saveAnimal(ctx context.Context, a *game.Animal) error {
	if a.ID == "" {
		a.ID = s.Animals.NewID()
	}
	return s.Animals.Put(ctx, a.ID, a)
}

var (
	errNotFound   = errors.New("not found")
	errForbidden  = errors.New("not yours")
	errBadRequest = errors.New("bad request")
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errNotFound),
		errors.Is(err, game.ErrUnknownBiome),
		errors.Is(err, game.ErrUnknownLocation),
		errors.Is(err, game.ErrUnknownStage):
		return http.StatusNotFound
	case errors.Is(err, game.ErrInsufficientResources):
		return http.StatusPaymentRequired
	case errors.Is(err, errForbidden), errors.Is(err, game.ErrPremiumOnly):
		return http.StatusForbidden
	case errors.Is(err, game.ErrAlreadyRegistered),
		errors.Is(err, game.ErrEventNotReady),
		errors.Is(err, game.ErrRegistrationClosed),
		errors.Is(err, game.ErrBiomeInactive):
		return http.StatusConflict
	case errors.Is(err, errBadRequest),
		errors.Is(err, game.ErrInvalidSpeciesOrBreed),
		errors.Is(err, game.ErrIncompatibleBreedingPair),
		errors.Is(err, game.ErrTooTired),
		errors.Is(err, game.ErrUnknownCategory),
		errors.Is(err, game.ErrRequirementsNotMet),
		errors.Is(err, genetics.ErrUnknownSpecies):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

type errorBody struct {
	Error      string `json:"error"`
	Suggestion string `json:"suggestion,omitempty"`
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.failWith(w, r, err, "")
}

func (s *Server) failWith(w http.ResponseWriter, r *http.Request, err error, suggestion string) {
	code := statusFor(err)
	level := slog.LevelInfo
	msg := err.Error()
	if code == http.StatusInternalServerError {
		level = slog.LevelError
		msg = "internal error"
	}
	s.logger().Log(r.Context(), level, "request failed", "method", r.Method, "path", r.URL.Path, "status", code, "err", err)
	writeJSON(w, code, errorBody{Error: msg, Suggestion: suggestion})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

const maxBody = 1 << 16

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}
