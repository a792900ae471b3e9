package web

import (
	"fmt"
	"net/http"

	"menagerie/internal/game"
	"menagerie/internal/report"
)

// GET /api/events
func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	evs, err := s.Events.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if evs == nil {
		evs = []*game.Event{}
	}
	writeJSON(w, http.StatusOK, evs)
}

// GET /api/events/{id}
func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ev, err := s.event(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

// POST /api/events
func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var ev game.Event
	if err := decode(w, r, &ev); err != nil {
		s.fail(w, r, err)
		return
	}
	ev.ID, ev.Status, ev.Participants, ev.Results = "", "", nil, nil
	if err := s.Engine.Tables.ValidateEvent(&ev); err != nil {
		s.fail(w, r, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ev.ID = s.Events.NewID()
	if err := s.Events.Put(r.Context(), ev.ID, &ev); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, &ev)
}

// POST /api/events/{id}/open
func (s *Server) handleOpenEvent(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, (*game.Event).OpenRegistration)
}

// POST /api/events/{id}/close
func (s *Server) handleCloseEvent(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, (*game.Event).CloseRegistration)
}

func (s *Server) transition(w http.ResponseWriter, r *http.Request, step func(*game.Event) error) {
	ctx := r.Context()
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, err := s.event(ctx, r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := step(ev); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.Events.Put(ctx, ev.ID, ev); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

type registerRequest struct {
	Animal string `json:"animal"`
}

// POST /api/events/{id}/register
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	owner := s.owner(w, r)
	var req registerRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	ctx := r.Context()
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, err := s.event(ctx, r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	a, err := s.ownedAnimal(ctx, owner, req.Animal)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	wal, err := s.wallet(ctx, owner)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.Engine.Register(ev, wal, a); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.Wallets.Put(ctx, owner, wal); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.Events.Put(ctx, ev.ID, ev); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

type runResponse struct {
	Event  *game.Event  `json:"event"`
	Awards []game.Award `json:"awards"`
}

// POST /api/events/{id}/run scores the event and pays the prizes.
func (s *Server) handleRunEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, err := s.event(ctx, r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	animals := make(map[string]*game.Animal, len(ev.Participants))
	for _, p := range ev.Participants {
		a, err := s.animal(ctx, p.Animal)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		animals[a.ID] = a
	}
	awards, err := s.Engine.RunEvent(ev, animals)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	for _, aw := range awards {
		wal, err := s.wallet(ctx, aw.Owner)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		wal.Credit(aw.Prize)
		if err := s.Wallets.Put(ctx, aw.Owner, wal); err != nil {
			s.fail(w, r, err)
			return
		}
		if err := s.saveAnimal(ctx, animals[aw.Animal]); err != nil {
			s.fail(w, r, err)
			return
		}
	}
	if err := s.Events.Put(ctx, ev.ID, ev); err != nil {
		s.fail(w, r, err)
		return
	}
	if awards == nil {
		awards = []game.Award{}
	}
	writeJSON(w, http.StatusOK, runResponse{Event: ev, Awards: awards})
}

// GET /api/events/{id}/results.csv
func (s *Server) handleResultsCSV(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ev, err := s.event(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if ev.Status != game.StatusCompleted {
		s.fail(w, r, fmt.Errorf("%w: event is %s", game.ErrEventNotReady, ev.Status))
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "results-"+ev.ID+".csv"))
	if err := report.WriteResultsCSV(w, ev); err != nil {
		s.logger().Error("writing results", "event", ev.ID, "err", err)
	}
}
