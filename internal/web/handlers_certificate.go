package web

import (
	"fmt"
	"net/http"

	"menagerie/internal/pedigree"
)

// GET /api/animals/{id}/certificate
func (s *Server) handleCertificate(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ctx := r.Context()
	a, err := s.animal(ctx, r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	rules, err := s.Engine.Tables.Rules(a.Species)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	// Two generations back; missing records print as unregistered.
	anc := pedigree.Ancestors{}
	for _, id := range []string{a.Breeding.Sire, a.Breeding.Dam} {
		if id == "" {
			continue
		}
		p, ok, err := s.Animals.Get(ctx, id)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		if !ok {
			continue
		}
		anc[id] = p
		for _, gid := range []string{p.Breeding.Sire, p.Breeding.Dam} {
			if gid == "" {
				continue
			}
			if g, ok, _ := s.Animals.Get(ctx, gid); ok {
				anc[gid] = g
			}
		}
	}

	pdf, err := pedigree.Generate(a, rules, anc, pedigree.Options{PortraitDir: s.PortraitDir})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", pedigree.Slug(a.Name)+"-certificate.pdf"))
	if _, err := w.Write(pdf); err != nil {
		s.logger().Error("writing certificate", "animal", a.ID, "err", err)
	}
}
