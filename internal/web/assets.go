package web

import (
	"path/filepath"
	"strings"

	"menagerie/internal/pedigree"
)

const assetCacheControl = "public, max-age=3600"

// portraitCandidates validates a breed path segment and returns the files
// that may hold its portrait, one per extension.
func (s *Server) portraitCandidates(breed string, extensions []string) ([]string, bool) {
	if s.PortraitDir == "" {
		return nil, false
	}
	name := pedigree.Slug(breed)
	if name == "" || name == "." || strings.Contains(name, "..") ||
		filepath.IsAbs(name) || strings.ContainsAny(name, `/\`) {
		return nil, false
	}

	baseDir := filepath.Clean(s.PortraitDir)
	resolved := filepath.Join(baseDir, name)
	rel, err := filepath.Rel(baseDir, resolved)
	if err != nil || strings.Contains(rel, "..") {
		return nil, false
	}

	candidates := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		candidates = append(candidates, resolved+ext)
	}
	return candidates, true
}
