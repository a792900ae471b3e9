package web

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// portraitExtensions are tried in order; pedigree certificates only embed PNG.
var portraitExtensions = []string{".png", ".jpg", ".jpeg"}

const (
	contentTypePNG  = "image/png"
	contentTypeJPEG = "image/jpeg"
)

// handlePortrait serves a breed photo from PortraitDir. URL shape:
// /portraits/<breed> where the breed is slugged ("Border Collie" or
// "border_collie" both find border_collie.png).
func (s *Server) handlePortrait(w http.ResponseWriter, r *http.Request) {
	candidates, ok := s.portraitCandidates(r.PathValue("breed"), portraitExtensions)
	if !ok {
		http.NotFound(w, r)
		return
	}

	var file *os.File
	var fileInfo os.FileInfo
	var filePath string
	for _, p := range candidates {
		f, err := os.Open(p) // #nosec G304 -- p is under the validated portrait dir
		if err != nil {
			continue
		}
		info, err := f.Stat()
		if err != nil || info.IsDir() {
			_ = f.Close()
			continue
		}
		file, fileInfo, filePath = f, info, p
		break
	}
	if file == nil {
		http.NotFound(w, r)
		return
	}
	defer file.Close()

	contentType := contentTypePNG
	if ext := strings.ToLower(filepath.Ext(filePath)); ext == ".jpg" || ext == ".jpeg" {
		contentType = contentTypeJPEG
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", assetCacheControl)
	http.ServeContent(w, r, filepath.Base(filePath), fileInfo.ModTime(), file)
}
