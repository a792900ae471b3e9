package web

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// handleBiome serves the backdrop for a capture biome:
// <StaticDir>/biomes/{id}.png if present, otherwise a generated blocky
// landscape. Only biomes in the loaded tables are served.
func (s *Server) handleBiome(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSuffix(r.PathValue("file"), ".png")
	if id == "" || s.Engine == nil || s.Engine.Tables == nil || s.Engine.Tables.Biomes[id] == nil {
		http.NotFound(w, r)
		return
	}

	// Prefer a dropped-in file; the path is checked against traversal.
	if s.StaticDir != "" {
		baseDir := filepath.Join(s.StaticDir, "biomes")
		staticPath := filepath.Clean(filepath.Join(baseDir, id+".png"))
		rel, err := filepath.Rel(baseDir, staticPath)
		if err == nil && !strings.Contains(rel, "..") {
			if b, err := os.ReadFile(staticPath); err == nil { // #nosec G304 -- checked above
				w.Header().Set("Content-Type", contentTypePNG)
				w.Header().Set("Cache-Control", assetCacheControl)
				_, _ = w.Write(b)
				return
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, generateBiomeImage(id)); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypePNG)
	w.Header().Set("Cache-Control", "public, max-age=300")
	_, _ = w.Write(buf.Bytes())
}

var (
	pixelNight  = color.RGBA{0x18, 0x14, 0x28, 255}
	pixelSky    = color.RGBA{0x6a, 0x8c, 0xc4, 255}
	pixelDusk   = color.RGBA{0x45, 0x2c, 0x5c, 255}
	pixelWater  = color.RGBA{0x2d, 0x3a, 0x5c, 255}
	pixelSand   = color.RGBA{0xd8, 0xb8, 0x78, 255}
	pixelDune   = color.RGBA{0xb8, 0x8c, 0x50, 255}
	pixelStone  = color.RGBA{0x55, 0x55, 0x66, 255}
	pixelGreen  = color.RGBA{0x2d, 0x5a, 0x3d, 255}
	pixelGrass  = color.RGBA{0x6b, 0x8c, 0x5a, 255}
	pixelSnow   = color.RGBA{0xee, 0xf2, 0xf8, 255}
	pixelIce    = color.RGBA{0xb8, 0xcc, 0xe0, 255}
	pixelLava   = color.RGBA{0xe0, 0x58, 0x20, 255}
	pixelSunset = color.RGBA{0xc4, 0x6c, 0x32, 255}
)

const blockPx = 8
const imgW, imgH = 256, 192
const blocksW, blocksH = imgW / blockPx, imgH / blockPx

// fillBlock fills one 8x8 block at block coords (bx, by) with clr.
func fillBlock(img *image.RGBA, bx, by int, clr color.RGBA) {
	if bx < 0 || by < 0 || bx >= blocksW || by >= blocksH {
		return
	}
	for dy := 0; dy < blockPx; dy++ {
		for dx := 0; dx < blockPx; dx++ {
			img.SetRGBA(bx*blockPx+dx, by*blockPx+dy, clr)
		}
	}
}

// fillRows paints whole block rows [from, to).
func fillRows(img *image.RGBA, from, to int, clr color.RGBA) {
	for by := from; by < to; by++ {
		for bx := 0; bx < blocksW; bx++ {
			fillBlock(img, bx, by, clr)
		}
	}
}

// generateBiomeImage draws a 256x192 landscape in 8x8 blocks.
func generateBiomeImage(id string) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, imgW, imgH))
	fillRows(img, 0, blocksH, pixelNight)

	switch id {
	case "plains":
		fillRows(img, 0, blocksH/2, pixelSky)
		fillRows(img, blocksH/2, blocksH, pixelGrass)
		// Scattered shrubs.
		for _, bx := range []int{3, 8, 15, 21, 27} {
			fillBlock(img, bx, blocksH/2+2+bx%3, pixelGreen)
		}
	case "beach":
		fillRows(img, 0, blocksH/3, pixelSky)
		fillRows(img, blocksH/3, blocksH-6, pixelWater)
		fillRows(img, blocksH-6, blocksH, pixelSand)
	case "hilltops":
		fillRows(img, 0, blocksH/4, pixelSky)
		for band := 0; band < 4; band++ {
			by := blocksH - 2 - band*4
			if by < blocksH/4 {
				break
			}
			fillRows(img, by, by+2, pixelGreen)
		}
	case "desert":
		fillRows(img, 0, blocksH/2, pixelSunset)
		fillRows(img, blocksH/2, blocksH, pixelSand)
		// Dunes: shallow triangles.
		for _, cx := range []int{6, 18, 28} {
			for h := 0; h < 4; h++ {
				for dx := -h; dx <= h; dx++ {
					fillBlock(img, cx+dx, blocksH/2+h, pixelDune)
				}
			}
		}
	case "snowfield":
		fillRows(img, 0, blocksH/3, pixelIce)
		fillRows(img, blocksH/3, blocksH, pixelSnow)
		for _, bx := range []int{4, 12, 20, 26} {
			for by := blocksH/3 - 3; by < blocksH/3; by++ {
				fillBlock(img, bx, by, pixelStone)
			}
		}
	case "volcanic_ridge":
		fillRows(img, 0, blocksH/3, pixelDusk)
		// Cone with a lava channel down the middle.
		peak := blocksH / 4
		for by := peak; by < blocksH; by++ {
			half := by - peak
			for dx := -half; dx <= half; dx++ {
				fillBlock(img, blocksW/2+dx, by, pixelStone)
			}
			fillBlock(img, blocksW/2, by, pixelLava)
		}
	default:
		fillRows(img, 0, blocksH/2, pixelDusk)
		fillRows(img, blocksH/2, blocksH, pixelGreen)
	}
	return img
}
