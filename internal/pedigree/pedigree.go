// Package pedigree renders a printable registration certificate (PDF) for an
// animal: identity, coat, stats, genotype, health and a two generation
// family tree, on a parchment page with a registry seal.
package pedigree

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"menagerie/internal/game"
	"menagerie/internal/genetics"
)

const (
	pageW     = 595
	pageH     = 842
	margin    = 40
	fontSize  = 9
	titleSize = 20
	labelSize = 7
	barWidth  = 150.0
	boxW      = 120.0
	boxH      = 30.0
)

// Ancestors resolves a parent ID to its record. Missing IDs are shown as
// unregistered.
type Ancestors map[string]*game.Animal

// Options tunes the certificate.
type Options struct {
	Registry string
	Issued   time.Time
	// PortraitDir holds optional <breed_slug>.png photos.
	PortraitDir string
}

// Casers are stateful, so each call gets its own.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

func printf(format string, args ...any) string {
	return message.NewPrinter(language.English).Sprintf(format, args...)
}

// Generate returns the PDF bytes of a. Attributes are listed in the
// species' order from rules.
func Generate(a *game.Animal, rules *game.SpeciesRules, anc Ancestors, opts Options) ([]byte, error) {
	if a == nil || rules == nil {
		return nil, errors.New("pedigree: animal and rules are required")
	}
	if opts.Registry == "" {
		opts.Registry = "Menagerie Breed Registry"
	}
	if opts.Issued.IsZero() {
		opts.Issued = time.Now()
	}

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	// Parchment background
	pdf.SetFillColor(245, 235, 210)
	pdf.Rect(0, 0, pageW, pageH, "F")
	drawWavyBorder(pdf)

	pdf.SetDrawColor(80, 50, 30)
	pdf.SetTextColor(80, 50, 30)

	pdf.SetFont("Times", "B", titleSize)
	pdf.SetXY(margin, margin+16)
	pdf.CellFormat(pageW-2*margin, 24, "Certificate of Registration", "", 0, "C", false, 0, "")
	pdf.SetFont("Times", "I", fontSize+2)
	pdf.SetXY(margin, margin+42)
	pdf.CellFormat(pageW-2*margin, 12, opts.Registry, "", 0, "C", false, 0, "")

	drawSeal(pdf, pageW-margin-50, margin+70, a.Rarity)

	y := float64(margin + 80)
	y = drawIdentity(pdf, a, y)
	if img := portraitPath(opts.PortraitDir, a.Breed); img != "" {
		pdf.ImageOptions(img, pageW-margin-130, y-120, 90, 0, false, gofpdf.ImageOptions{ReadDpi: true}, 0, "")
	}
	y = drawStats(pdf, a, rules, y+10)
	y = drawFamily(pdf, a, anc, y+10)
	y = drawGenome(pdf, a, y+10)
	drawHealth(pdf, a, y+8)

	pdf.SetFont("Times", "I", labelSize+1)
	pdf.SetXY(margin, pageH-margin-24)
	pdf.CellFormat(pageW-2*margin, 10, "Issued "+opts.Issued.Format("2 January 2006"), "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render certificate: %w", err)
	}
	return buf.Bytes(), nil
}

func heading(pdf *gofpdf.Fpdf, y float64, text string) float64 {
	pdf.SetFont("Times", "B", fontSize+3)
	pdf.SetXY(margin+20, y)
	pdf.CellFormat(200, 14, text, "", 0, "L", false, 0, "")
	pdf.SetDrawColor(80, 50, 30)
	pdf.Line(margin+20, y+15, pageW-margin-20, y+15)
	return y + 20
}

func row(pdf *gofpdf.Fpdf, x, y float64, label, value string) {
	pdf.SetFont("Helvetica", "B", fontSize)
	pdf.SetXY(x, y)
	pdf.CellFormat(70, 12, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", fontSize)
	pdf.CellFormat(170, 12, value, "", 0, "L", false, 0, "")
}

func drawIdentity(pdf *gofpdf.Fpdf, a *game.Animal, y float64) float64 {
	y = heading(pdf, y, a.Name)
	x := float64(margin + 24)
	rows := [][2]string{
		{"Breed", a.Breed},
		{"Species", titleCase(string(a.Species))},
		{"Gender", titleCase(string(a.Gender))},
		{"Age", Age(a.AgeMonths)},
		{"Height", Height(a)},
		{"Colour", Coat(a)},
		{"Rarity", titleCase(string(a.Rarity))},
		{"Value", printf("%d coins", a.Value)},
	}
	if a.Wild != nil {
		rows = append(rows, [2]string{"Origin", "Wild caught, " + strings.ReplaceAll(a.Wild.Origin, "_", " ")})
		if a.Wild.SpecialTitle != "" {
			rows = append(rows, [2]string{"Title", a.Wild.SpecialTitle})
		}
	}
	for _, r := range rows {
		row(pdf, x, y, r[0], r[1])
		y += 13
	}
	return y
}

func drawStats(pdf *gofpdf.Fpdf, a *game.Animal, rules *game.SpeciesRules, y float64) float64 {
	y = heading(pdf, y, "Performance")
	for i, attr := range rules.Attributes {
		col, line := i%2, i/2
		x := float64(margin+24) + float64(col)*250
		yy := y + float64(line)*14
		v := a.Stats[attr]
		pdf.SetFont("Helvetica", "", labelSize+1)
		pdf.SetXY(x, yy)
		pdf.CellFormat(60, 10, titleCase(string(attr)), "", 0, "L", false, 0, "")
		pdf.SetDrawColor(80, 50, 30)
		pdf.Rect(x+62, yy+2, barWidth, 7, "D")
		pdf.SetFillColor(140, 90, 50)
		if w := barWidth * float64(v) / 100; w > 0 {
			pdf.Rect(x+62, yy+2, w, 7, "F")
		}
		pdf.SetXY(x+62+barWidth+4, yy)
		pdf.CellFormat(20, 10, fmt.Sprint(v), "", 0, "L", false, 0, "")
	}
	return y + float64((len(rules.Attributes)+1)/2)*14
}

// drawFamily draws parents and grandparents as boxes joined by elbow lines.
func drawFamily(pdf *gofpdf.Fpdf, a *game.Animal, anc Ancestors, y float64) float64 {
	y = heading(pdf, y, "Pedigree")
	x0 := float64(margin + 24)
	subject := box{x: x0, y: y + 3*boxH/2 + 6, label: a.Name, sub: a.Breed}
	sire := parentBox(anc, a.Breeding.Sire, "Sire", x0+boxW+30, y)
	dam := parentBox(anc, a.Breeding.Dam, "Dam", x0+boxW+30, y+2*boxH+24)

	var grand []box
	for i, p := range []box{sire, dam} {
		var s, d string
		if p.animal != nil {
			s, d = p.animal.Breeding.Sire, p.animal.Breeding.Dam
		}
		gy := y + float64(i)*(2*boxH+24)
		grand = append(grand,
			parentBox(anc, s, "Grandsire", x0+2*(boxW+30), gy-8),
			parentBox(anc, d, "Granddam", x0+2*(boxW+30), gy+boxH+2),
		)
	}

	pdf.SetDrawColor(80, 50, 30)
	pdf.SetLineWidth(1)
	connect(pdf, subject, sire)
	connect(pdf, subject, dam)
	connect(pdf, sire, grand[0])
	connect(pdf, sire, grand[1])
	connect(pdf, dam, grand[2])
	connect(pdf, dam, grand[3])

	for _, b := range append([]box{subject, sire, dam}, grand...) {
		b.draw(pdf)
	}
	return y + 4*boxH + 30
}

type box struct {
	x, y       float64
	label, sub string
	animal     *game.Animal
}

func parentBox(anc Ancestors, id, role string, x, y float64) box {
	b := box{x: x, y: y, label: "Unregistered", sub: role}
	if id == "" {
		return b
	}
	if p, ok := anc[id]; ok && p != nil {
		b.label, b.sub, b.animal = p.Name, role+", "+p.Breed, p
	}
	return b
}

func (b box) draw(pdf *gofpdf.Fpdf) {
	pdf.SetFillColor(250, 243, 225)
	pdf.Rect(b.x, b.y, boxW, boxH, "FD")
	pdf.SetFont("Helvetica", "B", labelSize+1)
	pdf.SetXY(b.x+4, b.y+4)
	pdf.CellFormat(boxW-8, 10, truncate(b.label, 24), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "I", labelSize)
	pdf.SetXY(b.x+4, b.y+16)
	pdf.CellFormat(boxW-8, 9, truncate(b.sub, 30), "", 0, "L", false, 0, "")
}

func connect(pdf *gofpdf.Fpdf, from, to box) {
	x1, y1 := from.x+boxW, from.y+boxH/2
	x2, y2 := to.x, to.y+boxH/2
	mid := (x1 + x2) / 2
	pdf.Line(x1, y1, mid, y1)
	pdf.Line(mid, y1, mid, y2)
	pdf.Line(mid, y2, x2, y2)
}

func drawGenome(pdf *gofpdf.Fpdf, a *game.Animal, y float64) float64 {
	y = heading(pdf, y, "Genotype")
	names := a.Genome.Names()
	const cols = 3
	pdf.SetFont("Courier", "", labelSize+1)
	for i, name := range names {
		x := float64(margin+24) + float64(i%cols)*170
		yy := y + float64(i/cols)*11
		pdf.SetXY(x, yy)
		pdf.CellFormat(165, 10, fmt.Sprintf("%-22s %s", name, a.Genome[name]), "", 0, "L", false, 0, "")
	}
	return y + float64((len(names)+cols-1)/cols)*11
}

func drawHealth(pdf *gofpdf.Fpdf, a *game.Animal, y float64) {
	y = heading(pdf, y, "Health Screening")
	defects, err := a.Defects()
	if err != nil {
		defects = []string{"genotype incomplete"}
	}
	carriers, _ := a.Carriers()
	row(pdf, margin+24, y, "Affected", list(defects, "none"))
	row(pdf, margin+24, y+13, "Carrier", list(carriers, "none"))
}

// drawSeal draws an eight pointed registry rosette tinted by rarity.
func drawSeal(pdf *gofpdf.Fpdf, cx, cy float64, r game.Rarity) {
	const rad = 26.0
	red, green, blue := sealColor(r)
	pdf.SetDrawColor(red, green, blue)
	pdf.SetLineWidth(1.5)
	pdf.Circle(cx, cy, rad, "D")
	pdf.Circle(cx, cy, rad-6, "D")
	for i := 0; i < 8; i++ {
		angle := float64(i)*45.0*math.Pi/180 - math.Pi/2
		pdf.Line(cx+(rad-6)*math.Cos(angle), cy+(rad-6)*math.Sin(angle),
			cx+(rad+8)*math.Cos(angle), cy+(rad+8)*math.Sin(angle))
	}
	pdf.SetLineWidth(1)
	pdf.SetFont("Helvetica", "B", 6)
	pdf.SetTextColor(red, green, blue)
	pdf.SetXY(cx-rad+6, cy-4)
	pdf.CellFormat(2*rad-12, 8, strings.ToUpper(string(r)), "", 0, "C", false, 0, "")
	pdf.SetTextColor(80, 50, 30)
	pdf.SetDrawColor(80, 50, 30)
}

func sealColor(r game.Rarity) (int, int, int) {
	switch r {
	case game.Legendary:
		return 200, 150, 20
	case game.Epic:
		return 120, 40, 150
	case game.Rare:
		return 30, 80, 170
	case game.Uncommon:
		return 40, 120, 60
	default:
		return 120, 80, 50
	}
}

// drawWavyBorder draws an organic double border around the certificate.
func drawWavyBorder(pdf *gofpdf.Fpdf) {
	pdf.SetDrawColor(80, 50, 30)
	pdf.SetLineWidth(2)
	pdf.Polygon(wavyRectPoints(margin, margin, pageW-2*margin, pageH-2*margin, 24, 3), "D")
	pdf.SetLineWidth(0.5)
	pdf.Rect(margin+10, margin+10, pageW-2*margin-20, pageH-2*margin-20, "D")
	pdf.SetLineWidth(1)
}

// wavyRectPoints returns polygon points for a rectangle with sinusoidal wobble on each side.
func wavyRectPoints(x, y, w, h float64, steps int, amp float64) []gofpdf.PointType {
	pts := make([]gofpdf.PointType, 0, steps*4+1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		pts = append(pts, gofpdf.PointType{X: x + t*w, Y: y + amp*math.Sin(float64(i)*1.3)})
	}
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		pts = append(pts, gofpdf.PointType{X: x + w + amp*math.Sin(float64(i)*1.1), Y: y + t*h})
	}
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		pts = append(pts, gofpdf.PointType{X: x + w - t*w, Y: y + h + amp*math.Sin(float64(i)*1.7)})
	}
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		pts = append(pts, gofpdf.PointType{X: x + amp*math.Sin(float64(i)*0.9), Y: y + h - t*h})
	}
	return pts
}

func portraitPath(dir, breed string) string {
	if dir == "" || breed == "" {
		return ""
	}
	p := filepath.Join(dir, Slug(breed)+".png")
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	return p
}

// Slug turns a breed name into a file name stem, e.g. "Border Collie" to
// "border_collie".
func Slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
}

// Age formats months as "3 years 2 months".
func Age(months int) string {
	y, m := months/12, months%12
	plural := func(n int, unit string) string {
		if n == 1 {
			return "1 " + unit
		}
		return fmt.Sprintf("%d %ss", n, unit)
	}
	switch {
	case y == 0:
		return plural(m, "month")
	case m == 0:
		return plural(y, "year")
	default:
		return plural(y, "year") + " " + plural(m, "month")
	}
}

// Height formats hands for horses and inches for dogs.
func Height(a *game.Animal) string {
	if a.Species == genetics.Horse {
		return printf("%.1f hh", a.Height)
	}
	s := printf("%.1f in", a.Height)
	if a.Weight > 0 {
		s += printf(", %.1f lb", a.Weight)
	}
	return s
}

// Coat describes the colour, pattern, markings and overlays.
func Coat(a *game.Animal) string {
	c := a.Color
	parts := []string{strings.ReplaceAll(c.Base, "_", " ")}
	if c.Pattern != "" && c.Pattern != "solid" {
		parts = append(parts, c.Pattern)
	}
	for _, m := range append(append([]string(nil), c.Markings...), c.Overlays...) {
		parts = append(parts, strings.ReplaceAll(m, "_", " "))
	}
	return titleCase(strings.Join(parts, ", "))
}

func list(xs []string, empty string) string {
	if len(xs) == 0 {
		return empty
	}
	out := make([]string, len(xs))
	for i, x := range xs {
		out[i] = strings.ReplaceAll(x, "_", " ")
	}
	return strings.Join(out, ", ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
