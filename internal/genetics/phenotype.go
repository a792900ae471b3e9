package genetics

import "strings"

// Color is an animal's visible coat. Base and Pattern follow from the genome;
// Markings and Overlays are drawn separately from capture-location pools.
type Color struct {
	Base     string   `json:"base"`
	Pattern  string   `json:"pattern"`
	Markings []string `json:"markings,omitempty"`
	Overlays []string `json:"overlays,omitempty"`
}

const (
	BaseBay      = "bay"
	BaseChestnut = "chestnut"
	BaseBlack    = "black"
	BaseGray     = "gray"

	PatternSolid   = "solid"
	PatternTobiano = "tobiano"
	PatternMerle   = "merle"
)

// ResolveColor applies the coat rules in priority order; later rules win:
//
//	extension e/e        -> chestnut
//	agouti a/a           -> black (when not chestnut)
//	cream Ccr present    -> "_cream" suffix
//	dilution d present   -> "_dilute" suffix
//	any gray/graying G   -> gray, replacing every base above
//	tobiano TO present   -> tobiano pattern
//	merle M present      -> merle pattern
//
// Loci absent from a species' genome never match.
func ResolveColor(g Genome) Color {
	c := Color{Base: BaseBay, Pattern: PatternSolid}

	if p, ok := g["extension"]; ok && p.HomozygousFor("e") {
		c.Base = BaseChestnut
	} else if p, ok := g["agouti"]; ok && p.HomozygousFor("a") {
		c.Base = BaseBlack
	}

	if p, ok := g["cream"]; ok && p.Has("Ccr") {
		c.Base += "_cream"
	}
	if p, ok := g["dilution"]; ok && p.Has("d") {
		c.Base += "_dilute"
	}

	for _, locus := range []string{"gray", "graying"} {
		if p, ok := g[locus]; ok && p.Has("G") {
			c.Base = BaseGray
		}
	}

	if p, ok := g["tobiano"]; ok && p.Has("TO") {
		c.Pattern = PatternTobiano
	}
	if p, ok := g["merle"]; ok && p.Has("M") {
		c.Pattern = PatternMerle
	}
	return c
}

// IsChestnutFamily reports whether base is chestnut or a diluted chestnut.
func IsChestnutFamily(base string) bool {
	return strings.HasPrefix(base, BaseChestnut)
}
