package overlay

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ParseColor parses a CSS-style colour: "#rgb", "#rrggbb",
// "rgb(r,g,b)", "rgba(r,g,b,a)" with a in [0,1], "transparent" or an
// SVG colour name.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "transparent":
		return color.NRGBA{}, nil
	case strings.HasPrefix(s, "#"):
		c, err := colorful.Hex(s)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("overlay: bad hex colour %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
	case strings.HasPrefix(s, "rgba(") || strings.HasPrefix(s, "rgb("):
		return parseFunctional(s)
	}
	if c, ok := colornames.Map[s]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	return color.NRGBA{}, fmt.Errorf("overlay: unknown colour %q", s)
}

// MustParseColor is like ParseColor but panics on error. It is meant
// for package-level defaults.
func MustParseColor(s string) color.NRGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseFunctional(s string) (color.NRGBA, error) {
	lo, hi := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if lo < 0 || hi < lo {
		return color.NRGBA{}, fmt.Errorf("overlay: malformed colour %q", s)
	}
	fields := strings.Split(s[lo+1:hi], ",")
	alpha := strings.HasPrefix(s, "rgba(")
	if (alpha && len(fields) != 4) || (!alpha && len(fields) != 3) {
		return color.NRGBA{}, fmt.Errorf("overlay: wrong component count in %q", s)
	}

	var v [4]float64
	v[3] = 1
	for i, f := range fields {
		x, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("overlay: bad component in %q: %w", s, err)
		}
		v[i] = x
	}
	return color.NRGBA{
		R: clamp8(v[0]),
		G: clamp8(v[1]),
		B: clamp8(v[2]),
		A: clamp8(v[3] * 255),
	}, nil
}

func clamp8(x float64) uint8 {
	switch {
	case x <= 0:
		return 0
	case x >= 255:
		return 255
	}
	return uint8(x + 0.5)
}
