// Package palette assigns display colors to job ids.
//
// Colors are random by default so every render gets a fresh set. Passing a
// seed makes the assignment reproducible, which tests and the -seed flag
// rely on.
package palette

import (
	"image/color"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

// Channel bounds keep every color light enough for black labels.
const (
	MinChannel = 150
	MaxChannel = 255
)

// Palette produces n colors, one per job id 1..n.
type Palette interface {
	Colors(n int) []color.RGBA
}

// Random draws each channel independently from [MinChannel, MaxChannel].
// A nil Seed gives a different palette on every call.
type Random struct {
	Seed *uint64
}

// NewRandom returns an unseeded Random palette.
func NewRandom() Random {
	return Random{}
}

// Seeded returns a Random palette that always yields the same colors.
func Seeded(seed uint64) Random {
	return Random{Seed: &seed}
}

func (r Random) Colors(n int) []color.RGBA {
	if n <= 0 {
		return nil
	}
	var rng *rand.Rand
	if r.Seed != nil {
		rng = rand.New(rand.NewPCG(*r.Seed, *r.Seed^0x9e3779b97f4a7c15))
	} else {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	span := MaxChannel - MinChannel + 1
	colors := make([]color.RGBA, n)
	for i := range colors {
		colors[i] = color.RGBA{
			R: uint8(MinChannel + rng.IntN(span)),
			G: uint8(MinChannel + rng.IntN(span)),
			B: uint8(MinChannel + rng.IntN(span)),
			A: 0xff,
		}
	}
	return colors
}

// Fixed cycles through a predefined list. Useful for golden output.
type Fixed []color.RGBA

func (f Fixed) Colors(n int) []color.RGBA {
	if n <= 0 || len(f) == 0 {
		return nil
	}
	colors := make([]color.RGBA, n)
	for i := range colors {
		colors[i] = f[i%len(f)]
	}
	return colors
}

// Map is the per-render job color table.
type Map struct {
	colors []color.RGBA
}

// Assign builds a Map with exactly jobs entries from p.
func Assign(p Palette, jobs int) Map {
	return Map{colors: p.Colors(jobs)}
}

// Len returns the number of job colors allocated.
func (m Map) Len() int {
	return len(m.colors)
}

// Color returns the color for a 1-based job id. ok is false when the job
// lies outside the allocated range.
func (m Map) Color(job int) (c color.RGBA, ok bool) {
	if job < 1 || job > len(m.colors) {
		return color.RGBA{}, false
	}
	return m.colors[job-1], true
}

// Hex returns the color for job formatted as #rrggbb, or "" when out of
// range.
func (m Map) Hex(job int) string {
	c, ok := m.Color(job)
	if !ok {
		return ""
	}
	return Hex(c)
}

// Hex formats c as #rrggbb.
func Hex(c color.RGBA) string {
	cf, _ := colorful.MakeColor(c)
	return cf.Hex()
}
