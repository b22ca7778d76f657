package annotate

import (
	"fmt"

	"github.com/ironsheep/kanjisabi/internal/morph"
	"github.com/ironsheep/kanjisabi/internal/ocr"
	"github.com/ironsheep/kanjisabi/internal/segment"
)

// Policy decides how a morpheme made only of unanchored characters is placed.
type Policy string

const (
	// Interpolate derives the box from the neighbouring anchored morphemes.
	Interpolate Policy = "interpolate"

	// Sentinel leaves the box unset.
	Sentinel Policy = "sentinel"
)

// ParsePolicy validates a policy name. The empty string is Interpolate.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", Interpolate:
		return Interpolate, nil
	case Sentinel:
		return Sentinel, nil
	}
	return "", fmt.Errorf("unknown unanchored policy: %q", s)
}

// VisualMorpheme is a morpheme placed on the captured image.
type VisualMorpheme struct {
	morph.Morpheme

	// BBox is nil when none of the morpheme's characters carry a box and
	// the policy is Sentinel.
	BBox *ocr.BBox `json:"bbox"`

	// Interpolated is set when BBox was derived rather than measured,
	// including a measured box trimmed to make room for its neighbours.
	Interpolated bool `json:"interpolated,omitempty"`
}

// Align walks morphemes and the per-character box table in lockstep, giving
// each morpheme the envelope of the anchored characters it consumes.
// morphemes must be consistent with chars.
func Align(morphemes []morph.Morpheme, chars segment.CharBoxes, runBox ocr.BBox, policy Policy) []VisualMorpheme {
	out := make([]VisualMorpheme, len(morphemes))
	counts := make([]int, len(morphemes))

	pos := 0
	for i, m := range morphemes {
		n := m.CharCount()
		counts[i] = n
		out[i] = VisualMorpheme{Morpheme: m, BBox: envelope(chars, pos, pos+n)}
		pos += n
	}

	if policy != Sentinel {
		interpolate(out, counts, runBox)
	}
	return out
}

func envelope(chars segment.CharBoxes, from, to int) *ocr.BBox {
	var env *ocr.BBox
	for i := from; i < to && i < len(chars); i++ {
		b := chars[i]
		if b == nil {
			continue
		}
		if env == nil {
			c := *b
			env = &c
			continue
		}
		u := env.Union(*b)
		env = &u
	}
	return env
}

// interpolate fills every maximal group of unplaced morphemes. The group
// shares the horizontal gap between its anchored neighbours in proportion to
// character counts. When the gap is narrower than one pixel per character
// the nearest neighbour (the left one if any) is carved into per-character
// slots shared with the group. Without any neighbour the run box is split.
func interpolate(out []VisualMorpheme, counts []int, runBox ocr.BBox) {
	for i := 0; i < len(out); {
		if out[i].BBox != nil {
			i++
			continue
		}
		j := i
		for j < len(out) && out[j].BBox == nil {
			j++
		}

		group, groupCounts := out[i:j], counts[i:j]
		chars := sum(groupCounts)

		var left, right *VisualMorpheme
		if i > 0 {
			left = &out[i-1]
		}
		if j < len(out) {
			right = &out[j]
		}

		switch {
		case left == nil && right == nil:
			spread(group, groupCounts, runBox)

		default:
			x0, x1 := runBox.X, runBox.Right()
			ref := runBox
			if right != nil {
				x1 = right.BBox.X
				ref = *right.BBox
			}
			if left != nil {
				x0 = left.BBox.Right()
				ref = *left.BBox
			}

			if x1-x0 >= max(chars, 1) {
				spread(group, groupCounts, ocr.BBox{X: x0, Y: ref.Y, W: x1 - x0, H: ref.H})
			} else if left != nil {
				carve(left, counts[i-1], group, groupCounts, true)
			} else {
				carve(right, counts[j], group, groupCounts, false)
			}
		}

		i = j
	}
}

// spread divides region horizontally among group by character count.
func spread(group []VisualMorpheme, counts []int, region ocr.BBox) {
	total := sum(counts)
	if total == 0 {
		total = 1
	}

	done := 0
	for k := range group {
		x0 := region.X + region.W*done/total
		done += counts[k]
		x1 := region.X + region.W*done/total
		group[k].BBox = &ocr.BBox{X: x0, Y: region.Y, W: x1 - x0, H: region.H}
		group[k].Interpolated = true
	}
}

// carve splits the donor's box into equal per-character slots; the donor
// keeps the slots of its own characters and the group takes the rest, after
// the donor when donorFirst is set and before it otherwise. The trimmed
// donor is marked interpolated too.
func carve(donor *VisualMorpheme, donorChars int, group []VisualMorpheme, counts []int, donorFirst bool) {
	box := *donor.BBox
	slots := donorChars + sum(counts)
	if slots == 0 {
		return
	}
	slot := func(k int) int { return box.X + box.W*k/slots }
	place := func(from, n int) *ocr.BBox {
		return &ocr.BBox{X: slot(from), Y: box.Y, W: slot(from+n) - slot(from), H: box.H}
	}

	donor.Interpolated = true

	next := 0
	if donorFirst {
		donor.BBox = place(0, donorChars)
		next = donorChars
	}
	for k := range group {
		group[k].BBox = place(next, counts[k])
		group[k].Interpolated = true
		next += counts[k]
	}
	if !donorFirst {
		donor.BBox = place(next, donorChars)
	}
}

func sum(counts []int) int {
	n := 0
	for _, c := range counts {
		n += c
	}
	return n
}
