package imaging

import "math"

// Direction is the tie-break axis used when two candidate matches score
// within EPS of each other.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// meet reports whether to strictly moves in the requested direction from
// from. Equal centers never meet.
func (d Direction) meet(from, to [2]int) bool {
	switch d {
	case Up:
		return to[1] < from[1]
	case Down:
		return to[1] > from[1]
	case Left:
		return to[0] < from[0]
	case Right:
		return to[0] > from[0]
	}
	return false
}

const (
	matchThreshold = 0.99
	matchEpsilon   = 0.005
)

// Finder is a one-shot search object bound to a single screenshot. It
// builds its derived buffers (compressed luma, packed layout, summed-square
// table) fresh on every Find call; nothing is cached across calls or
// across Finder instances.
type Finder struct {
	screenshot *Screenshot
}

// NewFinder binds a Finder to screenshot for its lifetime.
func NewFinder(screenshot *Screenshot) *Finder {
	return &Finder{screenshot: screenshot}
}

// Find searches for pattern in the bound screenshot and returns the center
// of the best match, in original (uncompressed) screen coordinates, or
// false if no candidate meets the match threshold.
func (f *Finder) Find(pattern *Pattern, dir Direction) (x, y int, ok bool) {
	factor := pattern.Factor()
	compressed := FromScreenshot(f.screenshot).Compress(factor)
	packed := newRedundantPacked(compressed)
	matrix := newLumaMatrix(compressed)

	pw, ph := pattern.Width(), pattern.Height()
	cw, ch := compressed.Width(), compressed.Height()

	if pw > cw || ph > ch {
		return 0, 0, false
	}

	var (
		bestScore  float32
		bestCenter [2]int
		found      bool
	)

	for wy := 0; wy <= ch-ph; wy++ {
		for wx := 0; wx <= cw-pw; wx++ {
			var num uint32
			for dy := 0; dy < ph; dy++ {
				for dx := 0; dx < pw; dx += lanes {
					num += dotLane(packed.at(wx+dx, wy+dy), pattern.packed.at(dx, dy))
				}
			}

			den := float32(math.Sqrt(float64(matrix.rectSumSq(wx, wy, wx+pw, wy+ph)) * float64(pattern.SquareSum())))
			if den == 0 {
				continue
			}
			score := float32(num) / den
			if score < matchThreshold {
				continue
			}

			center := [2]int{
				(wx + pw/2) * factor,
				(wy + ph/2) * factor,
			}

			switch {
			case !found:
				found, bestScore, bestCenter = true, score, center
			case score-bestScore > matchEpsilon:
				bestScore, bestCenter = score, center
			case bestScore-score <= matchEpsilon && dir.meet(bestCenter, center):
				bestScore, bestCenter = score, center
			}
		}
	}

	if !found {
		return 0, 0, false
	}
	return bestCenter[0], bestCenter[1], true
}
