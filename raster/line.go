package raster

import (
	"math"

	"github.com/bloeys/nrast/geom"
)

// LinePoints walks the pixels of the line from (x1, y1) to (x2, y2) using Zingl's
// error accumulating Bresenham, which handles all octants without swapping endpoints.
//
// The target pixel itself is not visited, so a line visits exactly max(|dx|, |dy|)
// pixels and a closed polygon visits each vertex once.
func LinePoints(x1, y1, x2, y2 int, visit func(x, y int)) {

	dx := absInt(x2 - x1)
	dy := -absInt(y2 - y1)
	err := dx + dy

	sx := -1
	if x1 < x2 {
		sx = 1
	}

	sy := -1
	if y1 < y2 {
		sy = 1
	}

	x, y := x1, y1
	for x != x2 || y != y2 {

		visit(x, y)

		e2 := 2 * err
		if e2 >= dy {
			x += sx
			err += dy
		}

		if e2 <= dx {
			y += sy
			err += dx
		}
	}
}

// PlotLine draws origin->target into buf. Endpoints are rounded to the nearest pixel.
//
// The segment is clipped to the buffer first, so far away endpoints cost no more than
// on-screen ones. Segments with a NaN or infinite endpoint are skipped.
func PlotLine[P, T geom.Number](buf *Buffer[P], origin, target geom.Vec2[T], color []P) {

	ox, oy := float64(origin.X), float64(origin.Y)
	tx, ty := float64(target.X), float64(target.Y)
	if !isFinite(ox) || !isFinite(oy) || !isFinite(tx) || !isFinite(ty) {
		return
	}

	cox, coy, ctx, cty, ok := clipSegment(ox, oy, tx, ty, 0, 0, float64(buf.Width-1), float64(buf.Height-1))
	if !ok {
		return
	}

	x1, y1 := roundToInt(cox), roundToInt(coy)
	x2, y2 := roundToInt(ctx), roundToInt(cty)

	LinePoints(x1, y1, x2, y2, func(x, y int) {
		buf.SetPixel(x, y, color)
	})

	// A clipped target is not the real end of the line, so its pixel belongs to it
	if ctx != tx || cty != ty {
		buf.SetPixel(x2, y2, color)
	}
}

// clipSegment clips (x1, y1)->(x2, y2) to the closed box [xMin, xMax]x[yMin, yMax] with
// Liang-Barsky. ok is false when no part of the segment is inside the box.
func clipSegment(x1, y1, x2, y2, xMin, yMin, xMax, yMax float64) (cx1, cy1, cx2, cy2 float64, ok bool) {

	if xMax < xMin || yMax < yMin {
		return 0, 0, 0, 0, false
	}

	dx, dy := x2-x1, y2-y1
	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{x1 - xMin, xMax - x1, y1 - yMin, yMax - y1}

	t0, t1 := 0.0, 1.0
	for i := 0; i < 4; i++ {

		// Parallel to this edge
		if p[i] == 0 {
			if q[i] < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}

		r := q[i] / p[i]
		if p[i] < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = min(t1, r)
		}
	}

	cx1, cy1 = x1, y1
	if t0 > 0 {
		cx1, cy1 = x1+t0*dx, y1+t0*dy
	}

	cx2, cy2 = x2, y2
	if t1 < 1 {
		cx2, cy2 = x1+t1*dx, y1+t1*dy
	}

	return cx1, cy1, cx2, cy2, true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func roundToInt[T geom.Number](v T) int {
	return int(math.Round(float64(v)))
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
