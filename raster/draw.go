package raster

import (
	"github.com/bloeys/nrast/geom"
)

// DrawPolygon draws the closed outline through verts in order
func DrawPolygon[P, T geom.Number](buf *Buffer[P], verts []geom.Vec2[T], color []P) {

	if len(verts) < 2 {
		return
	}

	for i := 0; i < len(verts)-1; i++ {
		PlotLine(buf, verts[i], verts[i+1], color)
	}
	PlotLine(buf, verts[len(verts)-1], verts[0], color)
}

func DrawRect[P, T geom.Number](buf *Buffer[P], r geom.Rectangle[T], color []P) {
	DrawPolygon(buf, r.Vertex[:], color)
}

func DrawTriangle[P, T geom.Number](buf *Buffer[P], t geom.Triangle[T], color []P) {
	DrawPolygon(buf, t.Vertex[:], color)
}

// DrawTetrahedron draws the xy projection of all four faces
func DrawTetrahedron[P, T geom.Number](buf *Buffer[P], t geom.Tetrahedron[T], color []P) {
	for _, f := range t.Faces() {
		DrawTriangle(buf, f, color)
	}
}

// DrawCircle draws the outline with the midpoint algorithm, plotting all 8 octants per step
func DrawCircle[P, T geom.Number](buf *Buffer[P], c geom.Circle[T], color []P) {

	cx, cy := roundToInt(c.Center.X), roundToInt(c.Center.Y)
	r := roundToInt(c.Radius)
	if r < 0 {
		return
	}

	x, y, err := r, 0, 0
	for x >= y {

		buf.SetPixel(cx+x, cy+y, color)
		buf.SetPixel(cx+y, cy+x, color)
		buf.SetPixel(cx-y, cy+x, color)
		buf.SetPixel(cx-x, cy+y, color)
		buf.SetPixel(cx-x, cy-y, color)
		buf.SetPixel(cx-y, cy-x, color)
		buf.SetPixel(cx+y, cy-x, color)
		buf.SetPixel(cx+x, cy-y, color)

		y++
		err += 1 + 2*y
		if 2*(err-x)+1 > 0 {
			x--
			err += 1 - 2*x
		}
	}
}

// DrawSolid draws the wireframe of s projected onto the xy plane. Every face is drawn
// as a closed outline through its vertices. Faces with fewer than 3 indices, or that
// reference a missing vertex, are skipped.
func DrawSolid[P, T geom.Number](buf *Buffer[P], s *geom.Solid[T], color []P) {

	var verts []geom.Vec2[T]
	for _, f := range s.Faces {

		if len(f.Indices) < 3 {
			continue
		}

		verts = verts[:0]
		for _, index := range f.Indices {

			v, ok := s.Vertex(index)
			if !ok {
				verts = verts[:0]
				break
			}

			verts = append(verts, v.XY())
		}

		if len(verts) == 0 {
			continue
		}

		DrawPolygon(buf, verts, color)
	}
}
