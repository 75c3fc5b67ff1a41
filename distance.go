package meshpaint

import "cogentcore.org/core/math32"

// degenerateEps bounds the parametric denominator below which a triangle is
// treated as a zero-area sliver.
const degenerateEps = 1e-12

// closestPointOnTriangle returns the point on triangle abc closest to p.
// ok is false when the triangle is a near-zero-area sliver, in which case
// the caller must fall back to per-vertex distances.
func closestPointOnTriangle(p, a, b, c math32.Vector3) (math32.Vector3, bool) {
	ab := b.Sub(a)
	ac := c.Sub(a)

	// Sliver guard: the squared doubled area is the denominator of every
	// parametric expression below.
	n := ab.Cross(ac)
	if n.Dot(n) < degenerateEps {
		return math32.Vector3{}, false
	}

	// Voronoi region walk (closest-point-on-triangle, two-edge parametric form).
	ap := p.Sub(a)
	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a, true // vertex region A
	}

	bp := p.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b, true // vertex region B
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return a.Add(ab.MulScalar(v)), true // edge region AB
	}

	cp := p.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c, true // vertex region C
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return a.Add(ac.MulScalar(w)), true // edge region AC
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return b.Add(c.Sub(b).MulScalar(w)), true // edge region BC
	}

	denom := va + vb + vc
	if math32.Abs(denom) < degenerateEps {
		return math32.Vector3{}, false
	}
	v := vb / denom
	w := vc / denom
	return a.Add(ab.MulScalar(v)).Add(ac.MulScalar(w)), true // face interior
}

// pointTriangleDistance returns the distance from p to the surface of
// triangle abc. Near-zero-area slivers fall back to the minimum distance to
// the three vertices; without the fallback such slivers would report an
// unreachable distance and could never be painted.
func pointTriangleDistance(p, a, b, c math32.Vector3) float32 {
	if q, ok := closestPointOnTriangle(p, a, b, c); ok {
		return q.Sub(p).Length()
	}
	d := a.Sub(p).Length()
	d = math32.Min(d, b.Sub(p).Length())
	d = math32.Min(d, c.Sub(p).Length())
	return d
}

// rayTriangle intersects a ray with triangle abc using the two-edge-vector
// parametric test. It returns the distance along the (unit) direction and
// whether the ray hits the triangle at a strictly positive distance.
func rayTriangle(origin, dir, a, b, c math32.Vector3) (float32, bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)

	pv := dir.Cross(e2)
	det := e1.Dot(pv)
	if math32.Abs(det) < degenerateEps {
		return 0, false // ray parallel to the triangle plane
	}
	inv := 1 / det

	tv := origin.Sub(a)
	u := tv.Dot(pv) * inv
	if u < 0 || u > 1 {
		return 0, false
	}

	qv := tv.Cross(e1)
	v := dir.Dot(qv) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := e2.Dot(qv) * inv
	if t <= 1e-6 {
		return 0, false
	}
	return t, true
}
