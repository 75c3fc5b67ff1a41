package meshpaint

import "cogentcore.org/core/math32"

// Barycentric is a position inside a triangle expressed relative to its three
// corners: the point is U*A + V*B + W*C with U+V+W = 1.
type Barycentric struct {
	U, V, W float32
}

// Corner constants identifying a triangle's own vertices in its local
// barycentric frame. A whole-triangle region has corners CornerA, CornerB,
// CornerC in that order.
var (
	CornerA = Barycentric{1, 0, 0}
	CornerB = Barycentric{0, 1, 0}
	CornerC = Barycentric{0, 0, 1}
)

// Bary is a convenience function to create a Barycentric coordinate.
func Bary(u, v, w float32) Barycentric {
	return Barycentric{U: u, V: v, W: w}
}

// Mid returns the midpoint between two barycentric coordinates.
// Midpoints of a region's edges define the 4-way subdivision used by both
// the Brush and the wire codec.
func (b Barycentric) Mid(o Barycentric) Barycentric {
	return Barycentric{
		U: (b.U + o.U) * 0.5,
		V: (b.V + o.V) * 0.5,
		W: (b.W + o.W) * 0.5,
	}
}

// Lerp performs linear interpolation between two barycentric coordinates.
// t=0 returns b, t=1 returns o.
func (b Barycentric) Lerp(o Barycentric, t float32) Barycentric {
	return Barycentric{
		U: b.U + (o.U-b.U)*t,
		V: b.V + (o.V-b.V)*t,
		W: b.W + (o.W-b.W)*t,
	}
}

// DistanceSquared returns the squared distance between two barycentric
// coordinates, treating (U, V, W) as a plain 3-vector. Used by the encoder's
// nearest-centroid region classification, where only relative order matters.
func (b Barycentric) DistanceSquared(o Barycentric) float32 {
	du := b.U - o.U
	dv := b.V - o.V
	dw := b.W - o.W
	return du*du + dv*dv + dw*dw
}

// In maps the coordinate to a world-space point inside the triangle spanned
// by vertices a, b, c.
func (b Barycentric) In(a, bb, c math32.Vector3) math32.Vector3 {
	p := a.MulScalar(b.U)
	p = p.Add(bb.MulScalar(b.V))
	p = p.Add(c.MulScalar(b.W))
	return p
}

// LeafRegion is one undivided region of a triangle's paint partition: a
// sub-triangle given by three barycentric corners, holding a single color
// index and mask state. The ordered leaf list of a Triangle partitions the
// parent triangle without gaps or overlaps.
type LeafRegion struct {
	// Corners are the region's corners within the parent triangle.
	Corners [3]Barycentric

	// Color is the material/extruder index painted on this region (0-based).
	Color int

	// Depth is the subdivision depth of this region (0 = whole triangle).
	Depth int

	// Masked regions are protected from the Paint and Erase tools.
	Masked bool
}

// WholeTriangleLeaf returns a leaf covering the entire parent triangle.
// Every Triangle starts with exactly one of these at color 0.
func WholeTriangleLeaf(color int) LeafRegion {
	return LeafRegion{
		Corners: [3]Barycentric{CornerA, CornerB, CornerC},
		Color:   color,
	}
}

// Centroid returns the barycentric centroid of the region.
func (l LeafRegion) Centroid() Barycentric {
	c := l.Corners
	return Barycentric{
		U: (c[0].U + c[1].U + c[2].U) / 3,
		V: (c[0].V + c[1].V + c[2].V) / 3,
		W: (c[0].W + c[1].W + c[2].W) / 3,
	}
}

// Area returns the region's area as a fraction of the parent triangle.
// A whole-triangle leaf has area 1; the leaves of a valid partition sum to 1.
func (l LeafRegion) Area() float32 {
	// The (U, V) components are affine coordinates in the unit triangle
	// (1,0), (0,1), (0,0), whose doubled area is exactly 1.
	c := l.Corners
	det := (c[1].U-c[0].U)*(c[2].V-c[0].V) - (c[2].U-c[0].U)*(c[1].V-c[0].V)
	return math32.Abs(det)
}

// Subdivide splits the region into its four children at edge midpoints, in
// the fixed order center, corner-2, corner-1, corner-0. This order is a hard
// compatibility contract shared by the Brush and the wire codec: Decode
// flattens split nodes through exactly this layout.
func (l LeafRegion) Subdivide() [4]LeafRegion {
	c0, c1, c2 := l.Corners[0], l.Corners[1], l.Corners[2]
	m01 := c0.Mid(c1)
	m12 := c1.Mid(c2)
	m20 := c2.Mid(c0)

	child := func(a, b, c Barycentric) LeafRegion {
		return LeafRegion{
			Corners: [3]Barycentric{a, b, c},
			Color:   l.Color,
			Depth:   l.Depth + 1,
			Masked:  l.Masked,
		}
	}
	return [4]LeafRegion{
		child(m01, m12, m20), // center
		child(m12, c2, m20),  // corner-2
		child(m01, c1, m12),  // corner-1
		child(c0, m01, m20),  // corner-0
	}
}

// cloneLeaves deep-copies a leaf list. LeafRegion is a pure value type, so a
// slice copy is a deep copy; the helper exists so every transfer across the
// undo boundary goes through one audited spot.
func cloneLeaves(leaves []LeafRegion) []LeafRegion {
	if leaves == nil {
		return nil
	}
	out := make([]LeafRegion, len(leaves))
	copy(out, leaves)
	return out
}
