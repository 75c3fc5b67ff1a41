package meshpaint

import "cogentcore.org/core/math32"

// Triangle is one face of a Mesh together with its paint state.
type Triangle struct {
	// V holds the indices of the triangle's vertices in Mesh.Vertices.
	V [3]int

	// Normal is the unit face normal, computed by NewMesh.
	Normal math32.Vector3

	// UV holds optional texture coordinates per corner; valid when HasUV.
	UV [3]math32.Vector2

	// HasUV reports whether UV coordinates are present.
	HasUV bool

	// Leaves is the triangle's paint partition. It is never empty: a fresh
	// triangle has a single whole-triangle leaf of color 0. The Brush
	// replaces the whole slice on every ApplyPaint call.
	Leaves []LeafRegion

	// Masked triangles are skipped by the brush unless the caller overrides.
	Masked bool
}

// Mesh is a static triangle mesh with derived bounds. Vertices and topology
// do not change after construction; only the per-triangle paint state does.
type Mesh struct {
	Vertices  []math32.Vector3
	Triangles []Triangle

	// Bounds is the axis-aligned bounding box of all vertices.
	Bounds math32.Box3

	// Center is the center of Bounds.
	Center math32.Vector3

	// Radius is the bounding sphere radius around Center.
	Radius float32
}

// NewMesh creates a mesh from vertex positions and per-triangle vertex
// indices. Face normals, bounds and the default whole-triangle leaf of each
// triangle are derived here. Indices out of range yield a degenerate
// zero-normal triangle rather than a panic.
func NewMesh(vertices []math32.Vector3, indices [][3]int) *Mesh {
	m := &Mesh{
		Vertices:  vertices,
		Triangles: make([]Triangle, len(indices)),
	}
	for i, idx := range indices {
		t := Triangle{
			V:      idx,
			Leaves: []LeafRegion{WholeTriangleLeaf(0)},
		}
		if m.validIndices(idx) {
			a, b, c := vertices[idx[0]], vertices[idx[1]], vertices[idx[2]]
			t.Normal = faceNormal(a, b, c)
		}
		m.Triangles[i] = t
	}
	m.computeBounds()
	return m
}

// IsEmpty reports whether the mesh has no triangles.
func (m *Mesh) IsEmpty() bool {
	return m == nil || len(m.Triangles) == 0
}

// Diameter returns the bounding sphere diameter. Brush sizing and the
// spatial index's search radii are all expressed relative to this.
func (m *Mesh) Diameter() float32 {
	return m.Radius * 2
}

// TriangleVertices returns the world-space corners of triangle i.
// Out-of-range triangle or vertex indices return zero vectors.
func (m *Mesh) TriangleVertices(i int) (a, b, c math32.Vector3) {
	if i < 0 || i >= len(m.Triangles) {
		return
	}
	idx := m.Triangles[i].V
	if !m.validIndices(idx) {
		return
	}
	return m.Vertices[idx[0]], m.Vertices[idx[1]], m.Vertices[idx[2]]
}

// BaryToWorld maps a barycentric coordinate inside triangle i to world space.
func (m *Mesh) BaryToWorld(i int, bc Barycentric) math32.Vector3 {
	a, b, c := m.TriangleVertices(i)
	return bc.In(a, b, c)
}

// SetUV attaches texture coordinates to triangle i, one per corner.
func (m *Mesh) SetUV(i int, uv0, uv1, uv2 math32.Vector2) {
	if i < 0 || i >= len(m.Triangles) {
		return
	}
	t := &m.Triangles[i]
	t.UV = [3]math32.Vector2{uv0, uv1, uv2}
	t.HasUV = true
}

// SetLeaves replaces triangle i's paint partition with a copy of leaves.
// An empty or nil list restores the default whole-triangle leaf, preserving
// the invariant that Leaves is never empty. Loaders call this with the
// result of Decode.
func (m *Mesh) SetLeaves(i int, leaves []LeafRegion) {
	if i < 0 || i >= len(m.Triangles) {
		return
	}
	if len(leaves) == 0 {
		m.Triangles[i].Leaves = []LeafRegion{WholeTriangleLeaf(0)}
		return
	}
	m.Triangles[i].Leaves = cloneLeaves(leaves)
}

// validIndices reports whether all three vertex indices are in range.
func (m *Mesh) validIndices(idx [3]int) bool {
	for _, v := range idx {
		if v < 0 || v >= len(m.Vertices) {
			return false
		}
	}
	return true
}

// computeBounds derives Bounds, Center and Radius from the vertex list.
func (m *Mesh) computeBounds() {
	if len(m.Vertices) == 0 {
		return
	}
	min := m.Vertices[0]
	max := m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		min.X = math32.Min(min.X, v.X)
		min.Y = math32.Min(min.Y, v.Y)
		min.Z = math32.Min(min.Z, v.Z)
		max.X = math32.Max(max.X, v.X)
		max.Y = math32.Max(max.Y, v.Y)
		max.Z = math32.Max(max.Z, v.Z)
	}
	m.Bounds = math32.Box3{Min: min, Max: max}
	m.Center = min.Add(max).MulScalar(0.5)
	m.Radius = max.Sub(m.Center).Length()
}

// faceNormal returns the unit normal of triangle abc, or the zero vector for
// a degenerate triangle.
func faceNormal(a, b, c math32.Vector3) math32.Vector3 {
	n := b.Sub(a).Cross(c.Sub(a))
	l := n.Length()
	if l == 0 {
		return math32.Vector3{}
	}
	return n.MulScalar(1 / l)
}
