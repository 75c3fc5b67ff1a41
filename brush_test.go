package meshpaint

import (
	"testing"

	"cogentcore.org/core/math32"
)

// bigTriangleMesh returns a single right triangle with legs of length 4 in
// the XY plane, facing +Z.
func bigTriangleMesh() *Mesh {
	vertices := []math32.Vector3{
		math32.Vec3(0, 0, 0),
		math32.Vec3(4, 0, 0),
		math32.Vec3(0, 4, 0),
	}
	return NewMesh(vertices, [][3]int{{0, 1, 2}})
}

// paintBrush returns a built brush over mesh with its normal facing +Z.
func paintBrush(mesh *Mesh, radius float32) *Brush {
	index := NewSpatialIndex(mesh)
	index.Build()
	b := NewBrush(mesh, index)
	b.Radius = radius
	b.Normal = math32.Vec3(0, 0, 1)
	return b
}

// leafAt returns the leaf containing the barycentric point bc, using the
// (U,V) components as affine coordinates.
func leafAt(tt *testing.T, leaves []LeafRegion, bc Barycentric) LeafRegion {
	tt.Helper()
	const eps = 1e-5
	for _, l := range leaves {
		c := l.Corners
		d := (c[1].U-c[0].U)*(c[2].V-c[0].V) - (c[2].U-c[0].U)*(c[1].V-c[0].V)
		if math32.Abs(d) < 1e-12 {
			continue
		}
		wb := ((bc.U-c[0].U)*(c[2].V-c[0].V) - (c[2].U-c[0].U)*(bc.V-c[0].V)) / d
		wc := ((c[1].U-c[0].U)*(bc.V-c[0].V) - (bc.U-c[0].U)*(c[1].V-c[0].V)) / d
		if wb >= -eps && wc >= -eps && wb+wc <= 1+eps {
			return l
		}
	}
	tt.Fatalf("no leaf contains %v", bc)
	return LeafRegion{}
}

// partitionArea sums the leaves' barycentric areas.
func partitionArea(leaves []LeafRegion) float32 {
	var sum float32
	for _, l := range leaves {
		sum += l.Area()
	}
	return sum
}

func TestMaxDepthTable(t *testing.T) {
	m := bigTriangleMesh() // diameter ~8
	b := paintBrush(m, 1)

	tests := []struct {
		name   string
		radius float32
		want   int
	}{
		{"broad brush", 1, 6},         // ratio ~0.18
		{"medium brush", 0.4, 7},      // ratio ~0.07
		{"fine brush", 0.1, 10},       // ratio ~0.018
		{"very fine brush", 0.05, 12}, // ratio ~0.009
		{"finest brush", 0.01, 14},    // ratio ~0.002
		{"zero radius falls back", 0, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b.Radius = tt.radius
			if got := b.MaxDepth(); got != tt.want {
				t.Errorf("MaxDepth(radius=%v) = %d, want %d", tt.radius, got, tt.want)
			}
		})
	}
}

func TestTargetSize(t *testing.T) {
	b := paintBrush(bigTriangleMesh(), 2)
	if got := b.TargetSize(); !almostEqual(got, 0.6, 1e-6) {
		t.Errorf("TargetSize = %v, want 0.6", got)
	}
}

// TestApplyPaintFullyInside covers the whole triangle with the brush: the
// single leaf is recolored in place, no subdivision.
func TestApplyPaintFullyInside(t *testing.T) {
	m := bigTriangleMesh()
	b := paintBrush(m, 6)
	b.Position = math32.Vec3(4.0/3.0, 4.0/3.0, 0)

	b.ApplyPaint(0, ToolPaint, 2)

	leaves := m.Triangles[0].Leaves
	if len(leaves) != 1 {
		t.Fatalf("got %d leaves, want 1 (no subdivision)", len(leaves))
	}
	if leaves[0].Color != 2 || leaves[0].Depth != 0 {
		t.Errorf("leaf = color %d depth %d, want color 2 depth 0", leaves[0].Color, leaves[0].Depth)
	}
}

// TestApplyPaintPartial paints a small disc inside the triangle and checks
// the resulting partition: subdivided, gap-free, painted near the center,
// untouched at the far corners.
func TestApplyPaintPartial(t *testing.T) {
	m := bigTriangleMesh()
	b := paintBrush(m, 0.5)
	b.Position = math32.Vec3(0.5, 0.5, 0)

	b.ApplyPaint(0, ToolPaint, 1)

	leaves := m.Triangles[0].Leaves
	if len(leaves) <= 1 {
		t.Fatal("expected subdivision for a partially covered triangle")
	}
	if a := partitionArea(leaves); !almostEqual(a, 1, 1e-4) {
		t.Errorf("partition area = %v, want 1", a)
	}

	maxDepth := b.MaxDepth()
	painted, unpainted := 0, 0
	for _, l := range leaves {
		if l.Depth > maxDepth {
			t.Errorf("leaf depth %d exceeds cap %d", l.Depth, maxDepth)
		}
		if l.Color == 1 {
			painted++
		} else {
			unpainted++
		}
	}
	if painted == 0 || unpainted == 0 {
		t.Fatalf("painted=%d unpainted=%d, want both nonzero", painted, unpainted)
	}

	// The brush center itself must be painted; the far corners must not be.
	if l := leafAt(t, leaves, Barycentric{0.75, 0.125, 0.125}); l.Color != 1 {
		t.Errorf("leaf near brush center has color %d, want 1", l.Color)
	}
	if l := leafAt(t, leaves, CornerB); l.Color != 0 {
		t.Errorf("leaf at far corner B has color %d, want 0", l.Color)
	}
	if l := leafAt(t, leaves, CornerC); l.Color != 0 {
		t.Errorf("leaf at far corner C has color %d, want 0", l.Color)
	}
}

// TestApplyPaintNoAutoSubdivide: with refinement off, a touched triangle is
// recolored wholesale at its current depth.
func TestApplyPaintNoAutoSubdivide(t *testing.T) {
	m := bigTriangleMesh()
	index := NewSpatialIndex(m)
	index.Build()
	b := NewBrush(m, index, WithAutoSubdivide(false))
	b.Radius = 0.5
	b.Position = math32.Vec3(0.5, 0.5, 0)

	b.ApplyPaint(0, ToolPaint, 3)

	leaves := m.Triangles[0].Leaves
	if len(leaves) != 1 || leaves[0].Color != 3 {
		t.Errorf("leaves = %v, want one whole-triangle leaf of color 3", leaves)
	}
}

func TestToolSemantics(t *testing.T) {
	m := bigTriangleMesh()
	b := paintBrush(m, 6)
	b.Position = math32.Vec3(4.0/3.0, 4.0/3.0, 0)

	// Paint, then mask, then verify paint and erase are blocked.
	b.ApplyPaint(0, ToolPaint, 2)
	b.ApplyPaint(0, ToolMask, 0)
	if !m.Triangles[0].Leaves[0].Masked {
		t.Fatal("mask tool did not set the mask flag")
	}
	if !m.Triangles[0].Masked {
		t.Error("fully masked partition should promote the triangle mask flag")
	}

	b.ApplyPaint(0, ToolPaint, 1)
	if got := m.Triangles[0].Leaves[0].Color; got != 2 {
		t.Errorf("paint on masked leaf changed color to %d, want 2", got)
	}
	b.ApplyPaint(0, ToolErase, 0)
	if got := m.Triangles[0].Leaves[0].Color; got != 2 {
		t.Errorf("erase on masked leaf changed color to %d, want 2", got)
	}

	// Unmask, then erase works again.
	b.ApplyPaint(0, ToolUnmask, 0)
	if m.Triangles[0].Leaves[0].Masked || m.Triangles[0].Masked {
		t.Fatal("unmask did not clear the mask flags")
	}
	b.ApplyPaint(0, ToolErase, 0)
	if got := m.Triangles[0].Leaves[0].Color; got != 0 {
		t.Errorf("erase left color %d, want 0", got)
	}
}

func TestApplyPaintOutOfRange(t *testing.T) {
	m := bigTriangleMesh()
	b := paintBrush(m, 1)
	b.ApplyPaint(-1, ToolPaint, 1)
	b.ApplyPaint(99, ToolPaint, 1)
	// Reaching here without a panic is the assertion.
}

// TestFindAffectedHoverIncluded reproduces the sparse-mesh guarantee: a
// brush far smaller than a triangle, centered exactly on the hover
// triangle, returns at least the hover triangle.
func TestFindAffectedHoverIncluded(t *testing.T) {
	m := gridMesh(4)
	b := paintBrush(m, 0.05)

	hover := 12
	a, bb, c := m.TriangleVertices(hover)
	center := a.Add(bb).Add(c).MulScalar(1.0 / 3.0)
	b.HoverTriangle = hover
	b.Position = center

	got := b.FindAffectedTrianglesAt(center, false)
	found := false
	for _, ti := range got {
		if ti == hover {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("affected set %v does not include hover triangle %d", got, hover)
	}
}

func TestFindAffectedSkipsMasked(t *testing.T) {
	m := squareMesh(0)
	b := paintBrush(m, 0.4)
	m.Triangles[0].Masked = true
	point := math32.Vec3(0.5, 0.5, 0)

	for _, ti := range b.FindAffectedTrianglesAt(point, false) {
		if ti == 0 {
			t.Fatal("masked triangle returned without override")
		}
	}

	found := false
	for _, ti := range b.FindAffectedTrianglesAt(point, true) {
		if ti == 0 {
			found = true
			break
		}
	}
	if !found {
		t.Error("ignoreMask did not restore the masked triangle")
	}
}

func TestFindAffectedNormalMasking(t *testing.T) {
	// Two back-to-back squares: one facing +Z, one facing -Z.
	vertices := []math32.Vector3{
		math32.Vec3(0, 0, 0), math32.Vec3(1, 0, 0), math32.Vec3(1, 1, 0), math32.Vec3(0, 1, 0),
	}
	m := NewMesh(vertices, [][3]int{
		{0, 1, 2}, // +Z
		{0, 2, 1}, // -Z
	})
	index := NewSpatialIndex(m)
	index.Build()

	point := math32.Vec3(0.6, 0.2, 0)

	b := NewBrush(m, index)
	b.Radius = 0.3
	b.Normal = math32.Vec3(0, 0, 1)
	for _, ti := range b.FindAffectedTrianglesAt(point, false) {
		if ti == 1 {
			t.Fatal("back-facing triangle returned with normal masking on")
		}
	}

	open := NewBrush(m, index, WithNormalMasking(false))
	open.Radius = 0.3
	open.Normal = math32.Vec3(0, 0, 1)
	got := open.FindAffectedTrianglesAt(point, false)
	if len(got) != 2 {
		t.Errorf("without normal masking got %v, want both sides", got)
	}
}

// TestPaintSliverTriangle checks that a near-zero-area sliver can still be
// painted thanks to the distance fallback.
func TestPaintSliverTriangle(t *testing.T) {
	vertices := []math32.Vector3{
		math32.Vec3(0, 0, 0),
		math32.Vec3(1, 0, 0),
		math32.Vec3(2, 1e-8, 0),
	}
	m := NewMesh(vertices, [][3]int{{0, 1, 2}})
	b := paintBrush(m, 1)
	b.Position = math32.Vec3(0.5, 0, 0)

	b.ApplyPaint(0, ToolPaint, 1)

	painted := false
	for _, l := range m.Triangles[0].Leaves {
		if l.Color == 1 {
			painted = true
			break
		}
	}
	if !painted {
		t.Error("sliver triangle could not be painted")
	}
}

func TestUpdateCursor(t *testing.T) {
	m := squareMesh(1)
	b := paintBrush(m, 0.2)

	if !b.UpdateCursor(math32.Vec3(0.6, 0.2, 3), math32.Vec3(0, 0, -1)) {
		t.Fatal("cursor raycast missed the mesh")
	}
	if b.HoverTriangle != 0 {
		t.Errorf("hover triangle = %d, want 0", b.HoverTriangle)
	}
	want := math32.Vec3(0.6, 0.2, 1)
	if b.Position.Sub(want).Length() > 1e-5 {
		t.Errorf("position = %v, want %v", b.Position, want)
	}
	if !almostEqual(b.Normal.Dot(math32.Vec3(0, 0, 1)), 1, 1e-5) {
		t.Errorf("normal = %v, want +Z", b.Normal)
	}

	if b.UpdateCursor(math32.Vec3(9, 9, 3), math32.Vec3(0, 0, -1)) {
		t.Fatal("cursor raycast hit off the mesh")
	}
	if b.HoverTriangle != -1 {
		t.Errorf("hover triangle after miss = %d, want -1", b.HoverTriangle)
	}
}

// TestPaintAt drives the full per-pointer-event path and checks history
// integration.
func TestPaintAt(t *testing.T) {
	m := squareMesh(0)
	b := paintBrush(m, 0.3)
	b.HoverTriangle = 0
	h := NewHistory(m)

	h.BeginStroke()
	affected := b.PaintAt(math32.Vec3(0.6, 0.2, 0), ToolPaint, 1, h)
	h.EndStroke()

	if len(affected) == 0 {
		t.Fatal("PaintAt affected nothing")
	}
	if h.UndoCount() != 1 {
		t.Fatalf("UndoCount = %d, want 1", h.UndoCount())
	}
	if !h.Undo() {
		t.Fatal("undo failed")
	}
	for _, ti := range affected {
		leaves := m.Triangles[ti].Leaves
		if len(leaves) != 1 || leaves[0].Color != 0 {
			t.Errorf("triangle %d not restored: %v", ti, leaves)
		}
	}
}
