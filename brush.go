package meshpaint

import (
	"log/slog"

	"cogentcore.org/core/math32"
)

// Tool selects the effect a brush application has on the leaves it touches.
type Tool int

const (
	// ToolPaint sets the leaf color unless the leaf is masked.
	ToolPaint Tool = iota

	// ToolErase resets the leaf color to 0 unless the leaf is masked.
	ToolErase

	// ToolMask sets the leaf's mask flag without touching its color.
	ToolMask

	// ToolUnmask clears the leaf's mask flag.
	ToolUnmask
)

// String returns the tool name for logging and diagnostics.
func (t Tool) String() string {
	switch t {
	case ToolPaint:
		return "paint"
	case ToolErase:
		return "erase"
	case ToolMask:
		return "mask"
	case ToolUnmask:
		return "unmask"
	}
	return "unknown"
}

const (
	// targetSizeFactor is the target leaf edge length relative to the brush
	// radius; subdivision stops once leaves are about this small.
	targetSizeFactor = 0.3

	// normalAlignThreshold is the minimum dot product between a candidate
	// triangle's normal and the brush normal for the triangle to count as
	// facing the brush.
	normalAlignThreshold = 0.1

	// hoverRadiusFactor is the generous radius multiplier applied to the
	// hover triangle's distance filter, guaranteeing stroke continuity for
	// very small brushes on sparse meshes.
	hoverRadiusFactor = 5

	// minSearchFactor keeps the candidate search radius from collapsing on
	// tiny brushes, as a fraction of the mesh diameter.
	minSearchFactor = 0.05
)

// depthCaps maps the radius/diameter ratio to the maximum subdivision depth.
// A finer brush relative to the mesh earns a deeper cap, bounding the
// worst-case leaf count of any single ApplyPaint call.
var depthCaps = []struct {
	ratio float32
	depth int
}{
	{0.08, 6},
	{0.04, 7},
	{0.02, 8},
	{0.01, 10},
	{0.005, 12},
}

// maxSubdivisionDepth is the cap for the finest brushes.
const maxSubdivisionDepth = 14

// Brush is the adaptive subdivision paint engine. Given a brush center,
// radius, tool and color it refines and recolors the affected triangles'
// leaf partitions in place.
//
// Brush holds only references to the mesh and its spatial index; it never
// retains references into any triangle's leaf list across calls.
type Brush struct {
	mesh  *Mesh
	index *SpatialIndex

	// Position is the brush center in world space.
	Position math32.Vector3

	// Normal is the surface normal under the pointer; candidate triangles
	// facing away from it are skipped when normal masking is enabled.
	Normal math32.Vector3

	// HoverTriangle is the triangle currently under the pointer, or -1.
	// It is always included in the affected set.
	HoverTriangle int

	// Radius is the brush sphere radius in world units.
	Radius float32

	autoSubdivide bool
	normalMasking bool
}

// NewBrush creates a brush over mesh using index for candidate queries.
// Auto-subdivision and normal masking are enabled by default; use
// [WithAutoSubdivide] and [WithNormalMasking] to change that.
func NewBrush(mesh *Mesh, index *SpatialIndex, opts ...BrushOption) *Brush {
	b := &Brush{
		mesh:          mesh,
		index:         index,
		HoverTriangle: -1,
		autoSubdivide: true,
		normalMasking: true,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// MaxDepth returns the subdivision depth cap for the current brush radius,
// from 6 for broad brushes up to 14 for the finest.
func (b *Brush) MaxDepth() int {
	d := b.mesh.Diameter()
	if d <= 0 || b.Radius <= 0 {
		return depthCaps[0].depth
	}
	ratio := b.Radius / d
	for _, e := range depthCaps {
		if ratio >= e.ratio {
			return e.depth
		}
	}
	return maxSubdivisionDepth
}

// TargetSize returns the leaf edge length at which subdivision stops.
func (b *Brush) TargetSize() float32 {
	return targetSizeFactor * b.Radius
}

// UpdateCursor raycasts into the mesh and moves the brush to the hit
// surface, updating Position, Normal and HoverTriangle. It reports whether
// the ray hit the mesh; on a miss the hover triangle is cleared. This is
// the call an interaction layer makes per pointer event.
func (b *Brush) UpdateCursor(origin, dir math32.Vector3) bool {
	hit, ok := b.index.Raycast(origin, dir)
	if !ok {
		b.HoverTriangle = -1
		return false
	}
	b.Position = hit.Point
	b.HoverTriangle = hit.Triangle
	b.Normal = b.mesh.Triangles[hit.Triangle].Normal
	return true
}

// FindAffectedTrianglesAt returns the triangles the brush touches at point.
// Candidates come from the spatial index with a search radius of at least
// 2x the brush radius; masked triangles are skipped unless ignoreMask,
// triangles facing away from the brush normal are skipped while normal
// masking is enabled, and only triangles whose true surface distance is
// within the brush radius are kept. The hover triangle is always included
// (with a generous radius multiplier) so tiny brushes never lose contact.
func (b *Brush) FindAffectedTrianglesAt(point math32.Vector3, ignoreMask bool) []int {
	if b.mesh.IsEmpty() || b.index == nil || !b.index.Built() {
		return nil
	}

	search := math32.Max(2*b.Radius, minSearchFactor*b.mesh.Diameter())
	var out []int
	hoverSeen := false
	for _, ti := range b.index.FindTrianglesInRadius(point, search) {
		t := &b.mesh.Triangles[ti]
		if t.Masked && !ignoreMask {
			continue
		}
		if b.normalMasking && t.Normal.Dot(b.Normal) < normalAlignThreshold {
			continue
		}
		va, vb, vc := b.mesh.TriangleVertices(ti)
		limit := b.Radius
		if ti == b.HoverTriangle {
			limit = hoverRadiusFactor * b.Radius
		}
		if pointTriangleDistance(point, va, vb, vc) > limit {
			continue
		}
		if ti == b.HoverTriangle {
			hoverSeen = true
		}
		out = append(out, ti)
	}

	// The hover triangle can fall outside every grid-driven filter on very
	// sparse meshes; keep it unless it is masked.
	if !hoverSeen && b.HoverTriangle >= 0 && b.HoverTriangle < len(b.mesh.Triangles) {
		if t := &b.mesh.Triangles[b.HoverTriangle]; !t.Masked || ignoreMask {
			va, vb, vc := b.mesh.TriangleVertices(b.HoverTriangle)
			if pointTriangleDistance(point, va, vb, vc) <= hoverRadiusFactor*b.Radius {
				out = append(out, b.HoverTriangle)
			}
		}
	}
	return out
}

// ApplyPaint refines triangle ti's leaf partition against the brush sphere
// and applies tool with color to every leaf the brush covers. Leaves fully
// inside the sphere take the tool at their current depth; leaves the brush
// does not touch are kept unchanged; everything in between is subdivided
// 4-way at edge midpoints (in the codec's child order) until the depth cap
// or the target leaf size is reached. The triangle's leaf list is replaced
// wholesale with the new partition.
func (b *Brush) ApplyPaint(ti int, tool Tool, color int) {
	if ti < 0 || ti >= len(b.mesh.Triangles) {
		return
	}
	t := &b.mesh.Triangles[ti]
	va, vb, vc := b.mesh.TriangleVertices(ti)

	maxDepth := b.MaxDepth()
	target := b.TargetSize()
	r2 := b.Radius * b.Radius

	// Work stack seeded with the current partition; leaves are classified
	// one at a time and either emitted or split back onto the stack.
	work := cloneLeaves(t.Leaves)
	out := make([]LeafRegion, 0, len(work))

	for len(work) > 0 {
		leaf := work[len(work)-1]
		work = work[:len(work)-1]

		p0 := leaf.Corners[0].In(va, vb, vc)
		p1 := leaf.Corners[1].In(va, vb, vc)
		p2 := leaf.Corners[2].In(va, vb, vc)

		in0 := distSq(p0, b.Position) <= r2
		in1 := distSq(p1, b.Position) <= r2
		in2 := distSq(p2, b.Position) <= r2

		// Fully inside the brush sphere: recolor at the current depth.
		if in0 && in1 && in2 {
			out = append(out, applyTool(leaf, tool, color))
			continue
		}

		centroidIn := distSq(leaf.Centroid().In(va, vb, vc), b.Position) <= r2
		surface := pointTriangleDistance(b.Position, p0, p1, p2)
		touching := surface <= b.Radius || centroidIn || in0 || in1 || in2

		// Fully outside and not touching: keep unchanged.
		if !touching {
			out = append(out, leaf)
			continue
		}

		longest := math32.Max(p1.Sub(p0).Length(),
			math32.Max(p2.Sub(p1).Length(), p0.Sub(p2).Length()))
		if leaf.Depth >= maxDepth || longest <= target || !b.autoSubdivide {
			out = append(out, applyTool(leaf, tool, color))
			continue
		}

		children := leaf.Subdivide()
		work = append(work, children[0], children[1], children[2], children[3])
	}

	t.Leaves = out
	t.Masked = allMasked(out)

	Logger().Debug("paint applied",
		slog.Int("triangle", ti),
		slog.String("tool", tool.String()),
		slog.Int("leaves", len(out)))
}

// PaintAt is the per-pointer-event entry point: it finds the triangles the
// brush touches at point and applies tool with color to each, recording
// first-touch snapshots in hist when it is non-nil. It returns the affected
// triangle indices.
func (b *Brush) PaintAt(point math32.Vector3, tool Tool, color int, hist *History) []int {
	b.Position = point
	ignoreMask := tool == ToolUnmask
	affected := b.FindAffectedTrianglesAt(point, ignoreMask)
	for _, ti := range affected {
		if hist != nil {
			hist.MarkTriangleModified(ti)
		}
		b.ApplyPaint(ti, tool, color)
	}
	return affected
}

// applyTool returns leaf with the tool's color/mask transform applied.
func applyTool(leaf LeafRegion, tool Tool, color int) LeafRegion {
	switch tool {
	case ToolPaint:
		if !leaf.Masked {
			leaf.Color = color
		}
	case ToolErase:
		if !leaf.Masked {
			leaf.Color = 0
		}
	case ToolMask:
		leaf.Masked = true
	case ToolUnmask:
		leaf.Masked = false
	}
	return leaf
}

// allMasked reports whether every leaf of a partition is masked, which
// promotes the mask to the triangle level.
func allMasked(leaves []LeafRegion) bool {
	if len(leaves) == 0 {
		return false
	}
	for _, l := range leaves {
		if !l.Masked {
			return false
		}
	}
	return true
}
