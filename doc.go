// Package meshpaint provides per-region material painting on triangle meshes.
//
// # Overview
//
// meshpaint lets an interactive tool paint material (extruder/filament)
// assignments onto a triangle mesh with a spherical brush, refining each
// touched triangle into a quadtree of colored leaf regions, and persists
// that painting in the compact wire format used by multi-material slicing
// software.
//
// # Quick Start
//
//	import "github.com/gogpu/meshpaint"
//
//	mesh := meshpaint.NewMesh(vertices, indices)
//
//	index := meshpaint.NewSpatialIndex(mesh)
//	index.Build()
//
//	brush := meshpaint.NewBrush(mesh, index)
//	brush.Radius = 2.5
//
//	hist := meshpaint.NewHistory(mesh, meshpaint.WithCapacity(50))
//
//	// One pointer event:
//	hist.BeginStroke()
//	if hit, ok := index.Raycast(camOrigin, camDir); ok {
//	    brush.Position = hit.Point
//	    brush.HoverTriangle = hit.Triangle
//	    brush.PaintAt(hit.Point, meshpaint.ToolPaint, 2, hist)
//	}
//	hist.EndStroke()
//
//	// Persist one triangle's painting:
//	wire := meshpaint.Encode(mesh.Triangles[0].Leaves)
//
// # Architecture
//
// The library is organized into:
//   - Geometry: Barycentric, LeafRegion, Triangle, Mesh
//   - SpatialIndex: uniform grid for radius queries and raycasts
//   - Brush: adaptive subdivision paint engine
//   - Encode/Decode: the backwards-read hexadecimal wire codec
//   - History: stroke-scoped sparse-diff undo/redo
//
// # Concurrency
//
// All mutation is single-threaded by design: one interactive session drives
// strokes one at a time. The only parallel operation is ProjectTexture,
// whose per-triangle writes are disjoint and need no locking.
package meshpaint

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
