package meshpaint

import (
	"log/slog"
	"math"

	"cogentcore.org/core/math32"
)

// targetCellOccupancy tunes the grid resolution: the per-axis cell count is
// roughly the cube root of triangles/targetCellOccupancy, keeping average
// bucket sizes constant as meshes grow.
const targetCellOccupancy = 50

// RaycastHit describes the closest surface found by SpatialIndex.Raycast.
type RaycastHit struct {
	// Triangle is the index of the hit triangle in the mesh.
	Triangle int

	// Distance is the distance from the ray origin to the hit point.
	Distance float32

	// Point is the world-space hit point.
	Point math32.Vector3
}

// SpatialIndex is a uniform grid over a mesh's triangles that accelerates
// "which triangles are near this point/ray" queries. It is built once per
// mesh load and read-only afterwards; rebuilding must not overlap a query.
type SpatialIndex struct {
	mesh *Mesh

	built    bool
	origin   math32.Vector3
	cellSize float32
	cells    map[[3]int][]int
}

// NewSpatialIndex creates an index for mesh. Call Build before querying;
// an unbuilt index answers every query with an empty result.
func NewSpatialIndex(mesh *Mesh) *SpatialIndex {
	return &SpatialIndex{mesh: mesh}
}

// Built reports whether Build has completed on a non-degenerate mesh.
func (s *SpatialIndex) Built() bool {
	return s.built
}

// Build computes the grid from the mesh's triangle bounding boxes. Each
// triangle is registered in every cell its AABB overlaps. Empty or
// degenerate (zero-extent) meshes leave the index unbuilt.
func (s *SpatialIndex) Build() {
	s.built = false
	s.cells = nil
	if s.mesh.IsEmpty() {
		return
	}

	size := s.mesh.Bounds.Max.Sub(s.mesh.Bounds.Min)
	extent := math32.Max(size.X, math32.Max(size.Y, size.Z))
	if extent <= 0 {
		return
	}

	// Per-axis cell count targeting constant average occupancy.
	n := int(math.Cbrt(float64(len(s.mesh.Triangles)) / targetCellOccupancy))
	if n < 1 {
		n = 1
	}
	s.cellSize = extent / float32(n)
	s.origin = s.mesh.Bounds.Min
	s.cells = make(map[[3]int][]int)

	for i := range s.mesh.Triangles {
		a, b, c := s.mesh.TriangleVertices(i)
		lo := s.cellOf(minVec(a, minVec(b, c)))
		hi := s.cellOf(maxVec(a, maxVec(b, c)))
		for x := lo[0]; x <= hi[0]; x++ {
			for y := lo[1]; y <= hi[1]; y++ {
				for z := lo[2]; z <= hi[2]; z++ {
					key := [3]int{x, y, z}
					s.cells[key] = append(s.cells[key], i)
				}
			}
		}
	}
	s.built = true

	Logger().Debug("spatial index built",
		slog.Int("triangles", len(s.mesh.Triangles)),
		slog.Int("cells", len(s.cells)),
		slog.Float64("cellSize", float64(s.cellSize)))
}

// FindTrianglesInRadius returns the indices of triangles near point. The
// result is a deliberately generous superset: any triangle with a vertex or
// centroid within 2*radius is included, and the caller performs exact
// distance filtering. The list is duplicate-free; it is empty when the index
// is not built.
func (s *SpatialIndex) FindTrianglesInRadius(point math32.Vector3, radius float32) []int {
	if !s.built {
		return nil
	}

	r := math32.Vec3(radius, radius, radius)
	lo := s.cellOf(point.Sub(r))
	hi := s.cellOf(point.Add(r))

	limit := 2 * radius
	var out []int
	seen := make(map[int]bool)
	for x := lo[0]; x <= hi[0]; x++ {
		for y := lo[1]; y <= hi[1]; y++ {
			for z := lo[2]; z <= hi[2]; z++ {
				for _, ti := range s.cells[[3]int{x, y, z}] {
					if seen[ti] {
						continue
					}
					seen[ti] = true
					if s.triangleNear(ti, point, limit) {
						out = append(out, ti)
					}
				}
			}
		}
	}
	return out
}

// Raycast finds the closest triangle hit by the ray from origin along dir.
// It marches along the ray in steps of half a cell, testing the 3x3x3 cell
// neighborhood of each sample for ray-triangle intersections and keeping the
// closest strictly-positive hit, up to 3x the mesh radius. It returns false
// when the index is unbuilt or nothing is hit.
func (s *SpatialIndex) Raycast(origin, dir math32.Vector3) (RaycastHit, bool) {
	if !s.built {
		return RaycastHit{}, false
	}
	l := dir.Length()
	if l == 0 {
		return RaycastHit{}, false
	}
	dir = dir.MulScalar(1 / l)

	best := RaycastHit{Triangle: -1, Distance: math.MaxFloat32}
	step := s.cellSize * 0.5
	maxT := s.mesh.Radius * 3
	tested := make(map[int]bool)

	for t := float32(0); t <= maxT; t += step {
		// Once a hit exists, samples beyond it cannot yield a closer one.
		if best.Triangle >= 0 && t > best.Distance+step {
			break
		}
		sample := origin.Add(dir.MulScalar(t))
		cell := s.cellOf(sample)
		for x := cell[0] - 1; x <= cell[0]+1; x++ {
			for y := cell[1] - 1; y <= cell[1]+1; y++ {
				for z := cell[2] - 1; z <= cell[2]+1; z++ {
					for _, ti := range s.cells[[3]int{x, y, z}] {
						if tested[ti] {
							continue
						}
						tested[ti] = true
						a, b, c := s.mesh.TriangleVertices(ti)
						if d, ok := rayTriangle(origin, dir, a, b, c); ok && d < best.Distance {
							best = RaycastHit{
								Triangle: ti,
								Distance: d,
								Point:    origin.Add(dir.MulScalar(d)),
							}
						}
					}
				}
			}
		}
	}

	if best.Triangle < 0 {
		return RaycastHit{}, false
	}
	return best, true
}

// triangleNear reports whether any vertex or the centroid of triangle ti is
// within limit of point.
func (s *SpatialIndex) triangleNear(ti int, point math32.Vector3, limit float32) bool {
	a, b, c := s.mesh.TriangleVertices(ti)
	lim2 := limit * limit
	if distSq(a, point) <= lim2 || distSq(b, point) <= lim2 || distSq(c, point) <= lim2 {
		return true
	}
	centroid := a.Add(b).Add(c).MulScalar(1.0 / 3.0)
	return distSq(centroid, point) <= lim2
}

// cellOf maps a world-space point to its integer cell coordinate.
func (s *SpatialIndex) cellOf(p math32.Vector3) [3]int {
	d := p.Sub(s.origin)
	return [3]int{
		int(math.Floor(float64(d.X / s.cellSize))),
		int(math.Floor(float64(d.Y / s.cellSize))),
		int(math.Floor(float64(d.Z / s.cellSize))),
	}
}

// distSq returns the squared distance between two points.
func distSq(a, b math32.Vector3) float32 {
	d := a.Sub(b)
	return d.Dot(d)
}

func minVec(a, b math32.Vector3) math32.Vector3 {
	return math32.Vec3(math32.Min(a.X, b.X), math32.Min(a.Y, b.Y), math32.Min(a.Z, b.Z))
}

func maxVec(a, b math32.Vector3) math32.Vector3 {
	return math32.Vec3(math32.Max(a.X, b.X), math32.Max(a.Y, b.Y), math32.Max(a.Z, b.Z))
}
