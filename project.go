package meshpaint

import (
	"image"
	"image/color"

	"cogentcore.org/core/math32"
	"golang.org/x/image/draw"

	"github.com/gogpu/meshpaint/internal/parallel"
)

// ProjectTexture assigns colors to every UV-mapped triangle of the mesh by
// sampling img through the triangles' texture coordinates. palette maps
// color indices to representative colors; each sample takes the index of
// the nearest palette entry (squared RGB distance). Quantizing an arbitrary
// texture down to a palette is the caller's concern; this routine only
// projects an already-quantized image onto the mesh.
//
// Each triangle is uniformly subdivided to the projection depth, sampled at
// leaf centroids, and uniformly colored sibling groups are merged back, so
// flat areas of the texture stay cheap. Triangles without UVs keep their
// current partition.
//
// Projection parallelizes across triangles: each triangle's output depends
// only on its own UV footprint and the shared read-only working image, so
// writes are disjoint and need no locking.
func ProjectTexture(mesh *Mesh, img image.Image, palette []color.RGBA, opts ...ProjectOption) {
	if mesh.IsEmpty() || img == nil || len(palette) == 0 {
		return
	}
	o := defaultProjectOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.depth < 1 {
		o.depth = 1
	}
	if o.depth > 8 {
		o.depth = 8
	}

	work := workingImage(img, o.maxSize)

	parallel.ForEach(len(mesh.Triangles), o.workers, func(i int) {
		t := &mesh.Triangles[i]
		if !t.HasUV {
			return
		}
		t.Leaves = projectTriangle(work, palette, t.UV, o.depth)
	})
}

// workingImage converts img to RGBA, downscaling it so neither axis exceeds
// maxSize. Sampling at leaf centroids never needs more resolution than the
// subdivision depth can express, and the bounded copy keeps projection
// memory flat for huge source textures.
func workingImage(img image.Image, maxSize int) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize > 0 && (w > maxSize || h > maxSize) {
		if w >= h {
			h = h * maxSize / w
			w = maxSize
		} else {
			w = w * maxSize / h
			h = maxSize
		}
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// projectTriangle builds one triangle's partition: uniform subdivision to
// depth, a palette sample per leaf, then a merge pass that collapses
// uniformly colored sibling groups.
func projectTriangle(img *image.RGBA, palette []color.RGBA, uv [3]math32.Vector2, depth int) []LeafRegion {
	sample := func(bc Barycentric) int {
		p := uv[0].MulScalar(bc.U).Add(uv[1].MulScalar(bc.V)).Add(uv[2].MulScalar(bc.W))
		return nearestPaletteIndex(sampleUV(img, p), palette)
	}
	root := WholeTriangleLeaf(0)
	leaves := projectRegion(root, depth, sample)
	if len(leaves) == 0 {
		return []LeafRegion{WholeTriangleLeaf(0)}
	}
	return leaves
}

// projectRegion recursively samples a region. A region whose four children
// all resolve to one uniformly colored leaf collapses back into a single
// leaf, mirroring the codec's pruning rule.
func projectRegion(region LeafRegion, depth int, sample func(Barycentric) int) []LeafRegion {
	if depth == 0 {
		region.Color = sample(region.Centroid())
		return []LeafRegion{region}
	}
	var out []LeafRegion
	for _, child := range region.Subdivide() {
		out = append(out, projectRegion(child, depth-1, sample)...)
	}
	if c, uniform := uniformColor(out); uniform {
		region.Color = c
		return []LeafRegion{region}
	}
	return out
}

// sampleUV reads the working image at texture coordinate p, with V running
// bottom-up as in mesh formats. Coordinates are clamped to the image.
func sampleUV(img *image.RGBA, p math32.Vector2) color.RGBA {
	b := img.Bounds()
	x := b.Min.X + int(p.X*float32(b.Dx()-1)+0.5)
	y := b.Min.Y + int((1-p.Y)*float32(b.Dy()-1)+0.5)
	if x < b.Min.X {
		x = b.Min.X
	}
	if x >= b.Max.X {
		x = b.Max.X - 1
	}
	if y < b.Min.Y {
		y = b.Min.Y
	}
	if y >= b.Max.Y {
		y = b.Max.Y - 1
	}
	return img.RGBAAt(x, y)
}

// nearestPaletteIndex returns the index of the palette entry closest to c
// by squared RGB distance.
func nearestPaletteIndex(c color.RGBA, palette []color.RGBA) int {
	best := 0
	bestD := paletteDist(c, palette[0])
	for i, p := range palette[1:] {
		if d := paletteDist(c, p); d < bestD {
			best, bestD = i+1, d
		}
	}
	return best
}

func paletteDist(a, b color.RGBA) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}
