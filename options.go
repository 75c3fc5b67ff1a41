package meshpaint

// BrushOption configures a Brush during creation.
//
// Example:
//
//	// Flat coloring without refinement, ignoring facing direction:
//	brush := meshpaint.NewBrush(mesh, index,
//	    meshpaint.WithAutoSubdivide(false),
//	    meshpaint.WithNormalMasking(false))
type BrushOption func(*Brush)

// WithAutoSubdivide controls whether ApplyPaint refines partially covered
// leaves. When disabled, any touched leaf takes the tool at its current
// depth, giving coarse but fast strokes.
func WithAutoSubdivide(enabled bool) BrushOption {
	return func(b *Brush) {
		b.autoSubdivide = enabled
	}
}

// WithNormalMasking controls whether candidate triangles facing away from
// the brush normal are skipped. Disable it to paint through thin walls.
func WithNormalMasking(enabled bool) BrushOption {
	return func(b *Brush) {
		b.normalMasking = enabled
	}
}

// HistoryOption configures a History during creation.
type HistoryOption func(*History)

// WithCapacity sets the maximum number of strokes kept on the undo stack;
// older strokes are discarded first. Zero or negative means unbounded.
func WithCapacity(n int) HistoryOption {
	return func(h *History) {
		h.capacity = n
	}
}

// ProjectOption configures a texture projection.
type ProjectOption func(*projectOptions)

// projectOptions holds optional configuration for ProjectTexture.
type projectOptions struct {
	workers int
	depth   int
	maxSize int
}

// defaultProjectOptions returns the defaults used by ProjectTexture.
func defaultProjectOptions() projectOptions {
	return projectOptions{
		workers: 0,   // parallel.ForEach picks GOMAXPROCS
		depth:   4,   // 256 candidate leaves per triangle before merging
		maxSize: 512, // working texture bound, per axis
	}
}

// WithWorkers sets the number of goroutines used to project triangles.
// Zero or negative uses GOMAXPROCS.
func WithWorkers(n int) ProjectOption {
	return func(o *projectOptions) {
		o.workers = n
	}
}

// WithProjectDepth sets the uniform subdivision depth sampled per triangle.
// Values outside [1, 8] are clamped.
func WithProjectDepth(d int) ProjectOption {
	return func(o *projectOptions) {
		o.depth = d
	}
}

// WithMaxTextureSize bounds the working copy of the texture, per axis.
// Larger sources are downscaled before sampling.
func WithMaxTextureSize(n int) ProjectOption {
	return func(o *projectOptions) {
		o.maxSize = n
	}
}
