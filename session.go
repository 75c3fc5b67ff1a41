package meshpaint

// Session carries source-document metadata a loader needs to round-trip a
// painted mesh faithfully: which attribute held the wire strings and how
// many material slots the document declares. It is a plain value passed
// explicitly by the caller rather than kept as process-wide mutable state,
// so two documents can be open at once without trampling each other.
type Session struct {
	// WireAttribute is the name of the per-triangle attribute holding the
	// codec's output in the source document.
	WireAttribute string

	// ColorCount is the number of material slots the document declares.
	// Painting uses 0-based indices below this count.
	ColorCount int
}

// NewSession returns a session with the ecosystem's conventional defaults.
func NewSession() Session {
	return Session{
		WireAttribute: "paint_color",
		ColorCount:    2,
	}
}
