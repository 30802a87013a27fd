package buffer

import "github.com/dgallion1/ifedit/internal/iftree"

// Marker is a live range over buffer text: its endpoints shift with
// every subsequent edit, the way editor marks do. Markers are owned by
// whoever created them; the tree core only reads them through
// iftree.LiveRange.
type Marker struct {
	sp iftree.Span
}

// NewMarker registers a marker covering sp.
func (b *Buffer) NewMarker(sp iftree.Span) *Marker {
	m := &Marker{sp: sp}
	b.markers = append(b.markers, m)
	return m
}

// CurrentSpan returns the marker's present coordinates.
func (m *Marker) CurrentSpan() iftree.Span {
	return m.sp
}
