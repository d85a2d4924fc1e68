package formation

import "github.com/1siamBot/rts-command/engine/geom"

// Marker is a single preview slot drawn by the renderer
type Marker struct {
	ID  int
	Pos geom.Vec2
}

// Preview holds the markers mirroring a formation while it is dragged out.
// Markers are created and destroyed only here; the renderer reads them.
type Preview struct {
	markers []Marker
	nextID  int
}

func NewPreview() *Preview {
	return &Preview{}
}

// Show replaces the current markers with one marker per position
func (p *Preview) Show(positions []geom.Vec2) {
	p.Clear()
	for _, pos := range positions {
		p.nextID++
		p.markers = append(p.markers, Marker{ID: p.nextID, Pos: pos})
	}
}

// Clear removes every marker
func (p *Preview) Clear() {
	p.markers = p.markers[:0]
}

// Markers returns the live markers. The slice is only valid until the next
// Show or Clear.
func (p *Preview) Markers() []Marker {
	return p.markers
}

// Active reports whether any marker is displayed
func (p *Preview) Active() bool {
	return len(p.markers) > 0
}
