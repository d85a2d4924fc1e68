package formation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/1siamBot/rts-command/engine/geom"
)

// FormatOffsets encodes offsets as "x,y;x,y;..." so a formation can be
// copied out of the game and pasted back.
func FormatOffsets(offsets []geom.Vec2) string {
	var sb strings.Builder
	for i, o := range offsets {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(strconv.FormatFloat(o.X, 'g', -1, 64))
		sb.WriteByte(',')
		sb.WriteString(strconv.FormatFloat(o.Y, 'g', -1, 64))
	}
	return sb.String()
}

// ParseOffsets decodes the FormatOffsets form. Whitespace around entries is
// ignored; an empty string yields no offsets.
func ParseOffsets(s string) ([]geom.Vec2, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ";")
	out := make([]geom.Vec2, 0, len(parts))
	for i, part := range parts {
		xs, ys, ok := strings.Cut(strings.TrimSpace(part), ",")
		if !ok {
			return nil, fmt.Errorf("offset %d: missing comma in %q", i, part)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
		if err != nil {
			return nil, fmt.Errorf("offset %d: %w", i, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
		if err != nil {
			return nil, fmt.Errorf("offset %d: %w", i, err)
		}
		out = append(out, geom.Vec2{X: x, Y: y})
	}
	return out, nil
}
