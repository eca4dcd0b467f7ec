// Package graph implements the piecewise response curves used by dynamic
// overhang speed, fan and flow settings.
//
// A curve maps a normalized input in [0, 100] to an output percentage.
// Only the points between Begin (inclusive) and End (exclusive) are active;
// points outside that window are kept so a curve can be edited without
// losing data.
package graph

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Type selects how values between points are computed.
type Type int

const (
	// Linear joins consecutive points with straight segments.
	Linear Type = iota
	// Square holds the value of the previous point until the next one.
	Square
)

// String returns the serialized name of the type.
func (t Type) String() string {
	switch t {
	case Linear:
		return "linear"
	case Square:
		return "square"
	}
	return "Type(" + strconv.Itoa(int(t)) + ")"
}

// Point is one (x, y) sample of a curve.
type Point struct {
	X, Y float64
}

// Data is a response curve.
type Data struct {
	Points []Point
	Begin  int
	End    int
	Type   Type
}

// ErrInvalid is returned when a curve text cannot be parsed.
var ErrInvalid = errors.New("graph: invalid curve")

// New returns a linear curve using all given points.
func New(points ...Point) Data {
	return Data{Points: points, Begin: 0, End: len(points), Type: Linear}
}

// Active returns the points in the [Begin, End) window.
func (d Data) Active() []Point {
	if d.Begin < 0 || d.End > len(d.Points) || d.Begin >= d.End {
		return nil
	}
	return d.Points[d.Begin:d.End]
}

// Clone returns a deep copy.
func (d Data) Clone() Data {
	d.Points = slices.Clone(d.Points)
	return d
}

// Equal reports deep equality of two curves.
func (d Data) Equal(o Data) bool {
	return d.Compare(o) == 0
}

// Compare orders curves by type, window and then points lexicographically.
func (d Data) Compare(o Data) int {
	if c := cmp.Compare(int(d.Type), int(o.Type)); c != 0 {
		return c
	}
	if c := cmp.Compare(d.Begin, o.Begin); c != 0 {
		return c
	}
	if c := cmp.Compare(d.End, o.End); c != 0 {
		return c
	}
	return slices.CompareFunc(d.Points, o.Points, func(a, b Point) int {
		if c := cmp.Compare(a.X, b.X); c != 0 {
			return c
		}
		return cmp.Compare(a.Y, b.Y)
	})
}

// Normalized returns a copy whose active window starts at x=0 and ends at
// y=100: a (0,0) point is inserted when the first x is not 0, a (100,100)
// point is appended when the last x is not 100, and the first x and last y
// are then forced to those values.
func (d Data) Normalized() Data {
	n := d.Clone()
	if len(n.Active()) == 0 {
		return New(Point{0, 0}, Point{100, 100})
	}
	if n.Points[n.Begin].X != 0 {
		n.Points = slices.Insert(n.Points, n.Begin, Point{0, 0})
		n.End++
	}
	if n.Points[n.End-1].X != 100 {
		n.Points = slices.Insert(n.Points, n.End, Point{100, 100})
		n.End++
	}
	n.Points[n.Begin].X = 0
	n.Points[n.End-1].Y = 100
	return n
}

// Interpolate evaluates the curve at x. Inputs outside the active range
// clamp to the first or last point. An empty curve is the identity.
func (d Data) Interpolate(x float64) float64 {
	pts := d.Active()
	switch {
	case len(pts) == 0:
		return x
	case x <= pts[0].X:
		return pts[0].Y
	case x >= pts[len(pts)-1].X:
		return pts[len(pts)-1].Y
	}
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		if x > b.X {
			continue
		}
		if d.Type == Square || b.X == a.X {
			if x == b.X {
				return b.Y
			}
			return a.Y
		}
		return a.Y + (b.Y-a.Y)*(x-a.X)/(b.X-a.X)
	}
	return pts[len(pts)-1].Y
}

// MarshalText encodes the curve as "type;begin;end;x:y,x:y,...".
func (d Data) MarshalText() ([]byte, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s;%d;%d;", d.Type, d.Begin, d.End)
	for i, p := range d.Points {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatFloat(p.X, 'g', -1, 64))
		sb.WriteByte(':')
		sb.WriteString(strconv.FormatFloat(p.Y, 'g', -1, 64))
	}
	return []byte(sb.String()), nil
}

// UnmarshalText decodes either the full "type;begin;end;points" form or a
// bare "x:y,x:y" point list, which activates every point with linear
// interpolation.
func (d *Data) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	parts := strings.Split(s, ";")
	var out Data
	switch len(parts) {
	case 1:
		pts, err := parsePoints(parts[0])
		if err != nil {
			return err
		}
		out = New(pts...)
	case 4:
		pts, err := parsePoints(parts[3])
		if err != nil {
			return err
		}
		out.Points = pts
		switch strings.TrimSpace(parts[0]) {
		case "linear", "":
			out.Type = Linear
		case "square":
			out.Type = Square
		default:
			return fmt.Errorf("%w: unknown type %q", ErrInvalid, parts[0])
		}
		if out.Begin, err = strconv.Atoi(strings.TrimSpace(parts[1])); err != nil {
			return fmt.Errorf("%w: begin: %w", ErrInvalid, err)
		}
		if out.End, err = strconv.Atoi(strings.TrimSpace(parts[2])); err != nil {
			return fmt.Errorf("%w: end: %w", ErrInvalid, err)
		}
		if out.Begin < 0 || out.End > len(pts) || out.Begin > out.End {
			return fmt.Errorf("%w: window [%d, %d) outside %d points", ErrInvalid, out.Begin, out.End, len(pts))
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	*d = out
	return nil
}

func parsePoints(s string) ([]Point, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var pts []Point
	for _, item := range strings.Split(s, ",") {
		xs, ys, ok := strings.Cut(strings.TrimSpace(item), ":")
		if !ok {
			return nil, fmt.Errorf("%w: point %q", ErrInvalid, item)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: point %q: %w", ErrInvalid, item, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: point %q: %w", ErrInvalid, item, err)
		}
		if len(pts) > 0 && x < pts[len(pts)-1].X {
			return nil, fmt.Errorf("%w: x values must not decrease at %q", ErrInvalid, item)
		}
		pts = append(pts, Point{X: x, Y: y})
	}
	return pts, nil
}
