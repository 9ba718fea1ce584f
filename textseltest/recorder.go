package textseltest

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/rjkroege/textsel/overlay"
	"golang.org/x/image/math/f64"
)

// Op is one operation captured by a Recorder.
type Op struct {
	Kind   string // "save", "restore", "transform", "clear" or "fill"
	Rect   overlay.Rect
	Fill   color.Color
	Alpha  float64
	Matrix f64.Aff3 // transform in effect (or applied, for "transform")
}

func (o Op) String() string {
	switch o.Kind {
	case "fill":
		return fmt.Sprintf("fill %s %v alpha %.3g", fmtRect(o.Rect), fmtColor(o.Fill), o.Alpha)
	case "clear":
		return "clear " + fmtRect(o.Rect)
	case "transform":
		return fmt.Sprintf("transform %v", o.Matrix)
	}
	return o.Kind
}

func fmtRect(r overlay.Rect) string {
	return fmt.Sprintf("(%.4g,%.4g %.4gx%.4g)", r.X, r.Y, r.W, r.H)
}

func fmtColor(c color.Color) string {
	if c == nil {
		return "nil"
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}

// Recorder is an overlay.Context that draws nothing and remembers
// every call.
type Recorder struct {
	overlay.Stack
	Ops []Op
}

var _ overlay.Context = (*Recorder)(nil)

func (r *Recorder) Save() {
	r.Stack.Save()
	r.Ops = append(r.Ops, Op{Kind: "save"})
}

func (r *Recorder) Restore() {
	r.Stack.Restore()
	r.Ops = append(r.Ops, Op{Kind: "restore"})
}

func (r *Recorder) Transform(m f64.Aff3) {
	r.Stack.Transform(m)
	r.Ops = append(r.Ops, Op{Kind: "transform", Matrix: m})
}

func (r *Recorder) ClearRect(rect overlay.Rect) {
	r.Ops = append(r.Ops, Op{Kind: "clear", Rect: rect, Matrix: r.Current().Matrix})
}

func (r *Recorder) FillRect(rect overlay.Rect) {
	st := r.Current()
	r.Ops = append(r.Ops, Op{Kind: "fill", Rect: rect, Fill: st.Fill, Alpha: st.Alpha, Matrix: st.Matrix})
}

// Fills returns the recorded fill operations.
func (r *Recorder) Fills() []Op { return r.filter("fill") }

// Clears returns the recorded clear operations.
func (r *Recorder) Clears() []Op { return r.filter("clear") }

func (r *Recorder) filter(kind string) []Op {
	var ops []Op
	for _, o := range r.Ops {
		if o.Kind == kind {
			ops = append(ops, o)
		}
	}
	return ops
}

// Reset forgets the recorded operations. The state stack is kept.
func (r *Recorder) Reset() { r.Ops = nil }

// String renders the recorded operations one per line.
func (r *Recorder) String() string {
	var sb strings.Builder
	for _, o := range r.Ops {
		sb.WriteString(o.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
