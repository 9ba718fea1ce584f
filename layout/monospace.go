package layout

import (
	"image/color"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Align is the horizontal alignment of lines within the box.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
	AlignJustify
)

const (
	DefaultFontSize         = 40
	DefaultLineHeight       = 1.16
	DefaultFontSizeFraction = 0.222

	// fontSizeMult scales the font size to the height of a line box.
	fontSizeMult = 1.13
)

// Config configures a Monospace layout. Zero fields take defaults.
type Config struct {
	FontSize         float64
	CellWidth        float64 // advance of a narrow cell; 0.6em by default
	LineHeight       float64
	FontSizeFraction float64
	CharSpacing      float64 // in thousandths of an em, may be negative
	Width            float64 // wrap width; 0 disables wrapping
	Align            Align
	Fill             color.Color
}

type mline struct {
	runes  []rune
	bounds []CharBound
	width  float64

	// missing is the number of text characters consumed by the break
	// after this line: 1 for a newline or a swallowed space.
	missing int
	end     bool
}

// Monospace lays out text on a grid of fixed-width cells. East Asian
// wide characters take two cells. Paragraphs wrap at Unicode line
// break opportunities when Config.Width is set.
type Monospace struct {
	cfg    Config
	lines  []mline
	width  float64
	styles map[Location]Style
}

var _ Layout = (*Monospace)(nil)

// NewMonospace lays out text.
func NewMonospace(text string, cfg Config) *Monospace {
	if cfg.FontSize <= 0 {
		cfg.FontSize = DefaultFontSize
	}
	if cfg.CellWidth <= 0 {
		cfg.CellWidth = cfg.FontSize * 0.6
	}
	if cfg.LineHeight <= 0 {
		cfg.LineHeight = DefaultLineHeight
	}
	if cfg.FontSizeFraction <= 0 {
		cfg.FontSizeFraction = DefaultFontSizeFraction
	}
	if cfg.Fill == nil {
		cfg.Fill = color.Black
	}

	m := &Monospace{cfg: cfg, styles: make(map[Location]Style)}
	for _, p := range strings.Split(text, "\n") {
		m.wrap(p)
	}
	for _, l := range m.lines {
		if l.width > m.width {
			m.width = l.width
		}
	}
	if cfg.Width > m.width {
		m.width = cfg.Width
	}
	if cfg.Align == AlignJustify {
		m.justify()
	}
	return m
}

func (m *Monospace) spacing() float64 {
	return m.cfg.FontSize * m.cfg.CharSpacing / 1000
}

func (m *Monospace) advance(r rune) float64 {
	cells := runewidth.RuneWidth(r)
	if cells < 1 {
		cells = 1
	}
	return m.cfg.CellWidth*float64(cells) + m.spacing()
}

func (m *Monospace) measure(rs []rune) float64 {
	w := 0.0
	for _, r := range rs {
		w += m.advance(r)
	}
	return w
}

// wrap appends the lines of one paragraph.
func (m *Monospace) wrap(p string) {
	if m.cfg.Width <= 0 || p == "" {
		m.push([]rune(p), 1, true)
		return
	}

	var cur []rune
	curw := 0.0
	state := -1
	for rest := p; len(rest) > 0; {
		var seg string
		seg, rest, _, state = uniseg.FirstLineSegmentInString(rest, state)
		sr := []rune(seg)
		visible := m.measure([]rune(strings.TrimRightFunc(seg, unicode.IsSpace)))
		if len(cur) > 0 && curw+visible > m.cfg.Width {
			missing := 0
			if cur[len(cur)-1] == ' ' {
				cur = cur[:len(cur)-1]
				missing = 1
			}
			m.push(cur, missing, false)
			cur, curw = nil, 0
		}
		cur = append(cur, sr...)
		curw += m.measure(sr)
	}
	m.push(cur, 1, true)
}

func (m *Monospace) push(rs []rune, missing int, end bool) {
	l := mline{runes: rs, missing: missing, end: end}
	m.bound(&l, 0)
	m.lines = append(m.lines, l)
}

// bound measures l, widening each space by extra.
func (m *Monospace) bound(l *mline, extra float64) {
	l.bounds = make([]CharBound, 0, len(l.runes)+1)
	x := 0.0
	for _, r := range l.runes {
		w := m.advance(r)
		if r == ' ' {
			w += extra
		}
		l.bounds = append(l.bounds, CharBound{Left: x, Width: w})
		x += w
	}
	l.bounds = append(l.bounds, CharBound{Left: x})
	l.width = x
}

// justify stretches every line that is not the end of its paragraph
// to the box width by widening its spaces.
func (m *Monospace) justify() {
	for i := range m.lines {
		l := &m.lines[i]
		if l.end || l.width >= m.width {
			continue
		}
		spaces := strings.Count(string(l.runes), " ")
		if spaces == 0 {
			continue
		}
		m.bound(l, (m.width-l.width)/float64(spaces))
	}
}

func (m *Monospace) valid(line int) bool { return line >= 0 && line < len(m.lines) }

// SetStyle overrides the style of one character. Non-zero fields of s
// replace the defaults. Widths are not affected.
func (m *Monospace) SetStyle(line, char int, s Style) {
	m.styles[Location{Line: line, Char: char}] = s
}

func (m *Monospace) Metrics() Metrics {
	h := 0.0
	for i := range m.lines {
		lh := m.HeightOfLine(i)
		if i == len(m.lines)-1 {
			lh /= m.cfg.LineHeight
		}
		h += lh
	}
	return Metrics{
		Width:            m.width,
		Height:           h,
		LineHeight:       m.cfg.LineHeight,
		FontSizeFraction: m.cfg.FontSizeFraction,
		CharSpacing:      m.spacing(),
		Justify:          m.cfg.Align == AlignJustify,
	}
}

func (m *Monospace) LineCount() int { return len(m.lines) }

func (m *Monospace) LineLength(line int) int {
	if !m.valid(line) {
		return 0
	}
	return len(m.lines[line].runes)
}

// HeightOfLine is the tallest font size on the line times the line
// height.
func (m *Monospace) HeightOfLine(line int) float64 {
	if !m.valid(line) {
		return 0
	}
	tallest := m.cfg.FontSize
	for c := range m.lines[line].runes {
		if fs := m.StyleAt(line, c).FontSize; fs > tallest {
			tallest = fs
		}
	}
	return tallest * m.cfg.LineHeight * fontSizeMult
}

func (m *Monospace) LineWidth(line int) float64 {
	if !m.valid(line) {
		return 0
	}
	return m.lines[line].width
}

func (m *Monospace) LineLeftOffset(line int) float64 {
	if !m.valid(line) {
		return 0
	}
	slack := m.width - m.lines[line].width
	switch m.cfg.Align {
	case AlignCenter:
		return slack / 2
	case AlignRight:
		return slack
	}
	return 0
}

func (m *Monospace) IsEndOfWrapping(line int) bool {
	if !m.valid(line) {
		return true
	}
	return m.lines[line].end
}

func (m *Monospace) CharBounds(line int) []CharBound {
	if !m.valid(line) {
		return nil
	}
	return m.lines[line].bounds
}

func (m *Monospace) Location(index int) Location {
	for i, l := range m.lines {
		if index <= len(l.runes) {
			return Location{Line: i, Char: index}
		}
		index -= len(l.runes) + l.missing
	}
	last := len(m.lines) - 1
	return Location{Line: last, Char: len(m.lines[last].runes)}
}

func (m *Monospace) StyleAt(line, char int) Style {
	s := Style{FontSize: m.cfg.FontSize, Fill: m.cfg.Fill}
	o, ok := m.styles[Location{Line: line, Char: char}]
	if !ok {
		return s
	}
	if o.FontSize != 0 {
		s.FontSize = o.FontSize
	}
	if o.Fill != nil {
		s.Fill = o.Fill
	}
	if o.DeltaY != 0 {
		s.DeltaY = o.DeltaY
	}
	return s
}
