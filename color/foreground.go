package color

// ForegroundStyle pairs a color with the text effects applied on top of it.
type ForegroundStyle struct {
	Colour  Color
	Effects Effects
}

// DefaultForegroundStyle is the terminal's default color with no effects.
func DefaultForegroundStyle() ForegroundStyle {
	return ForegroundStyle{Colour: Normal()}
}

// Equals reports whether two foreground styles are identical.
func (s ForegroundStyle) Equals(other ForegroundStyle) bool {
	return s.Colour.Equals(other.Colour) && s.Effects == other.Effects
}

// Foreground pairs a foreground style with the glyph it paints. CodeUnit
// of 0 is the sentinel meaning "no foreground glyph is to be painted" —
// used when a grapheme attachment carries the visible content instead.
type Foreground struct {
	Style    ForegroundStyle
	CodeUnit rune
}

// NoGlyph reports whether this Foreground carries the "nothing to paint"
// sentinel.
func (f Foreground) NoGlyph() bool { return f.CodeUnit == 0 }

// EmptyForeground returns a Foreground with the default style and the
// no-glyph sentinel.
func EmptyForeground() Foreground {
	return Foreground{Style: DefaultForegroundStyle()}
}
