package cellbuf

// BorderCharSet names the 11 glyphs used to render box-drawing borders.
type BorderCharSet struct {
	Horiz    rune
	Vert     rune
	TL       rune
	TR       rune
	BL       rune
	BR       rune
	Cross    rune
	TeeUp    rune
	TeeDown  rune
	TeeLeft  rune
	TeeRight rune
}

// LightBorderCharSet is the default single-line box-drawing glyph set.
func LightBorderCharSet() BorderCharSet {
	return BorderCharSet{
		Horiz: '─', Vert: '│',
		TL: '┌', TR: '┐', BL: '└', BR: '┘',
		Cross: '┼', TeeUp: '┴', TeeDown: '┬', TeeLeft: '┤', TeeRight: '├',
	}
}

// HeavyBorderCharSet is a bold double-line alternative.
func HeavyBorderCharSet() BorderCharSet {
	return BorderCharSet{
		Horiz: '═', Vert: '║',
		TL: '╔', TR: '╗', BL: '╚', BR: '╝',
		Cross: '╬', TeeUp: '╩', TeeDown: '╦', TeeLeft: '╣', TeeRight: '╠',
	}
}

// Glyph selects the box-drawing character for a cell given which of its
// four cardinal neighbours are part of the same border. All-false is an
// illegal input — callers should never invoke Glyph for a cell with no
// border flags at all.
func (s BorderCharSet) Glyph(left, top, right, bottom bool) rune {
	switch {
	case left && top && right && bottom:
		return s.Cross
	case left && top && right && !bottom:
		return s.TeeUp
	case left && top && !right && bottom:
		return s.TeeLeft
	case left && !top && right && bottom:
		return s.TeeDown
	case !left && top && right && bottom:
		return s.TeeRight
	case left && top && !right && !bottom:
		return s.BR
	case left && !top && right && !bottom:
		return s.Horiz
	case left && !top && !right && bottom:
		return s.TR
	case !left && top && right && !bottom:
		return s.BL
	case !left && top && !right && bottom:
		return s.Vert
	case !left && !top && right && bottom:
		return s.TL
	case left && !top && !right && !bottom:
		return s.Horiz
	case !left && top && !right && !bottom:
		return s.Vert
	case !left && !top && right && !bottom:
		return s.Horiz
	case !left && !top && !right && bottom:
		return s.Vert
	default:
		// left==top==right==bottom==false: illegal, per spec.
		panic("cellbuf: Glyph called with no border direction set")
	}
}
