package color

// Effects is a bitset over the text effects a ForegroundStyle may carry.
type Effects uint16

const (
	EffectIntense Effects = 1 << iota
	EffectFaint
	EffectItalic
	EffectUnderline
	EffectDoubleUnderline
	EffectSlowBlink
	EffectFastBlink
	EffectCrossedOut

	effectCount = 8
)

// allEffects enumerates the bits in a stable order for iteration.
var allEffects = []Effects{
	EffectIntense, EffectFaint, EffectItalic, EffectUnderline,
	EffectDoubleUnderline, EffectSlowBlink, EffectFastBlink, EffectCrossedOut,
}

// Has reports whether e contains f.
func (e Effects) Has(f Effects) bool { return e&f != 0 }

// With returns e with f added.
func (e Effects) With(f Effects) Effects { return e | f }

// Without returns e with f removed.
func (e Effects) Without(f Effects) Effects { return e &^ f }

// onCode returns the SGR "on" parameter for a single effect bit.
func onCode(f Effects) string {
	switch f {
	case EffectIntense:
		return "1"
	case EffectFaint:
		return "2"
	case EffectItalic:
		return "3"
	case EffectUnderline:
		return "4"
	case EffectDoubleUnderline:
		return "21"
	case EffectSlowBlink:
		return "5"
	case EffectFastBlink:
		return "6"
	case EffectCrossedOut:
		return "9"
	default:
		return ""
	}
}

// offCode returns the SGR "off" parameter for a single effect bit.
// Intense and faint share off=22; underline and double-underline share
// off=24; slow and fast blink share off=25.
func offCode(f Effects) string {
	switch f {
	case EffectIntense, EffectFaint:
		return "22"
	case EffectItalic:
		return "23"
	case EffectUnderline, EffectDoubleUnderline:
		return "24"
	case EffectSlowBlink, EffectFastBlink:
		return "25"
	case EffectCrossedOut:
		return "29"
	default:
		return ""
	}
}

// OnCode is the exported form of onCode.
func OnCode(f Effects) string { return onCode(f) }

// OffCode is the exported form of offCode.
func OffCode(f Effects) string { return offCode(f) }

// Each calls fn for every effect bit set in e, in a stable order.
func (e Effects) Each(fn func(Effects)) {
	for _, f := range allEffects {
		if e.Has(f) {
			fn(f)
		}
	}
}
