package viewport

import (
	"strings"

	"github.com/duskterm/termcore/color"
	"github.com/duskterm/termcore/escape"
)

// sgrTransition computes the minimal SGR bytes needed to move from
// (from, fromBg) to (to, toBg):
//
//   - If the effect sets are equal, only the colour parameters that
//     actually changed are emitted, each as its own "CSI … m" — this is
//     the common case (plain text colour changes) and keeps every such
//     write to a single parameter.
//   - If the new effect set is empty, a single reset ("CSI 0 …") is
//     emitted instead of one "off" code per vanishing effect, followed
//     by the non-default fg/bg parameters in the same sequence, since a
//     bare reset already clears colour too.
//   - Otherwise, one sequence carries the changed colour parameters plus
//     an "on" code for every effect gained and an "off" code for every
//     effect lost.
func sgrTransition(from color.ForegroundStyle, fromBg color.Color, to color.ForegroundStyle, toBg color.Color) string {
	fgChanged := !from.Colour.Equals(to.Colour)
	bgChanged := !fromBg.Equals(toBg)

	if to.Effects == from.Effects {
		if !fgChanged && !bgChanged {
			return ""
		}
		var out strings.Builder
		if fgChanged {
			out.WriteString(escape.SGR([]string{to.Colour.FgParam()}))
		}
		if bgChanged {
			out.WriteString(escape.SGR([]string{toBg.BgParam()}))
		}
		return out.String()
	}

	if to.Effects == 0 {
		params := []string{"0"}
		if to.Colour.Kind() != color.KindNormal {
			params = append(params, to.Colour.FgParam())
		}
		if toBg.Kind() != color.KindNormal {
			params = append(params, toBg.BgParam())
		}
		return escape.SGR(params)
	}

	var params []string
	if fgChanged {
		params = append(params, to.Colour.FgParam())
	}
	if bgChanged {
		params = append(params, toBg.BgParam())
	}
	to.Effects.Each(func(f color.Effects) {
		if !from.Effects.Has(f) {
			params = append(params, color.OnCode(f))
		}
	})
	from.Effects.Each(func(f color.Effects) {
		if !to.Effects.Has(f) {
			params = append(params, color.OffCode(f))
		}
	})
	if len(params) == 0 {
		return ""
	}
	return escape.SGR(params)
}
