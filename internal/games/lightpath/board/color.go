package board

import "github.com/vovakirdan/tui-lightpath/internal/core"

// StrengthColor maps a light strength to a bead color.
// The mapping is monotonic: base at 0, full white at maxStrength, and each
// step in between is never darker than the one below it.
func StrengthColor(strength, maxStrength int, base core.RGB) core.RGB {
	if maxStrength <= 0 || strength <= 0 {
		return base
	}
	if strength >= maxStrength {
		return core.ColorWhite
	}
	return base.Lerp(core.ColorWhite, float64(strength)/float64(maxStrength))
}
