package core

import (
	"fmt"
	"strconv"
	"strings"
)

// RGB is a 24-bit color for a screen cell.
// The platform renders it as a truecolor foreground or background.
type RGB uint32

// Predefined colors for HUD and overlay elements.
const (
	ColorBlack  RGB = 0x000000
	ColorWhite  RGB = 0xFFFFFF
	ColorGray   RGB = 0x8A8A8A
	ColorDim    RGB = 0x4E4E4E
	ColorCyan   RGB = 0x00D7FF
	ColorYellow RGB = 0xFFFF00
	ColorRed    RGB = 0xFF0000
	ColorGreen  RGB = 0x5FFF5F
)

// NewRGB builds a color from its channels.
func NewRGB(r, g, b uint8) RGB {
	return RGB(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// Channels splits the color into red, green and blue.
func (c RGB) Channels() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Hex returns the color as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xFFFFFF)
}

// Lerp blends from c towards to by t in [0, 1].
func (c RGB) Lerp(to RGB, t float64) RGB {
	t = Clamp(t, 0, 1)
	r1, g1, b1 := c.Channels()
	r2, g2, b2 := to.Channels()
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
	}
	return NewRGB(mix(r1, r2), mix(g1, g2), mix(b1, b2))
}

// ParseRGB parses "#rrggbb", "rrggbb" or "0xrrggbb".
func ParseRGB(s string) (RGB, error) {
	v := strings.TrimSpace(s)
	v = strings.TrimPrefix(v, "#")
	v = strings.TrimPrefix(strings.TrimPrefix(v, "0x"), "0X")
	if len(v) != 6 {
		return 0, fmt.Errorf("invalid color %q", s)
	}
	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return RGB(n), nil
}
