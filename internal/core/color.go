package core

// Color is a logical foreground colour for a screen cell.
// Platforms map it to real terminal colours.
type Color uint8

const (
	ColorDefault Color = iota
	ColorGray
	ColorWhite
	ColorBrightWhite
	ColorYellow
	ColorBrightYellow
	ColorOrange
	ColorRed
	ColorBrightRed
	ColorMagenta
	ColorBrightMagenta
	ColorCyan
	ColorBrightCyan
	ColorGreen
	ColorBrightGreen
	ColorBlue
)

// tileColors cycles as tile values grow: 2, 4, 8, ... 2048 and beyond.
var tileColors = []Color{
	ColorWhite,         // 2
	ColorBrightWhite,   // 4
	ColorYellow,        // 8
	ColorOrange,        // 16
	ColorRed,           // 32
	ColorBrightRed,     // 64
	ColorBrightYellow,  // 128
	ColorGreen,         // 256
	ColorBrightGreen,   // 512
	ColorCyan,          // 1024
	ColorBrightMagenta, // 2048
}

// TileColor returns the colour used to draw a tile with the given value.
// Values past the palette reuse it from the blue end.
func TileColor(val int) Color {
	if val < 2 {
		return ColorDefault
	}
	step := 0
	for v := val; v > 2; v >>= 1 {
		step++
	}
	if step < len(tileColors) {
		return tileColors[step]
	}
	extra := []Color{ColorBlue, ColorBrightCyan, ColorMagenta}
	return extra[(step-len(tileColors))%len(extra)]
}
