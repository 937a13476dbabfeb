package core

// Color represents the feedback color the presentation layer should use
// for the input field. Uses ANSI codes for terminal compatibility.
type Color uint8

// Predefined feedback colors.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorGray
)

// String returns a human-readable name for the color.
func (c Color) String() string {
	switch c {
	case ColorDefault:
		return "default"
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorYellow:
		return "yellow"
	case ColorGray:
		return "gray"
	default:
		return "unknown"
	}
}
