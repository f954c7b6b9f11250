package pixel

import "fmt"

// ColorKind is the layout family of a ColorType.
type ColorKind uint8

const (
	KindGray ColorKind = iota
	KindRGB
	KindPalette
	KindGrayAlpha
	KindRGBA
)

func (k ColorKind) String() string {
	switch k {
	case KindGray:
		return "Gray"
	case KindRGB:
		return "RGB"
	case KindPalette:
		return "Palette"
	case KindGrayAlpha:
		return "GrayAlpha"
	case KindRGBA:
		return "RGBA"
	default:
		return fmt.Sprintf("ColorKind(%d)", uint8(k))
	}
}

// ColorType declares the layout and precision of decoded samples.
// Depth is the number of bits of a single sample.
type ColorType struct {
	Kind  ColorKind
	Depth uint8
}

func Gray(depth uint8) ColorType      { return ColorType{Kind: KindGray, Depth: depth} }
func RGB(depth uint8) ColorType       { return ColorType{Kind: KindRGB, Depth: depth} }
func Palette(depth uint8) ColorType   { return ColorType{Kind: KindPalette, Depth: depth} }
func GrayAlpha(depth uint8) ColorType { return ColorType{Kind: KindGrayAlpha, Depth: depth} }
func RGBA(depth uint8) ColorType      { return ColorType{Kind: KindRGBA, Depth: depth} }

// Channels returns the number of samples per pixel. A palette index
// counts as one sample.
func (c ColorType) Channels() int {
	switch c.Kind {
	case KindGray, KindPalette:
		return 1
	case KindGrayAlpha:
		return 2
	case KindRGB:
		return 3
	case KindRGBA:
		return 4
	default:
		return 0
	}
}

// BitsPerPixel returns Channels() * Depth.
func (c ColorType) BitsPerPixel() int {
	return c.Channels() * int(c.Depth)
}

func (c ColorType) String() string {
	return fmt.Sprintf("%v(%d)", c.Kind, c.Depth)
}
