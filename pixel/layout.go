package pixel

// Layout describes the channel arrangement of a pixel. The set of
// layouts is closed: [Luma], [LumaAlpha], [Rgb], and [Rgba].
type Layout interface {
	// Channels returns the number of samples per pixel.
	Channels() int

	// Model returns a short label for the interpretation of the
	// channels, such as "RGB" or "Y".
	Model() string

	// HasAlpha reports whether the last channel is an alpha channel.
	HasAlpha() bool

	// Kind returns the ColorType family of the layout.
	Kind() ColorKind

	layout()
}

// Luma is a single grayscale channel.
type Luma struct{}

func (Luma) Channels() int   { return 1 }
func (Luma) Model() string   { return "Y" }
func (Luma) HasAlpha() bool  { return false }
func (Luma) Kind() ColorKind { return KindGray }
func (Luma) layout()         {}

// LumaAlpha is a grayscale channel followed by an alpha channel.
type LumaAlpha struct{}

func (LumaAlpha) Channels() int   { return 2 }
func (LumaAlpha) Model() string   { return "YA" }
func (LumaAlpha) HasAlpha() bool  { return true }
func (LumaAlpha) Kind() ColorKind { return KindGrayAlpha }
func (LumaAlpha) layout()         {}

// Rgb is red, green, and blue channels.
type Rgb struct{}

func (Rgb) Channels() int   { return 3 }
func (Rgb) Model() string   { return "RGB" }
func (Rgb) HasAlpha() bool  { return false }
func (Rgb) Kind() ColorKind { return KindRGB }
func (Rgb) layout()         {}

// Rgba is red, green, blue, and alpha channels.
type Rgba struct{}

func (Rgba) Channels() int   { return 4 }
func (Rgba) Model() string   { return "RGBA" }
func (Rgba) HasAlpha() bool  { return true }
func (Rgba) Kind() ColorKind { return KindRGBA }
func (Rgba) layout()         {}

// MaxChannels is the largest channel count of any Layout.
const MaxChannels = 4
