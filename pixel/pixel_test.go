package pixel_test

import (
	"image/color"
	"testing"

	"deedles.dev/imgcore/pixel"
	"github.com/stretchr/testify/require"
)

func TestChannelCount(t *testing.T) {
	require.Equal(t, 1, pixel.Luma8{}.ChannelCount())
	require.Equal(t, 2, pixel.LumaAlpha8{}.ChannelCount())
	require.Equal(t, 3, pixel.Rgb8{}.ChannelCount())
	require.Equal(t, 4, pixel.Rgba8{}.ChannelCount())
	require.Equal(t, 4, pixel.Pixel[pixel.Rgba, uint16]{}.ChannelCount())
}

func TestColorType(t *testing.T) {
	require.Equal(t, pixel.Gray(8), pixel.Luma8{}.ColorType())
	require.Equal(t, pixel.GrayAlpha(8), pixel.LumaAlpha8{}.ColorType())
	require.Equal(t, pixel.RGB(16), pixel.Pixel[pixel.Rgb, uint16]{}.ColorType())
	require.Equal(t, pixel.RGBA(8), pixel.Rgba8{}.ColorType())
	require.Equal(t, "RGBA(16)", pixel.RGBA(16).String())
	require.Equal(t, "Palette(4)", pixel.Palette(4).String())
	require.Equal(t, 24, pixel.RGB(8).BitsPerPixel())
}

func TestColorModel(t *testing.T) {
	require.Equal(t, "Y", pixel.Luma8{}.ColorModel())
	require.Equal(t, "YA", pixel.LumaAlpha8{}.ColorModel())
	require.Equal(t, "RGB", pixel.Rgb8{}.ColorModel())
	require.Equal(t, "RGBA", pixel.Rgba8{}.ColorModel())
}

func TestFromChannels(t *testing.T) {
	p := pixel.FromChannels[pixel.Rgb, uint8](1, 2, 3, 4)
	require.Equal(t, []uint8{1, 2, 3}, p.Channels())
	require.Equal(t, pixel.NewRgb[uint8](1, 2, 3), p)

	l := pixel.FromChannels[pixel.Luma, uint16](7, 8, 9, 10)
	require.Equal(t, []uint16{7}, l.Channels())
}

func TestFromSlice(t *testing.T) {
	s := []uint8{10, 20, 30, 40}
	v := pixel.FromSlice[pixel.Rgba](s)
	for i := range s {
		require.Equal(t, s[i], v.At(i))
	}

	v.SetAt(1, 99)
	require.Equal(t, uint8(99), s[1])

	v.Store(pixel.NewRgba[uint8](1, 2, 3, 4))
	require.Equal(t, []uint8{1, 2, 3, 4}, s)
	require.Equal(t, pixel.NewRgba[uint8](1, 2, 3, 4), v.Pixel())

	require.Panics(t, func() { pixel.FromSlice[pixel.Rgba](s[:3]) })
	require.Panics(t, func() { pixel.FromSlice[pixel.Luma]([]uint8{}) })
	require.Panics(t, func() { pixel.FromSlice[pixel.Rgb]([]uint16{1, 2, 3, 4}) })
	require.NotPanics(t, func() { pixel.FromSlice[pixel.LumaAlpha]([]uint16{1, 2}) })
}

func TestNewWrongArity(t *testing.T) {
	require.Panics(t, func() { pixel.New[pixel.Rgb, uint8](1, 2) })
	require.Equal(t, pixel.NewLumaAlpha[uint8](5, 6), pixel.New[pixel.LumaAlpha, uint8](5, 6))
}

func TestChannelsMut(t *testing.T) {
	p := pixel.NewRgb[uint8](1, 2, 3)
	p.ChannelsMut()[2] = 42
	require.Equal(t, uint8(42), p.At(2))

	// The value form hands out a copy.
	p.Channels()[0] = 200
	require.Equal(t, uint8(1), p.At(0))

	var q pixel.Rgb8
	q.Set(p)
	require.Equal(t, p, q)
	require.Equal(t, "RGB[1 2 42]", q.String())
}

func TestBlend(t *testing.T) {
	tests := []struct {
		name     string
		dst, src pixel.Rgba8
		want     pixel.Rgba8
	}{
		{
			name: "opaque over opaque",
			dst:  pixel.NewRgba[uint8](0, 255, 0, 255),
			src:  pixel.NewRgba[uint8](255, 0, 0, 255),
			want: pixel.NewRgba[uint8](255, 0, 0, 255),
		},
		{
			name: "translucent over opaque",
			dst:  pixel.NewRgba[uint8](0, 255, 0, 255),
			src:  pixel.NewRgba[uint8](255, 0, 0, 127),
			want: pixel.NewRgba[uint8](127, 127, 0, 255),
		},
		{
			name: "translucent over translucent",
			dst:  pixel.NewRgba[uint8](0, 255, 0, 127),
			src:  pixel.NewRgba[uint8](255, 0, 0, 127),
			want: pixel.NewRgba[uint8](169, 85, 0, 190),
		},
		{
			name: "transparent over transparent",
			dst:  pixel.NewRgba[uint8](1, 2, 3, 0),
			src:  pixel.NewRgba[uint8](4, 5, 6, 0),
			want: pixel.NewRgba[uint8](1, 2, 3, 0),
		},
		{
			name: "transparent over opaque",
			dst:  pixel.NewRgba[uint8](0, 255, 0, 255),
			src:  pixel.NewRgba[uint8](200, 200, 200, 0),
			want: pixel.NewRgba[uint8](0, 255, 0, 255),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, pixel.Blended(tt.dst, tt.src))
		})
	}
}

func TestBlendWithoutAlpha(t *testing.T) {
	dst := pixel.NewRgb[uint8](1, 2, 3)
	dst.Blend(pixel.NewRgb[uint8](4, 5, 6))
	require.Equal(t, pixel.NewRgb[uint8](4, 5, 6), dst)
}

func TestBlendLumaAlpha(t *testing.T) {
	dst := pixel.NewLumaAlpha[uint8](0, 255)
	dst.Blend(pixel.NewLumaAlpha[uint8](255, 255))
	require.Equal(t, pixel.NewLumaAlpha[uint8](255, 255), dst)
}

func TestRGBA(t *testing.T) {
	r, g, b, a := pixel.NewRgba[uint8](0xFF, 0x80, 0x00, 0xFF).RGBA()
	require.Equal(t, [4]uint32{0xFFFF, 0x8080, 0, 0xFFFF}, [4]uint32{r, g, b, a})

	r, g, b, a = pixel.NewLuma[uint16](0x1234).RGBA()
	require.Equal(t, [4]uint32{0x1234, 0x1234, 0x1234, 0xFFFF}, [4]uint32{r, g, b, a})

	r, g, b, a = pixel.NewLumaAlpha[uint8](0xFF, 0).RGBA()
	require.Equal(t, [4]uint32{0, 0, 0, 0}, [4]uint32{r, g, b, a})
}

func TestFromColor(t *testing.T) {
	require.Equal(t,
		pixel.NewRgba[uint8](0x12, 0x34, 0x56, 0xFF),
		pixel.FromColor[pixel.Rgba, uint8](color.NRGBA{0x12, 0x34, 0x56, 0xFF}),
	)
	require.Equal(t,
		pixel.NewRgb[uint8](0x12, 0x34, 0x56),
		pixel.FromColor[pixel.Rgb, uint8](color.NRGBA{0x12, 0x34, 0x56, 0xFF}),
	)
	require.Equal(t,
		pixel.NewLuma[uint8](0xFF),
		pixel.FromColor[pixel.Luma, uint8](color.White),
	)
	require.Equal(t,
		pixel.NewLuma[uint16](0x8080),
		pixel.Model[pixel.Luma, uint16]().Convert(color.Gray{Y: 0x80}),
	)
}
