//go:build go1.24

package tiff_test

import (
	"bytes"
	"testing"

	"deedles.dev/imgcore/tiff"
	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/require"
)

func BenchmarkReadImage(b *testing.B) {
	const size = 256

	pix := make([]byte, size*size*3)
	for i := range pix {
		pix[i] = byte(i / 3)
	}
	var strip bytes.Buffer
	zw := zlib.NewWriter(&strip)
	_, err := zw.Write(pix)
	require.Nil(b, err)
	require.Nil(b, zw.Close())

	fields := set(baseFields(size, size, []uint32{8, 8, 8}, 2), short(tiff.TagCompression, 8))
	data := file{fields: fields, strips: [][]byte{strip.Bytes()}}.bytes()

	for b.Loop() {
		d, _ := tiff.NewDecoder(bytes.NewReader(data))
		d.ReadImage()
	}
}
