package imgcore

import "deedles.dev/imgcore/codec"

// magicBytes is checked in order and the first match wins. A '?'
// matches any byte.
var magicBytes = []struct {
	magic  string
	format ImageFormat
}{
	{"\x89PNG\r\n\x1a\n", PNG},
	{"\xff\xd8\xff", JPEG},
	{"GIF89a", GIF},
	{"GIF87a", GIF},
	{"WEBP", WEBP},
	{"RIFF????WEBP", WEBP},
	{"II*\x00", TIFF},
	{"MM\x00*", TIFF},
	{"BM", BMP},
	{"\x00\x00\x01\x00", ICO},
}

// GuessFormat identifies the container format of an image from its
// leading bytes. TGA files have no reliable signature and are never
// detected.
func GuessFormat(buf []byte) (ImageFormat, error) {
	for _, m := range magicBytes {
		if match(m.magic, buf) {
			return m.format, nil
		}
	}
	return 0, codec.Unsupportedf("unrecognized image format")
}

func match(magic string, buf []byte) bool {
	if len(buf) < len(magic) {
		return false
	}
	for i, c := range []byte(magic) {
		if (c != '?') && (buf[i] != c) {
			return false
		}
	}
	return true
}
