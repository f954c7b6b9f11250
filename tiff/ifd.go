package tiff

import "fmt"

// Tag identifies an IFD entry. The constants below cover the baseline
// and common extension tags; any other value is an unknown tag and is
// kept as is.
type Tag uint16

// Tags in the order the TIFF 6.0 reference introduces them.
const (
	TagNewSubfileType            Tag = 254
	TagImageWidth                Tag = 256
	TagImageLength               Tag = 257
	TagBitsPerSample             Tag = 258
	TagCompression               Tag = 259
	TagPhotometricInterpretation Tag = 262
	TagFillOrder                 Tag = 266
	TagImageDescription          Tag = 270
	TagStripOffsets              Tag = 273
	TagOrientation               Tag = 274
	TagSamplesPerPixel           Tag = 277
	TagRowsPerStrip              Tag = 278
	TagStripByteCounts           Tag = 279
	TagXResolution               Tag = 282
	TagYResolution               Tag = 283
	TagPlanarConfiguration       Tag = 284
	TagT4Options                 Tag = 292
	TagT6Options                 Tag = 293
	TagResolutionUnit            Tag = 296
	TagSoftware                  Tag = 305
	TagDateTime                  Tag = 306
	TagArtist                    Tag = 315
	TagPredictor                 Tag = 317
	TagColorMap                  Tag = 320
	TagTileWidth                 Tag = 322
	TagTileLength                Tag = 323
	TagTileOffsets               Tag = 324
	TagTileByteCounts            Tag = 325
	TagExtraSamples              Tag = 338
	TagSampleFormat              Tag = 339
)

var tagNames = map[Tag]string{
	TagNewSubfileType:            "NewSubfileType",
	TagImageWidth:                "ImageWidth",
	TagImageLength:               "ImageLength",
	TagBitsPerSample:             "BitsPerSample",
	TagCompression:               "Compression",
	TagPhotometricInterpretation: "PhotometricInterpretation",
	TagFillOrder:                 "FillOrder",
	TagImageDescription:          "ImageDescription",
	TagStripOffsets:              "StripOffsets",
	TagOrientation:               "Orientation",
	TagSamplesPerPixel:           "SamplesPerPixel",
	TagRowsPerStrip:              "RowsPerStrip",
	TagStripByteCounts:           "StripByteCounts",
	TagXResolution:               "XResolution",
	TagYResolution:               "YResolution",
	TagPlanarConfiguration:       "PlanarConfiguration",
	TagT4Options:                 "T4Options",
	TagT6Options:                 "T6Options",
	TagResolutionUnit:            "ResolutionUnit",
	TagSoftware:                  "Software",
	TagDateTime:                  "DateTime",
	TagArtist:                    "Artist",
	TagPredictor:                 "Predictor",
	TagColorMap:                  "ColorMap",
	TagTileWidth:                 "TileWidth",
	TagTileLength:                "TileLength",
	TagTileOffsets:               "TileOffsets",
	TagTileByteCounts:            "TileByteCounts",
	TagExtraSamples:              "ExtraSamples",
	TagSampleFormat:              "SampleFormat",
}

// Known reports whether t is one of the named tags.
func (t Tag) Known() bool {
	_, ok := tagNames[t]
	return ok
}

func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", uint16(t))
}

// Type is the field type of an IFD entry.
type Type uint16

const (
	TypeByte      Type = 1
	TypeASCII     Type = 2
	TypeShort     Type = 3
	TypeLong      Type = 4
	TypeRational  Type = 5
	TypeSByte     Type = 6
	TypeUndefined Type = 7
	TypeSShort    Type = 8
	TypeSLong     Type = 9
	TypeSRational Type = 10
	TypeFloat     Type = 11
	TypeDouble    Type = 12
)

// typeSizes is the encoded size of a single value of each type.
var typeSizes = [...]uint64{0, 1, 1, 2, 4, 8, 1, 1, 2, 4, 8, 4, 8}

// Valid reports whether t is a type defined by TIFF 6.0.
func (t Type) Valid() bool {
	return (t >= TypeByte) && (t <= TypeDouble)
}

// Size returns the encoded size of one value of type t, or 0 if t is
// not valid.
func (t Type) Size() uint64 {
	if !t.Valid() {
		return 0
	}
	return typeSizes[t]
}

func (t Type) String() string {
	switch t {
	case TypeByte:
		return "BYTE"
	case TypeASCII:
		return "ASCII"
	case TypeShort:
		return "SHORT"
	case TypeLong:
		return "LONG"
	case TypeRational:
		return "RATIONAL"
	case TypeSByte:
		return "SBYTE"
	case TypeUndefined:
		return "UNDEFINED"
	case TypeSShort:
		return "SSHORT"
	case TypeSLong:
		return "SLONG"
	case TypeSRational:
		return "SRATIONAL"
	case TypeFloat:
		return "FLOAT"
	case TypeDouble:
		return "DOUBLE"
	default:
		return fmt.Sprintf("Type(%d)", uint16(t))
	}
}

// Entry is a single IFD entry as stored in the file. Offset holds the
// value itself when it fits in four bytes, and otherwise the file
// offset at which the value is stored.
type Entry struct {
	Type   Type
	Count  uint32
	Offset [4]byte
}

// Size returns the total encoded size of the entry's value.
func (e Entry) Size() uint64 {
	return e.Type.Size() * uint64(e.Count)
}

// IsInline reports whether the value is stored in Offset itself.
func (e Entry) IsInline() bool {
	return e.Size() <= 4
}

func (e Entry) String() string {
	return fmt.Sprintf("Entry{Type: %v, Count: %d, Offset: %v}", e.Type, e.Count, e.Offset)
}

// Directory is a decoded Image File Directory.
type Directory map[Tag]Entry
