package docx

import (
	"bytes"
	"crypto/sha1"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"

	// Registered decoders; only image.DecodeConfig is used
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// imageFormats maps a decoder name to the extension and MIME type used in the package
var imageFormats = map[string]struct {
	ext         string
	contentType string
}{
	"png":  {"png", "image/png"},
	"jpeg": {"jpg", "image/jpeg"},
	"gif":  {"gif", "image/gif"},
	"bmp":  {"bmp", "image/bmp"},
	"tiff": {"tiff", "image/tiff"},
}

// maxImageDPI bounds the resolution read from an image header; larger values are
// treated as not recorded
const maxImageDPI = 10000

// Image describes an image file to embed: its bytes, format, pixel size and resolution
type Image struct {
	blob     []byte
	filename string
	format   string
	pxWidth  int
	pxHeight int
	horzDPI  int
	vertDPI  int
	sha1     string
	rounding RoundingMode
}

// ImageFromFile reads and identifies the image at path
func ImageFromFile(path string) (*Image, error) {
	return imageFromFileWithConfig(path, GetGlobalConfig())
}

func imageFromFileWithConfig(path string, cfg *Config) (*Image, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, &ImageError{Path: path, Cause: err}
	}
	img, err := imageFromBlobWithConfig(blob, filepath.Base(path), cfg)
	if err != nil {
		return nil, &ImageError{Path: path, Cause: err}
	}
	return img, nil
}

// ImageFromBlob identifies image bytes. filename may be empty, in which case
// "image.<ext>" is used.
func ImageFromBlob(blob []byte, filename string) (*Image, error) {
	img, err := imageFromBlobWithConfig(blob, filename, GetGlobalConfig())
	if err != nil {
		return nil, &ImageError{Path: filename, Cause: err}
	}
	return img, nil
}

func imageFromBlobWithConfig(blob []byte, filename string, cfg *Config) (*Image, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	ic, format, err := image.DecodeConfig(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	if _, ok := imageFormats[format]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, format)
	}
	if ic.Width <= 0 || ic.Height <= 0 {
		return nil, fmt.Errorf("%w: empty %s image", ErrUnsupportedImage, format)
	}

	defaultDPI := cfg.DefaultDPI
	if defaultDPI <= 0 || defaultDPI > maxImageDPI {
		defaultDPI = DefaultConfig().DefaultDPI
	}
	horz, vert := imageDPI(format, blob)
	if horz <= 0 || horz > maxImageDPI {
		horz = defaultDPI
	}
	if vert <= 0 || vert > maxImageDPI {
		vert = defaultDPI
	}

	sum := sha1.Sum(blob)
	img := &Image{
		blob:     blob,
		filename: filename,
		format:   format,
		pxWidth:  ic.Width,
		pxHeight: ic.Height,
		horzDPI:  horz,
		vertDPI:  vert,
		sha1:     hex.EncodeToString(sum[:]),
		rounding: cfg.ScaleRounding,
	}
	if img.Width() <= 0 || img.Height() <= 0 {
		return nil, fmt.Errorf("%w: %dx%d px at %dx%d dpi has no size", ErrUnsupportedImage,
			ic.Width, ic.Height, horz, vert)
	}
	if img.filename == "" {
		img.filename = "image." + img.Ext()
	}
	return img, nil
}

// Blob returns the image bytes
func (img *Image) Blob() []byte { return img.blob }

// Filename returns the base name of the image file
func (img *Image) Filename() string { return img.filename }

// SHA1 returns the hex SHA-1 digest of the image bytes
func (img *Image) SHA1() string { return img.sha1 }

// Ext returns the extension used for the image part, without the dot
func (img *Image) Ext() string { return imageFormats[img.format].ext }

// ContentType returns the MIME type of the image
func (img *Image) ContentType() string { return imageFormats[img.format].contentType }

// PxWidth returns the width in pixels
func (img *Image) PxWidth() int { return img.pxWidth }

// PxHeight returns the height in pixels
func (img *Image) PxHeight() int { return img.pxHeight }

// DPI returns the horizontal and vertical resolution in dots per inch
func (img *Image) DPI() (int, int) { return img.horzDPI, img.vertDPI }

// Width returns the native width, i.e. the pixel width at the image's resolution
func (img *Image) Width() Length {
	return nativeLength(img.pxWidth, img.horzDPI)
}

// Height returns the native height
func (img *Image) Height() Length {
	return nativeLength(img.pxHeight, img.vertDPI)
}

func nativeLength(px, dpi int) Length {
	if dpi <= 0 {
		return 0
	}
	return Length(float64(px) / float64(dpi) * emusPerInch)
}

// ScaledDimensions returns the size to render the image at. A zero width or height is
// derived from the other so the aspect ratio is kept; both zero yields the native size
// and both non-zero are returned as given.
func (img *Image) ScaledDimensions(width, height Length) (Length, Length) {
	if width == 0 && height == 0 {
		return img.Width(), img.Height()
	}

	// A zero native size gives no ratio to scale by
	if width == 0 && img.Height() > 0 {
		scale := float64(height) / float64(img.Height())
		width = Length(roundScaled(float64(img.Width())*scale, img.rounding))
	}
	if height == 0 && img.Width() > 0 {
		scale := float64(width) / float64(img.Width())
		height = Length(roundScaled(float64(img.Height())*scale, img.rounding))
	}
	return width, height
}

func roundScaled(v float64, mode RoundingMode) float64 {
	switch mode {
	case RoundHalfUp:
		return math.Floor(v + 0.5)
	case RoundFloor:
		return math.Floor(v)
	case RoundCeil:
		return math.Ceil(v)
	default:
		return math.RoundToEven(v)
	}
}

// imageDPI reads the resolution stored in the image header. 0 means not recorded.
func imageDPI(format string, blob []byte) (int, int) {
	switch format {
	case "png":
		return pngDPI(blob)
	case "jpeg":
		return jfifDPI(blob)
	case "bmp":
		return bmpDPI(blob)
	}
	return 0, 0
}

// pngDPI reads the pHYs chunk. Only a unit of meters gives an absolute resolution.
func pngDPI(blob []byte) (int, int) {
	const sigLen = 8
	for off := sigLen; off+8 <= len(blob); {
		length := int(binary.BigEndian.Uint32(blob[off:]))
		chunkType := string(blob[off+4 : off+8])
		data := off + 8
		if length < 0 || data+length > len(blob) {
			return 0, 0
		}
		switch chunkType {
		case "pHYs":
			if length < 9 || blob[data+8] != 1 {
				return 0, 0
			}
			x := binary.BigEndian.Uint32(blob[data:])
			y := binary.BigEndian.Uint32(blob[data+4:])
			return perMeterToDPI(float64(x)), perMeterToDPI(float64(y))
		case "IDAT", "IEND":
			return 0, 0
		}
		off = data + length + 4
	}
	return 0, 0
}

// jfifDPI reads the density of the JFIF APP0 segment
func jfifDPI(blob []byte) (int, int) {
	if len(blob) < 4 || blob[0] != 0xFF || blob[1] != 0xD8 {
		return 0, 0
	}
	for off := 2; off+4 <= len(blob); {
		if blob[off] != 0xFF {
			return 0, 0
		}
		marker := blob[off+1]
		if marker == 0xDA || marker == 0xD9 {
			return 0, 0
		}
		length := int(binary.BigEndian.Uint16(blob[off+2:]))
		seg := off + 4
		if marker == 0xE0 && length >= 14 && seg+12 <= len(blob) && string(blob[seg:seg+5]) == "JFIF\x00" {
			units := blob[seg+7]
			x := float64(binary.BigEndian.Uint16(blob[seg+8:]))
			y := float64(binary.BigEndian.Uint16(blob[seg+10:]))
			switch units {
			case 1:
				return int(x), int(y)
			case 2:
				return int(math.RoundToEven(x * 2.54)), int(math.RoundToEven(y * 2.54))
			}
			return 0, 0
		}
		off += 2 + length
	}
	return 0, 0
}

// bmpDPI reads the pixels-per-meter fields of the BITMAPINFOHEADER
func bmpDPI(blob []byte) (int, int) {
	if len(blob) < 46 {
		return 0, 0
	}
	x := int32(binary.LittleEndian.Uint32(blob[38:]))
	y := int32(binary.LittleEndian.Uint32(blob[42:]))
	return perMeterToDPI(float64(x)), perMeterToDPI(float64(y))
}

func perMeterToDPI(v float64) int {
	if v <= 0 {
		return 0
	}
	return int(math.RoundToEven(v * 0.0254))
}
