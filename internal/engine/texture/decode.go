package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	"github.com/h2non/filetype"
	"golang.org/x/image/bmp"
)

// ErrUnknownFormat is returned for data that is not a supported image.
var ErrUnknownFormat = errors.New("unknown image format")

// Format names a supported image container.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpg"
	FormatBMP  Format = "bmp"
	FormatGIF  Format = "gif"
	FormatTGA  Format = "tga"
)

// Sniff identifies the format from magic bytes. TGA has no magic number, so
// it is only recognized by the ".tga" extension of name.
func Sniff(data []byte, name string) (Format, error) {
	kind, err := filetype.Match(data)
	if err == nil && kind != filetype.Unknown {
		switch f := Format(kind.Extension); f {
		case FormatPNG, FormatJPEG, FormatBMP, FormatGIF:
			return f, nil
		}
		return "", fmt.Errorf("%w: %s (%s)", ErrUnknownFormat, name, kind.MIME.Value)
	}
	if strings.EqualFold(filepath.Ext(name), ".tga") {
		return FormatTGA, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, name)
}

// Decode decodes data into RGBA with rows top to bottom. name is used for
// the format fallback and error messages.
func Decode(data []byte, name string) (*image.RGBA, error) {
	format, err := Sniff(data, name)
	if err != nil {
		return nil, err
	}

	var img image.Image
	r := bytes.NewReader(data)
	switch format {
	case FormatPNG:
		img, err = png.Decode(r)
	case FormatJPEG:
		img, err = jpeg.Decode(r)
	case FormatBMP:
		img, err = bmp.Decode(r)
	case FormatGIF:
		img, err = gif.Decode(r)
	case FormatTGA:
		return DecodeTGA(data)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s %s: %w", format, name, err)
	}
	return clone.AsRGBA(img), nil
}

// LoadFile reads and decodes an image file.
func LoadFile(path string) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading texture: %w", err)
	}
	return Decode(data, path)
}

// FlipForGL returns img with rows bottom to top, the order glTexImage2D
// expects for textures addressed with OBJ texture coordinates.
func FlipForGL(img image.Image) *image.RGBA {
	return transform.FlipV(img)
}
