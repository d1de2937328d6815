// Package texture prepares source images for MDL consumption: resize to
// power-of-two dimensions inside the engine range, reduce to a 256-color
// palette, and save as indexed BMP or WebP. The model codec itself only ever
// sees the resulting name/width/height/flags.
package texture

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	_ "github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// Engine limits on texture dimensions.
const (
	MinDim = 16
	MaxDim = 512

	// MaxColors is the palette ceiling for 8-bit indexed textures.
	MaxColors = 256
)

// Processed describes one converted texture, ready for a model's texture
// table.
type Processed struct {
	Name          string // output file name
	Path          string // full output path
	Width, Height int
	SourceW       int
	SourceH       int
	Colors        int // palette entries actually used
}

// Process converts one source image (PNG, JPEG, TGA, or BMP) into an
// engine-compatible texture in outDir. Format is "bmp" (8-bit indexed) or
// "webp".
func Process(inputPath, outDir, format string) (*Processed, error) {
	f, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("texture: open %s: %w", inputPath, err)
	}
	src, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", inputPath, err)
	}

	img := toNRGBA(src)
	srcW := img.Bounds().Dx()
	srcH := img.Bounds().Dy()

	img = resizePow2(img)
	indexed := Quantize(img, MaxColors)

	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	ext := ".bmp"
	if format == "webp" {
		ext = ".webp"
	}
	name := stem + "_indexed" + ext
	outPath := filepath.Join(outDir, name)

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("texture: create dir %s: %w", outDir, err)
	}
	out, err := os.Create(outPath)
	if err != nil {
		return nil, fmt.Errorf("texture: create %s: %w", outPath, err)
	}
	defer out.Close()

	switch format {
	case "webp":
		err = nativewebp.Encode(out, palettedToNRGBA(indexed), nil)
	default:
		err = bmp.Encode(out, indexed)
	}
	if err != nil {
		return nil, fmt.Errorf("texture: encode %s: %w", outPath, err)
	}

	return &Processed{
		Name:    name,
		Path:    outPath,
		Width:   indexed.Bounds().Dx(),
		Height:  indexed.Bounds().Dy(),
		SourceW: srcW,
		SourceH: srcH,
		Colors:  countColors(indexed),
	}, nil
}

// resizePow2 scales the image up or down so both dimensions are powers of
// two within [MinDim, MaxDim]. Already-conforming images pass through.
func resizePow2(img *image.NRGBA) *image.NRGBA {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	nw := clampDim(NextPowerOfTwo(w))
	nh := clampDim(NextPowerOfTwo(h))
	if nw == w && nh == h {
		return img
	}

	dst := image.NewNRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

func clampDim(n int) int {
	if n < MinDim {
		return MinDim
	}
	if n > MaxDim {
		return MaxDim
	}
	return n
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// NextPowerOfTwo returns the smallest power of two >= n.
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// toNRGBA converts any decoded image to NRGBA.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			dst.SetNRGBA(x-b.Min.X, y-b.Min.Y, c)
		}
	}
	return dst
}

func palettedToNRGBA(src *image.Paletted) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			dst.SetNRGBA(x, y, c)
		}
	}
	return dst
}

func countColors(img *image.Paletted) int {
	used := make(map[uint8]bool)
	for _, idx := range img.Pix {
		used[idx] = true
	}
	return len(used)
}
