package texture

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"strings"
)

// Check is the engine-compatibility verdict for a texture file. The rules
// mirror what the model validator applies to texture records.
type Check struct {
	Valid          bool
	PowerOfTwo     bool
	ReasonableSize bool
	Square         bool
	ColorCountOK   bool
	Width, Height  int
	Reason         string
}

// CheckFile inspects a texture image for CS 1.6 compatibility without
// converting it. Square is informational only and does not affect Valid.
func CheckFile(path string) (Check, error) {
	f, err := os.Open(path)
	if err != nil {
		return Check{}, fmt.Errorf("texture: open %s: %w", path, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return Check{}, fmt.Errorf("texture: decode %s: %w", path, err)
	}

	c := Check{
		PowerOfTwo:     IsPowerOfTwo(cfg.Width) && IsPowerOfTwo(cfg.Height),
		ReasonableSize: cfg.Width >= MinDim && cfg.Width <= MaxDim && cfg.Height >= MinDim && cfg.Height <= MaxDim,
		Square:         cfg.Width == cfg.Height,
		ColorCountOK:   true,
		Width:          cfg.Width,
		Height:         cfg.Height,
	}
	if pal, ok := cfg.ColorModel.(color.Palette); ok {
		c.ColorCountOK = len(pal) <= MaxColors
	}

	c.Valid = c.PowerOfTwo && c.ReasonableSize && c.ColorCountOK
	if !c.Valid {
		var reasons []string
		if !c.PowerOfTwo {
			reasons = append(reasons, "not power of 2 dimensions")
		}
		if !c.ReasonableSize {
			reasons = append(reasons, fmt.Sprintf("size not in %d-%d range", MinDim, MaxDim))
		}
		if !c.ColorCountOK {
			reasons = append(reasons, "too many palette colors")
		}
		c.Reason = strings.Join(reasons, "; ")
	}
	return c, nil
}
