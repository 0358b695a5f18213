package tray

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
)

// loadIcon reads the configured icon asset, falling back to an icon
// rendered in-process so the tray never comes up blank.
func (m *Manager) loadIcon() []byte {
	if m.iconPath != "" {
		data, err := os.ReadFile(m.iconPath)
		if err == nil {
			return data
		}
		m.log.Warn().Err(err).Str("path", m.iconPath).Msg("cannot read icon asset, using fallback")
	}
	return fallbackIcon(44)
}

// fallbackIcon renders a dark disc with a light pen-nib dot, roughly
// matching the shipped asset's silhouette at tray size.
func fallbackIcon(size int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	ink := color.RGBA{R: 36, G: 36, B: 40, A: 255}
	nib := color.RGBA{R: 235, G: 235, B: 240, A: 255}

	cx, cy := float64(size)/2, float64(size)/2
	r := float64(size)/2 - 1
	nibR := float64(size) / 6.5
	for y := range size {
		for x := range size {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			if d <= nibR {
				img.Set(x, y, nib)
			} else if d <= r {
				img.Set(x, y, ink)
			}
		}
	}
	return encodePNG(img)
}

func encodePNG(img image.Image) []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic("encodePNG: " + err.Error())
	}
	return buf.Bytes()
}
