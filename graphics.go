package main

import (
	"bytes"
	"image/color"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

// fontSource backs every face the viewer draws with. Nil until LoadFonts.
var fontSource *text.GoTextFaceSource

// LoadFonts parses the embedded Go Regular font
func LoadFonts() error {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return err
	}
	fontSource = src
	return nil
}

func DrawText(dst *ebiten.Image, s string, face *text.GoTextFace, x, y float64, c color.RGBA) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, face, op)
}

func DrawFilledRect(dst *ebiten.Image, x, y, w, h float64, c color.RGBA) {
	vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), c, true)
}

func DrawStrokeRect(dst *ebiten.Image, r Rect, width float64, c color.RGBA) {
	vector.StrokeRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), float32(width), c, true)
}

func DrawFilledCircle(dst *ebiten.Image, cx, cy, radius float64, c color.RGBA) {
	vector.DrawFilledCircle(dst, float32(cx), float32(cy), float32(radius), c, true)
}

// DrawChevron draws a "<" (left) or ">" chevron inside r
func DrawChevron(dst *ebiten.Image, r Rect, left bool, c color.RGBA) {
	w := r.W * 0.3
	h := r.H * 0.25
	cx, cy := r.X+r.W/2, r.Y+r.H/2
	tipX, tailX := cx+w/2, cx-w/2
	if left {
		tipX, tailX = tailX, tipX
	}
	vector.StrokeLine(dst, float32(tailX), float32(cy-h), float32(tipX), float32(cy), 3, c, true)
	vector.StrokeLine(dst, float32(tipX), float32(cy), float32(tailX), float32(cy+h), 3, c, true)
}

// DrawImageInRect draws img scaled to fit r, preserving aspect ratio and
// centered, with the given opacity
func DrawImageInRect(dst, img *ebiten.Image, r Rect, alpha float64) {
	if img == nil || r.W <= 0 || r.H <= 0 || alpha <= 0 {
		return
	}
	b := img.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	if iw == 0 || ih == 0 {
		return
	}
	scale := min(r.W/iw, r.H/ih)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(r.X+(r.W-iw*scale)/2, r.Y+(r.H-ih*scale)/2)
	op.Filter = ebiten.FilterLinear
	op.ColorScale.ScaleAlpha(float32(alpha))
	dst.DrawImage(img, op)
}

// ellipsize shortens s to at most n bytes, marking the cut with "..."
func ellipsize(s string, n int) string {
	if n <= 3 || len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// ErrorImage renders the placeholder shown in place of a source that
// failed to decode
func ErrorImage(source string, reason error) *ebiten.Image {
	const lineHeight = 30
	img := ebiten.NewImage(errorImageWidth, errorImageHeight)
	img.Fill(colorErrorBackground)
	frame := Rect{X: 1.5, Y: 1.5, W: errorImageWidth - 3, H: errorImageHeight - 3}
	DrawStrokeRect(img, frame, 3, colorWhite)
	if fontSource == nil {
		return img
	}

	face := &text.GoTextFace{Source: fontSource, Size: 20}
	// About 10px per glyph at this size
	width := (errorImageWidth - 20) / 10
	lines := []string{
		"ERROR",
		"File: " + filepath.Base(source),
		"Reason: " + reason.Error(),
	}
	for i, line := range lines {
		DrawText(img, ellipsize(line, width), face, 10, float64(lineHeight*(i+1)), colorWhite)
	}
	return img
}
