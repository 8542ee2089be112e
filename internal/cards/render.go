package cards

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Fixed card canvas, shared with the site's CSS grid.
const (
	Width  = 1000
	Height = 560

	margin       = 24
	maxTitleLen  = 70
	cornerRadius = 24
)

// Card holds everything a status card displays. Delta is nil when there is
// no prior observation to compare against.
type Card struct {
	Title      string
	LastPeriod string
	LastValue  float64
	Delta      *float64
}

// Renderer rasterizes status cards. Rendering is deterministic: the same
// card always produces the same pixels, so re-running the generator leaves
// unchanged outputs byte-identical.
type Renderer struct {
	titleFace  font.Face
	valueFace  font.Face
	smallFace  font.Face
	footerText string
}

// NewRenderer creates a renderer with the embedded Go fonts and the given
// footer line.
func NewRenderer(footer string) (*Renderer, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}

	return &Renderer{
		titleFace:  truetype.NewFace(regular, &truetype.Options{Size: 42}),
		valueFace:  truetype.NewFace(bold, &truetype.Options{Size: 68}),
		smallFace:  truetype.NewFace(regular, &truetype.Options{Size: 28}),
		footerText: footer,
	}, nil
}

// Render draws the card onto a fresh canvas.
func (r *Renderer) Render(card Card) image.Image {
	dc := gg.NewContext(Width, Height)

	// Page background.
	dc.SetRGB255(247, 249, 252)
	dc.Clear()

	// Card body with a soft outline.
	dc.DrawRoundedRectangle(margin, margin, Width-2*margin, Height-2*margin, cornerRadius)
	dc.SetRGB255(255, 255, 255)
	dc.FillPreserve()
	dc.SetRGB255(225, 230, 236)
	dc.SetLineWidth(2)
	dc.Stroke()

	const textX = margin + 32

	dc.SetFontFace(r.titleFace)
	dc.SetRGB255(30, 41, 59)
	dc.DrawString(truncate(card.Title, maxTitleLen), textX, margin+24+42)

	dc.SetFontFace(r.valueFace)
	dc.SetRGB255(9, 105, 218)
	dc.DrawString(FormatValue(card.LastValue), textX, margin+120+68)

	dc.SetFontFace(r.smallFace)
	dc.SetRGB255(71, 85, 105)
	dc.DrawString("Periodo: "+card.LastPeriod, textX, margin+210+28)

	r.drawDelta(dc, card.Delta, textX, margin+270)

	dc.SetFontFace(r.smallFace)
	dc.SetRGB255(100, 116, 139)
	dc.DrawString(r.footerText, textX, Height-margin-36+28)

	return dc.Image()
}

// RenderFile renders the card and writes it as a PNG.
func (r *Renderer) RenderFile(card Card, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create cards directory: %w", err)
	}

	img := r.Render(card)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create card file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode card %s: %w", path, err)
	}
	return nil
}

// drawDelta draws the sign-coloured change line: a triangle marker plus
// the formatted percentage, or a grey "s/d" line when there is no prior
// observation.
func (r *Renderer) drawDelta(dc *gg.Context, delta *float64, x, y float64) {
	dc.SetFontFace(r.smallFace)

	if delta == nil {
		dc.SetRGB255(148, 163, 184)
		dc.DrawString("s/d (sin dato anterior)", x, y+28)
		return
	}

	up := *delta >= 0
	if up {
		dc.SetRGB255(16, 185, 129)
	} else {
		dc.SetRGB255(239, 68, 68)
	}

	// Triangle marker; the Go fonts lack the ▲/▼ glyphs.
	const side = 18
	baseline := y + 28
	if up {
		dc.MoveTo(x, baseline)
		dc.LineTo(x+side, baseline)
		dc.LineTo(x+side/2, baseline-side)
	} else {
		dc.MoveTo(x, baseline-side)
		dc.LineTo(x+side, baseline-side)
		dc.LineTo(x+side/2, baseline)
	}
	dc.ClosePath()
	dc.Fill()

	dc.DrawString(FormatDelta(*delta)+" vs periodo anterior", x+side+12, baseline)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
