package main

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"slideview/carousel"
)

// Common colors used in rendering
var (
	colorWhite     = color.RGBA{255, 255, 255, 255}
	colorGray      = color.RGBA{180, 180, 180, 255}
	colorYellow    = color.RGBA{255, 255, 100, 255}
	colorCyan      = color.RGBA{100, 255, 255, 255}
	colorLightBlue = color.RGBA{200, 200, 255, 255}
	colorGreen     = color.RGBA{100, 255, 100, 255}
	colorOrange    = color.RGBA{255, 200, 100, 255}
	colorLightRed  = color.RGBA{255, 150, 150, 255}

	// Background colors for semi-transparent overlays
	bgColorLight  = color.RGBA{0, 0, 0, 128} // Light semi-transparent
	bgColorMedium = color.RGBA{0, 0, 0, 160} // Medium semi-transparent
	bgColorDark   = color.RGBA{0, 0, 0, 200} // Dark semi-transparent

	colorPlaceholder     = color.RGBA{255, 255, 255, 24}
	colorErrorBackground = color.RGBA{120, 30, 30, 255}
)

// Help overlay layout
const (
	helpPadding     = 40.0
	helpMinFontSize = 12.0
	helpMaxWarnings = 2
)

// Renderer handles all drawing operations
type Renderer struct {
	renderState    RenderState
	helpFontSource *text.GoTextFaceSource
}

// NewRenderer creates a new Renderer. LoadFonts must have been called.
func NewRenderer(renderState RenderState) *Renderer {
	return &Renderer{
		renderState:    renderState,
		helpFontSource: fontSource,
	}
}

func (r *Renderer) face(size float64) *text.GoTextFace {
	return &text.GoTextFace{Source: r.helpFontSource, Size: size}
}

// Draw renders the entire screen
func (r *Renderer) Draw(screen *ebiten.Image) {
	screen.Clear()

	layout := r.renderState.TrackLayout()
	vp := layout.viewport
	if vp.W > 0 && vp.H > 0 {
		clip := image.Rect(int(vp.X), int(vp.Y), int(vp.X+vp.W), int(vp.Y+vp.H))
		viewport := screen.SubImage(clip).(*ebiten.Image)
		if r.renderState.CarouselOptions().Transition == carousel.TransitionFade {
			r.drawFade(viewport, vp)
		} else {
			r.drawTrack(viewport, layout)
		}
	}

	nav := r.renderState.Navigator()
	for _, c := range r.renderState.Controls() {
		c.Draw(screen, nav)
	}

	if r.renderState.CarouselState().Loading {
		r.drawLoadingIndicator(screen, vp)
	}

	if r.renderState.ShowingInfo() {
		r.drawInfoDisplay(screen)
	}

	if r.renderState.ShowingHelp() {
		r.drawHelpOverlay(screen)
	}

	if message, shown := r.renderState.OverlayMessage(); message != "" && time.Since(shown) < overlayMessageDuration {
		r.drawOverlayMessage(screen, message)
	}
}

// drawTrack draws the slots laid out left to right, shifted by the animated
// track position. Slots entirely outside the viewport are skipped.
func (r *Renderer) drawTrack(dst *ebiten.Image, layout *trackLayout) {
	slots := r.renderState.Track()
	metrics := layout.MeasureTrack(slots)
	if metrics == nil {
		return
	}
	vp := layout.viewport
	xs := slotOffsets(metrics, layout.padding)
	pos := r.renderState.TrackPosition()
	panels := r.renderState.Panels()

	for i, s := range slots {
		m := metrics[i]
		x := vp.X + pos + xs[i]
		if m.Width <= 0 || x+m.Width < vp.X || x > vp.X+vp.W {
			continue
		}
		rect := Rect{X: x, Y: vp.Y + (vp.H-m.Height)/2, W: m.Width, H: m.Height}
		if s.Placeholder || s.Index >= len(panels) {
			DrawFilledRect(dst, rect.X, rect.Y, rect.W, rect.H, colorPlaceholder)
			continue
		}
		DrawImageInRect(dst, r.renderState.Image(panels[s.Index].Source), rect, 1)
	}
}

// drawFade stacks the slides in the viewport and blends the outgoing slide
// into the incoming one
func (r *Renderer) drawFade(dst *ebiten.Image, vp Rect) {
	panels := r.renderState.Panels()
	for _, s := range r.renderState.Track() {
		if s.Placeholder || s.Index >= len(panels) {
			continue
		}
		alpha := r.renderState.FadeAlpha(s.Index)
		if alpha <= 0 {
			continue
		}
		DrawImageInRect(dst, r.renderState.Image(panels[s.Index].Source), vp, alpha)
	}
}

func (r *Renderer) drawLoadingIndicator(screen *ebiten.Image, vp Rect) {
	font := r.face(r.renderState.HelpFontSize())
	msg := "Loading" + strings.Repeat(".", int(time.Now().UnixMilli()/400%4))
	w, h := text.Measure("Loading...", font, 0)
	DrawText(screen, msg, font, vp.X+(vp.W-w)/2, vp.Y+(vp.H-h)/2, colorGray)
}

// helpRow is one line of the bindings table
type helpRow struct {
	action      string
	keys        string
	mouse       string
	description string
}

// helpRows returns the bound actions in table order
func (r *Renderer) helpRows() []helpRow {
	keybindings, mousebindings := r.renderState.Bindings()
	rows := make([]helpRow, 0, len(actions))
	for _, a := range actions {
		keys, mouse := keybindings[a.name], mousebindings[a.name]
		if len(keys) == 0 && len(mouse) == 0 {
			continue
		}
		rows = append(rows, helpRow{
			action:      a.name,
			keys:        strings.Join(keys, ", "),
			mouse:       strings.Join(mouse, ", "),
			description: a.description,
		})
	}
	return rows
}

func (row helpRow) inputs() string {
	switch {
	case row.keys != "" && row.mouse != "":
		return row.keys + " | " + row.mouse
	case row.keys != "":
		return row.keys
	default:
		return row.mouse
	}
}

// helpWarnings returns the config warnings shown in the help overlay
func (r *Renderer) helpWarnings() []string {
	warnings := r.renderState.ConfigStatus().Warnings
	if len(warnings) > helpMaxWarnings {
		warnings = warnings[:helpMaxWarnings]
	}
	out := make([]string, len(warnings))
	for i, w := range warnings {
		if len(w) > 50 {
			w = w[:47] + "..."
		}
		out[i] = "• " + w
	}
	return out
}

// helpColumns measures the widest action and input strings at a font size
func helpColumns(rows []helpRow, font *text.GoTextFace) (actionW, inputW, descW float64) {
	for _, row := range rows {
		w, _ := text.Measure(row.action, font, 0)
		actionW = max(actionW, w)
		w, _ = text.Measure(row.inputs(), font, 0)
		inputW = max(inputW, w)
		w, _ = text.Measure(row.description, font, 0)
		descW = max(descW, w)
	}
	return actionW, inputW, descW
}

// calculateRequiredDimensions calculates the width and height the help
// content needs at a given font size
func (r *Renderer) calculateRequiredDimensions(fontSize float64) (float64, float64) {
	rows := r.helpRows()
	warnings := r.helpWarnings()
	font := r.face(fontSize)
	lineHeight := fontSize * 1.5

	height := helpPadding * 2
	height += fontSize * 2     // Title
	height += lineHeight * 1.5 // Controls title spacing
	height += float64(len(rows)) * lineHeight
	height += lineHeight * 3 // Spacing, "System:" and config status
	height += float64(len(warnings)) * lineHeight

	actionW, inputW, descW := helpColumns(rows, font)
	width := 40 + actionW + 20 + 30 + 20 + inputW + 20 + descW + helpPadding

	lines := append([]string{"HELP:", "Controls (Keyboard | Mouse):", "System:", r.statusText()}, warnings...)
	for _, line := range lines {
		w, _ := text.Measure(line, font, 0)
		width = max(width, w+helpPadding*2+80)
	}
	return width, height
}

// calculateOptimalFontSize finds the largest font size that fits within the given dimensions
func (r *Renderer) calculateOptimalFontSize(availableWidth, availableHeight float64) (float64, bool) {
	maxFontSize := r.renderState.HelpFontSize()

	fits := func(size float64) bool {
		w, h := r.calculateRequiredDimensions(size)
		return w <= availableWidth && h <= availableHeight
	}

	if !fits(helpMinFontSize) {
		return helpMinFontSize, false
	}
	if fits(maxFontSize) {
		return maxFontSize, true
	}

	// Binary search for optimal font size
	low, high := helpMinFontSize, maxFontSize
	best := helpMinFontSize
	for high-low > 0.5 {
		mid := (low + high) / 2
		if fits(mid) {
			best = mid
			low = mid
		} else {
			high = mid
		}
	}
	return best, true
}

func (r *Renderer) statusText() string {
	return fmt.Sprintf("Config Status: %s", r.renderState.ConfigStatus().Status)
}

func (r *Renderer) drawHelpOverlay(screen *ebiten.Image) {
	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())

	fontSize, canFit := r.calculateOptimalFontSize(w-helpPadding*2, h-helpPadding*2)
	if !canFit {
		r.drawMarginTooSmallMessage(screen)
		return
	}

	DrawFilledRect(screen, 0, 0, w, h, bgColorLight)
	DrawFilledRect(screen, helpPadding, helpPadding, w-helpPadding*2, h-helpPadding*2, bgColorMedium)

	font := r.face(fontSize)
	lineHeight := fontSize * 1.5

	titleY := helpPadding + 30
	DrawText(screen, "HELP:", font, helpPadding+20, titleY, colorWhite)
	y := titleY + fontSize*2
	DrawText(screen, "Controls (Keyboard | Mouse):", font, helpPadding+20, y, colorWhite)
	y += lineHeight * 1.5

	rows := r.helpRows()
	actionW, inputW, _ := helpColumns(rows, font)
	actionX := helpPadding + 40
	arrowX := actionX + actionW + 20
	inputX := arrowX + 30
	descX := inputX + inputW + 20

	sepWidth, _ := text.Measure(" | ", font, 0)
	for _, row := range rows {
		DrawText(screen, row.action, font, actionX, y, colorLightBlue)
		DrawText(screen, "→", font, arrowX, y, colorWhite)

		x := inputX
		if row.keys != "" {
			DrawText(screen, row.keys, font, x, y, colorYellow)
			kw, _ := text.Measure(row.keys, font, 0)
			x += kw
		}
		if row.keys != "" && row.mouse != "" {
			DrawText(screen, " | ", font, x, y, colorWhite)
			x += sepWidth
		}
		if row.mouse != "" {
			DrawText(screen, row.mouse, font, x, y, colorCyan)
		}
		DrawText(screen, row.description, font, descX, y, colorGray)
		y += lineHeight
	}

	y += lineHeight
	DrawText(screen, "System:", font, helpPadding+20, y, colorWhite)
	y += lineHeight

	status := r.renderState.ConfigStatus().Status
	statusColor := colorGreen
	if status == "Warning" || status == "Error" {
		statusColor = colorOrange
	}
	DrawText(screen, r.statusText(), font, helpPadding+40, y, statusColor)
	y += lineHeight

	for _, warning := range r.helpWarnings() {
		DrawText(screen, warning, font, helpPadding+40, y, colorLightRed)
		y += lineHeight
	}
}

// drawMarginTooSmallMessage displays Fermat's margin joke when help cannot fit
func (r *Renderer) drawMarginTooSmallMessage(screen *ebiten.Image) {
	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	DrawFilledRect(screen, 0, 0, w, h, bgColorLight)

	font := r.face(16.0)
	message := "Hanc marginis exiguitas non caperet."
	subtitle := "(This margin is too small to contain it.)"

	messageWidth, messageHeight := text.Measure(message, font, 0)
	subtitleWidth, _ := text.Measure(subtitle, font, 0)

	messageY := h/2 - messageHeight/2
	DrawText(screen, message, font, w/2-messageWidth/2, messageY, colorWhite)
	DrawText(screen, subtitle, font, w/2-subtitleWidth/2, messageY+messageHeight+10, colorGray)
}

// buildInfoString describes the current slide
func (r *Renderer) buildInfoString() string {
	nav := r.renderState.Navigator()
	total := nav.PanelCount()
	if total == 0 {
		return "0 / 0"
	}
	current := nav.CurrentIndex()

	name := ""
	if panels := r.renderState.Panels(); current < len(panels) {
		if p, ok := panels[current].Content.(ImagePath); ok {
			name = filepath.Base(p.Path)
			if p.EntryPath != "" {
				name = filepath.Base(p.ArchivePath) + ":" + p.EntryPath
			}
		}
	}

	autoplay := "off"
	if r.renderState.AutoplayEnabled() {
		autoplay = "on"
	}
	return fmt.Sprintf("%d / %d  %s  autoplay: %s  sort: %s",
		current+1, total, name, autoplay, getSortMethodName(r.renderState.SortMethod()))
}

func (r *Renderer) drawInfoDisplay(screen *ebiten.Image) {
	font := r.face(r.renderState.HelpFontSize() * 0.75)
	infoText := r.buildInfoString()
	textWidth, textHeight := text.Measure(infoText, font, 0)

	// Bottom left corner, above any control band
	padding := 10.0
	textX := padding
	textY := float64(screen.Bounds().Dy()) - textHeight - padding - controlBandHeight
	textWidth = min(textWidth, float64(screen.Bounds().Dx())-padding*2)

	bgPadding := 5.0
	DrawFilledRect(screen, textX-bgPadding, textY-bgPadding, textWidth+bgPadding*2, textHeight+bgPadding*2, bgColorLight)
	DrawText(screen, infoText, font, textX, textY, colorWhite)
}

func (r *Renderer) drawOverlayMessage(screen *ebiten.Image, message string) {
	font := r.face(r.renderState.HelpFontSize())
	textWidth, textHeight := text.Measure(message, font, 0)

	padding := 20.0
	boxWidth := textWidth + padding*2
	boxHeight := textHeight + padding*2
	boxX := (float64(screen.Bounds().Dx()) - boxWidth) / 2
	boxY := (float64(screen.Bounds().Dy()) - boxHeight) / 2

	DrawFilledRect(screen, boxX, boxY, boxWidth, boxHeight, bgColorDark)
	DrawText(screen, message, font, boxX+padding, boxY+padding, colorWhite)
}
