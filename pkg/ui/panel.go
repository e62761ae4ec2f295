package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Widget is implemented by every control a Panel can host.
type Widget interface {
	Update()
	Draw(screen *ebiten.Image)
	Height() float64
}

// Panel stacks widgets vertically inside a translucent box.
type Panel struct {
	Title   string
	X, Y    float64
	W       float64
	Widgets []Widget
}

// NewPanel creates an empty panel at the given position.
func NewPanel(x, y, w float64, title string) *Panel {
	return &Panel{Title: title, X: x, Y: y, W: w}
}

// AddSlider appends a slider and returns it for later value reads.
func (p *Panel) AddSlider(label string, min, max, value float64) *Slider {
	s := NewSlider(p.X+10, p.nextY()+15, p.W-20, label, min, max, value)
	p.Widgets = append(p.Widgets, s)
	return s
}

// AddButton appends a button wired to onClick.
func (p *Panel) AddButton(label string, onClick func()) *Button {
	b := NewButton(p.X+10, p.nextY(), p.W-20, 24, label, onClick)
	p.Widgets = append(p.Widgets, b)
	return b
}

// AddCheckbox appends a checkbox and returns it for later value reads.
func (p *Panel) AddCheckbox(label string, value bool) *Checkbox {
	c := NewCheckbox(p.X+10, p.nextY(), label, value)
	p.Widgets = append(p.Widgets, c)
	return c
}

// nextY is the y coordinate where the next widget starts.
func (p *Panel) nextY() float64 {
	y := p.Y + 25
	for _, w := range p.Widgets {
		y += w.Height()
	}
	return y
}

// Height is the total height of the panel box.
func (p *Panel) Height() float64 {
	return p.nextY() - p.Y + 10
}

// Update forwards input handling to every widget.
func (p *Panel) Update() {
	for _, w := range p.Widgets {
		w.Update()
	}
}

// Draw renders the panel background, title and widgets.
func (p *Panel) Draw(screen *ebiten.Image) {
	vector.FillRect(screen, float32(p.X), float32(p.Y), float32(p.W), float32(p.Height()),
		color.RGBA{R: 40, G: 40, B: 45, A: 230}, true)
	vector.StrokeRect(screen, float32(p.X), float32(p.Y), float32(p.W), float32(p.Height()),
		2, color.RGBA{R: 100, G: 100, B: 110, A: 255}, true)

	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+10), int(p.Y+5))

	for _, w := range p.Widgets {
		w.Draw(screen)
	}
}
