//go:build ebiten

package app

import (
	"fmt"

	"cascade-lab/internal/render"
	"cascade-lab/internal/surface"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game presents a response surface as per-focus heatmap pages.
type Game struct {
	layers  []render.Layer
	palette render.Palette

	page   int
	metric render.Metric

	img   *ebiten.Image
	buf   []byte
	dirty bool

	scale int
}

// New constructs a viewer for the provided surface.
func New(cells []surface.Cell, scale int) *Game {
	layers := render.Layers(cells)
	g := &Game{
		layers:  layers,
		palette: render.HeatPalette(),
		scale:   scale,
		dirty:   true,
	}
	if len(layers) > 0 {
		w, h := layers[0].W, layers[0].H
		if w > 0 && h > 0 {
			g.img = ebiten.NewImage(w, h)
			g.buf = make([]byte, 4*w*h)
		}
	}
	return g
}

// Update handles key input: Tab cycles focus pages, 1/2/3/4 select the
// metric, Q or Escape quits.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) && len(g.layers) > 0 {
		g.page = (g.page + 1) % len(g.layers)
		g.dirty = true
	}
	if inpututil.IsKeyJustPressed(ebiten.Key1) {
		g.metric = render.MetricMeanAdoption
		g.dirty = true
	}
	if inpututil.IsKeyJustPressed(ebiten.Key2) {
		g.metric = render.MetricMeanFear
		g.dirty = true
	}
	if inpututil.IsKeyJustPressed(ebiten.Key3) {
		g.metric = render.MetricHarmProbability
		g.dirty = true
	}
	if inpututil.IsKeyJustPressed(ebiten.Key4) {
		g.metric = render.MetricVulnerabilityDamage
		g.dirty = true
	}
	return nil
}

// Draw renders the current page's heatmap with a small status line.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.img == nil || len(g.layers) == 0 {
		ebitenutil.DebugPrint(screen, "empty surface")
		return
	}

	layer := g.layers[g.page]
	if g.dirty {
		if 4*layer.W*layer.H != len(g.buf) {
			g.img = ebiten.NewImage(layer.W, layer.H)
			g.buf = make([]byte, 4*layer.W*layer.H)
		}
		values := render.Rescale(layer.Values(g.metric))
		render.FillHeatRGBA(g.buf, values, g.palette)
		g.img.WritePixels(g.buf)
		g.dirty = false
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.scale), float64(g.scale))
	screen.DrawImage(g.img, op)

	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s / %s (page %d of %d)",
		layer.FocusKey, g.metric.Label(), g.page+1, len(g.layers)))
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if len(g.layers) == 0 || g.layers[0].W == 0 {
		return 320, 240
	}
	return g.layers[0].W * g.scale, g.layers[0].H * g.scale
}
