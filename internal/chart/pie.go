package chart

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// pieStartAngle is where the first slice begins, in degrees.
const pieStartAngle = 140

// pie is a plot.Plotter drawing one slice per category, counter-clockwise
// from pieStartAngle. Each slice carries its name outside the rim and its
// percentage share inside.
type pie struct {
	names  []string
	shares []float64 // percentages, summing to 100
}

var (
	_ plot.Plotter    = (*pie)(nil)
	_ plot.DataRanger = (*pie)(nil)
)

// Plot implements plot.Plotter.
func (p *pie) Plot(c draw.Canvas, plt *plot.Plot) {
	width := c.Max.X - c.Min.X
	height := c.Max.Y - c.Min.Y
	radius := 0.8 * min(width, height) / 2
	center := vg.Point{X: c.Min.X + width/2, Y: c.Min.Y + height/2}

	sty := plt.X.Tick.Label
	sty.Rotation = 0
	sty.YAlign = draw.YCenter

	angle := float64(pieStartAngle) * math.Pi / 180
	for i, share := range p.shares {
		sweep := share / 100 * 2 * math.Pi

		var path vg.Path
		path.Move(center)
		path.Line(onCircle(center, radius, angle))
		path.Arc(center, radius, angle, sweep)
		path.Close()

		c.SetColor(plotutil.Color(i))
		c.Fill(path)
		c.SetLineStyle(draw.LineStyle{Color: plt.BackgroundColor, Width: vg.Points(1)})
		c.Stroke(path)

		mid := angle + sweep/2

		label := sty
		label.XAlign = draw.XLeft
		if math.Cos(mid) < 0 {
			label.XAlign = draw.XRight
		}
		c.FillText(label, onCircle(center, radius*1.1, mid), p.names[i])

		pct := sty
		pct.XAlign = draw.XCenter
		c.FillText(pct, onCircle(center, radius*0.6, mid), fmt.Sprintf("%.1f%%", share))

		angle += sweep
	}
}

// DataRange implements plot.DataRanger. The pie ignores the data axes,
// which are hidden, so a fixed unit range is reported.
func (p *pie) DataRange() (xmin, xmax, ymin, ymax float64) {
	return -1, 1, -1, 1
}

// onCircle returns the point at angle (radians) on the circle around center.
func onCircle(center vg.Point, radius vg.Length, angle float64) vg.Point {
	return vg.Point{
		X: center.X + radius*vg.Length(math.Cos(angle)),
		Y: center.Y + radius*vg.Length(math.Sin(angle)),
	}
}
