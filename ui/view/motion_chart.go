package view

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// MotionChart displays the rendered velocity/acceleration chart.
type MotionChart interface {
	UpdateChart(png []byte)
}

type motionChart struct {
	label *LabelWidget
	prev  *Img
}

// NewMotionChart places the chart label at row spanning all columns.
func NewMotionChart(row, w, h int) MotionChart {
	c := &motionChart{prev: NewPhoto(Data(placeholder(w, h)))}
	c.label = Label(Image(c.prev), Borderwidth(1), Relief("groove"))
	Grid(c.label, Row(row), Column(0), Columnspan(5), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
	return c
}

func (c *motionChart) UpdateChart(png []byte) {
	if c == nil || c.label == nil || len(png) == 0 {
		return
	}
	c.prev = swapPhoto(c.label, c.prev, png)
}
