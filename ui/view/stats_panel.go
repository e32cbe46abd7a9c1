package view

import (
	"fmt"
	"time"

	"github.com/soocke/vision-overlay-go/domain/capture"
	"github.com/soocke/vision-overlay-go/ui/model"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// StatsPanel shows session durations and detection pipeline counters.
type StatsPanel interface {
	SetStats(s model.Stats, cs capture.CaptureStats, published int, publishes uint64)
}

type statsPanel struct {
	sessionLbl  *LabelWidget
	totalLbl    *LabelWidget
	pipelineLbl *LabelWidget
	captureLbl  *LabelWidget
}

// NewStatsPanel creates the labels inside parent (or the root when nil),
// starting at (row, startCol).
func NewStatsPanel(parent *FrameWidget, row, startCol int) StatsPanel {
	s := &statsPanel{
		sessionLbl:  Label(Width(14), Anchor("w")),
		totalLbl:    Label(Width(14), Anchor("w")),
		pipelineLbl: Label(Width(48), Anchor("w")),
		captureLbl:  Label(Width(48), Anchor("w")),
	}
	place := func(w *LabelWidget, r, c, span int) {
		if parent != nil {
			Grid(w, In(parent), Row(r), Column(c), Columnspan(span), Sticky("w"), Padx("0.2m"))
			return
		}
		Grid(w, Row(r), Column(c), Columnspan(span), Sticky("w"), Padx("0.2m"))
	}
	place(s.sessionLbl, row, startCol, 1)
	place(s.totalLbl, row, startCol+1, 1)
	place(s.pipelineLbl, row+1, startCol, 2)
	place(s.captureLbl, row+2, startCol, 2)
	s.SetStats(model.Stats{}, capture.CaptureStats{}, 0, 0)
	return s
}

func mmss(d time.Duration) string {
	seconds := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func (s *statsPanel) SetStats(st model.Stats, cs capture.CaptureStats, published int, publishes uint64) {
	if s == nil || s.sessionLbl == nil {
		return
	}
	s.sessionLbl.Configure(Txt("Session: " + mmss(st.Session)))
	s.totalLbl.Configure(Txt("Total: " + mmss(st.Total)))
	s.pipelineLbl.Configure(Txt(fmt.Sprintf("Inferences %d (failed %d, dropped %d)  last %dms  shown %d  publishes %d",
		st.Inferences, st.Failures, st.Dropped, st.LastLatency.Milliseconds(), published, publishes)))
	s.captureLbl.Configure(Txt(fmt.Sprintf("Frames %d (skipped %d)  avg grab %dms  age %dms",
		cs.Captures, cs.Skipped, cs.AvgCapture.Milliseconds(), cs.LatestFrameAge.Milliseconds())))
}
