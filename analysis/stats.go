package analysis

import (
	"fmt"
	"io"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/lixenwraith/pipes/geometry"
	"github.com/lixenwraith/pipes/pipe"
)

// Stats summarizes one scene
type Stats struct {
	Seed      int64 `json:"seed"`
	Pipes     int   `json:"pipes"`
	Blocked   int   `json:"blocked"`
	Saturated bool  `json:"saturated"`

	Steps     int `json:"steps"` // Real steps across all pipes
	Straights int `json:"straights"`
	Curves    int `json:"curves"`
	Junctions int `json:"junctions"`

	MeanLength   float64 `json:"mean_length"`
	StdDevLength float64 `json:"stddev_length"`
	MedianLength float64 `json:"median_length"`
	MinLength    float64 `json:"min_length"`
	MaxLength    float64 `json:"max_length"`

	// FillRatio is occupied cells over grid volume
	FillRatio float64 `json:"fill_ratio"`

	// TurnRate is turns per move, excluding each pipe's start
	TurnRate float64 `json:"turn_rate"`

	// CurveUse counts each curve id, indexed from ElementCurveFirst
	CurveUse [geometry.CurveCount]int `json:"curve_use"`
}

// Summarize computes statistics over a generated scene
func Summarize(ps *pipe.PathSet) Stats {
	s := Stats{
		Seed:      ps.Seed,
		Pipes:     len(ps.Pipes),
		Saturated: ps.Saturated,
	}

	lengths := make([]float64, 0, len(ps.Pipes))
	for i, p := range ps.Pipes {
		walk := p.Real()
		lengths = append(lengths, float64(len(walk)))
		if i < len(ps.Reports) && ps.Reports[i].State == pipe.StateBlocked {
			s.Blocked++
		}

		for _, st := range walk {
			s.Steps++
			switch st.Kind {
			case geometry.KindStraight:
				s.Straights++
			case geometry.KindCurve:
				s.Curves++
				if geometry.IsCurve(st.Element) {
					s.CurveUse[st.Element-geometry.ElementCurveFirst]++
				}
			case geometry.KindJunction:
				s.Junctions++
			}
		}
	}

	if vol := ps.Config.Dims.Volume(); vol > 0 {
		s.FillRatio = float64(ps.Occupied) / float64(vol)
	}
	if moves := s.Steps - s.Pipes; moves > 0 {
		s.TurnRate = float64(s.Curves+s.Junctions) / float64(moves)
	}

	if len(lengths) == 0 {
		return s
	}

	s.MeanLength = stat.Mean(lengths, nil)
	if len(lengths) > 1 {
		s.StdDevLength = stat.StdDev(lengths, nil)
	}
	s.MinLength = floats.Min(lengths)
	s.MaxLength = floats.Max(lengths)

	sorted := append([]float64(nil), lengths...)
	sort.Float64s(sorted)
	s.MedianLength = stat.Quantile(0.5, stat.Empirical, sorted, nil)

	return s
}

// Write prints a human-readable summary
func (s Stats) Write(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"seed:       %d\n"+
			"pipes:      %d (blocked %d, saturated %v)\n"+
			"steps:      %d (straight %d, curve %d, junction %d)\n"+
			"length:     mean %.1f sd %.1f median %.0f range [%.0f, %.0f]\n"+
			"fill:       %.2f%%\n"+
			"turn rate:  %.3f\n",
		s.Seed,
		s.Pipes, s.Blocked, s.Saturated,
		s.Steps, s.Straights, s.Curves, s.Junctions,
		s.MeanLength, s.StdDevLength, s.MedianLength, s.MinLength, s.MaxLength,
		s.FillRatio*100,
		s.TurnRate,
	)
	return err
}
