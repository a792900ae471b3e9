package report

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"menagerie/internal/game"
)

// Metric is one CSV row of a report. Section is one of allele, defect,
// color or stat.
type Metric struct {
	Section string  `csv:"section"`
	Name    string  `csv:"name"`
	Value   float64 `csv:"value"`
	Count   int     `csv:"count"`
	StdDev  float64 `csv:"stddev"`
	Min     float64 `csv:"min"`
	Max     float64 `csv:"max"`
}

// Metrics flattens r into rows.
func (r *Report) Metrics() []Metric {
	out := make([]Metric, 0, len(r.Alleles)+2*len(r.Defects)+len(r.Colors)+len(r.Stats))
	for _, a := range r.Alleles {
		out = append(out, Metric{
			Section: "allele",
			Name:    a.Locus + ":" + string(a.Allele),
			Value:   a.Frequency,
			Count:   int(a.Frequency*float64(2*r.Trials) + 0.5),
		})
	}
	for _, d := range r.Defects {
		out = append(out,
			Metric{Section: "defect", Name: d.Name, Value: d.Incidence, Count: d.Affected},
			Metric{Section: "carrier", Name: d.Name, Value: d.CarrierRate, Count: d.Carriers},
		)
	}
	for _, c := range r.Colors {
		out = append(out, Metric{Section: "color", Name: c.Color, Value: c.Share, Count: c.Count})
	}
	for _, s := range r.Stats {
		out = append(out, Metric{
			Section: "stat",
			Name:    string(s.Attribute),
			Value:   s.Mean,
			Count:   r.Trials,
			StdDev:  s.StdDev,
			Min:     s.Min,
			Max:     s.Max,
		})
	}
	return out
}

// WriteCSV writes the flattened report with a header row.
func WriteCSV(w io.Writer, r *Report) error {
	if err := gocsv.Marshal(r.Metrics(), w); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// ResultRow is one placement of a completed event.
type ResultRow struct {
	Event     string  `csv:"event"`
	Category  string  `csv:"category"`
	Placement int     `csv:"placement"`
	Owner     string  `csv:"owner"`
	Animal    string  `csv:"animal"`
	Score     float64 `csv:"score"`
	Base      float64 `csv:"base"`
	Training  int     `csv:"training"`
	Luck      float64 `csv:"luck"`
}

// WriteResultsCSV writes the results of ev in placement order.
func WriteResultsCSV(w io.Writer, ev *game.Event) error {
	if ev.Status != game.StatusCompleted {
		return fmt.Errorf("%w: event %s is %s", game.ErrEventNotReady, ev.ID, ev.Status)
	}
	rows := make([]ResultRow, 0, len(ev.Results))
	for _, res := range ev.Results {
		rows = append(rows, ResultRow{
			Event:     ev.Name,
			Category:  ev.Category,
			Placement: res.Placement,
			Owner:     res.Owner,
			Animal:    res.Animal,
			Score:     res.Score,
			Base:      res.Detail.Base,
			Training:  res.Detail.Training,
			Luck:      res.Detail.Luck,
		})
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	return nil
}
