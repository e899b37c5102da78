package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/eunmann/assoc-bench/pkg/humanfmt"
)

// WriteTable renders results as a table, one row per measurement.
// Degraded rows carry a note naming the size that actually ran.
func WriteTable(w io.Writer, results []Result) error {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Format.Header = text.FormatDefault
	tbl.Style().Format.Footer = text.FormatDefault
	tbl.AppendHeader(table.Row{"Entry", "N", "Iters", "Time/op", "ns/update", "Updates/s", "Overhead", "Allocs/op", "Bytes/op", "Note"})
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
		{Number: 8, Align: text.AlignRight},
		{Number: 9, Align: text.AlignRight},
	})

	for _, r := range results {
		tbl.AppendRow(table.Row{
			r.Entry,
			humanfmt.Count(r.RequestedN),
			humanfmt.Count(r.Iterations),
			humanfmt.Duration(r.PerOp()),
			strconv.FormatFloat(r.NsPerUpdate, 'f', 2, 64),
			humanfmt.UpdateRate(r.NsPerUpdate),
			humanfmt.Ratio(r.Overhead),
			humanize.Comma(r.AllocsPerOp),
			humanize.IBytes(uint64(max(r.BytesPerOp, 0))),
			note(r),
		})
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d measurements", len(results))})
	tbl.Render()
	return nil
}

func note(r Result) string {
	if r.Degraded {
		return fmt.Sprintf("ran at N=%d (size limit)", r.EffectiveN)
	}
	return ""
}
