package main

import (
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/heartmarshall/abaevdict/internal/app/pipeline"
)

func renderPhases(w io.Writer, results []pipeline.PhaseResult) {
	if len(results) == 0 {
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Phase", "Rows", "Skipped", "Duration", "Status"})
	for _, r := range results {
		status := "ok"
		if r.Err != nil {
			status = "failed"
		}
		t.AppendRow(table.Row{r.Name, r.Rows, r.Skipped, r.Duration.Round(time.Millisecond), status})
	}
	t.Render()
}

func renderBuild(w io.Writer, b *pipeline.Build) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Table", "File", "Rows"})
	total := 0
	for _, f := range b.Files {
		t.AppendRow(table.Row{f.Table, f.File, f.Rows})
		total += f.Rows
	}
	t.AppendFooter(table.Row{"", "total", total})
	t.Render()

	if len(b.Skipped) == 0 {
		return
	}
	s := table.NewWriter()
	s.SetOutputMirror(w)
	s.SetStyle(table.StyleLight)
	s.AppendHeader(table.Row{"Skipped document", "Error"})
	for _, d := range b.Skipped {
		s.AppendRow(table.Row{d.Doc, d.Err.Error()})
	}
	s.Render()
}
