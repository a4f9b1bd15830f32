package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/glabrego/stackq-cli/internal/render/markup"
	"github.com/glabrego/stackq-cli/internal/stackexchange"
	tuiview "github.com/glabrego/stackq-cli/internal/tui/view"
)

// writePlain prints the result list for pipes and --plain.
func writePlain(w io.Writer, query string, questions []stackexchange.Question) error {
	header := color.New(color.Bold)
	number := color.New(color.FgYellow)
	meta := color.New(color.Faint)
	now := time.Now().Unix()

	if _, err := header.Fprintf(w, "Results for: %s\n\n", markup.StripControl(query)); err != nil {
		return err
	}
	for i, q := range questions {
		if _, err := number.Fprintf(w, "%d. ", i+1); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, markup.Text(q.Title)); err != nil {
			return err
		}
		indent := fmt.Sprintf("%*s", markup.ListPrefixWidth(i), "")
		if _, err := meta.Fprintf(w, "%s%s\n", indent, tuiview.QuestionInfo(q, now)); err != nil {
			return err
		}
		if link := markup.StripControl(q.Link); link != "" {
			if _, err := fmt.Fprintf(w, "%s%s\n", indent, link); err != nil {
				return err
			}
		}
	}
	return nil
}
