package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/Syuf1514/video-labeler/internal/render"
	"github.com/Syuf1514/video-labeler/pkg/types"
)

var (
	bold  = color.New(color.Bold)
	faint = color.New(color.Faint)
	green = color.New(color.FgGreen)
)

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// printResult shows where the cursor is and the current item: its labels
// with their toggle digits, then its metadata as YAML.
func (a *app) printResult(w io.Writer, res types.Result) error {
	if a.flags.jsonMode {
		return printJSON(w, res)
	}

	_, _ = bold.Fprintf(w, "[%s] %s\n", render.Counter(res), render.Title(res))
	_, _ = faint.Fprintf(w, "source: %s\nsort:   %s\n", res.Source, res.Sort)
	if res.Item == nil {
		return nil
	}
	_, _ = faint.Fprintf(w, "id:     %s\n", res.Item.ID)

	fmt.Fprintln(w)
	if len(res.Item.Labels) == 0 {
		_, _ = faint.Fprintln(w, "no label columns")
	}
	for _, l := range res.Item.Labels {
		c := color.New()
		if l.Value {
			c = green
		}
		_, _ = c.Fprintln(w, render.LabelLine(l))
	}

	meta, err := render.Metadata(res.Item.Metadata)
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	_, _ = bold.Fprintln(w, "metadata")
	_, err = fmt.Fprint(w, meta)
	return err
}

// newTable returns a uitable with the column spacing used by every
// listing.
func newTable(header ...any) *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	if len(header) > 0 {
		cells := make([]any, len(header))
		for i, h := range header {
			cells[i] = bold.Sprint(h)
		}
		tbl.AddRow(cells...)
	}
	return tbl
}
