// Package render formats item views for the terminal. The CLI and the TUI
// share it so both show an item the same way.
package render

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Syuf1514/video-labeler/internal/recordset"
	"github.com/Syuf1514/video-labeler/pkg/types"
)

// Counter is the 1-based "n/N" position of the cursor.
func Counter(res types.Result) string {
	if res.Count == 0 {
		return "0/0"
	}
	return fmt.Sprintf("%d/%d", res.Position+1, res.Count)
}

// Title is the current item's file name, or a placeholder.
func Title(res types.Result) string {
	if res.Item == nil {
		return "(no item)"
	}
	return filepath.Base(res.Item.ID)
}

// Checkbox renders a label value.
func Checkbox(v bool) string {
	if v {
		return "[x]"
	}
	return "[ ]"
}

// LabelLine renders one label as "[x] 1. name".
func LabelLine(l types.LabelValue) string {
	return fmt.Sprintf("%s %d. %s", Checkbox(l.Value), l.Position, l.Name)
}

// Metadata renders fields as a YAML mapping in column order. Nulls render
// as null and numeric cells as numbers.
func Metadata(fields []types.Field) (string, error) {
	if len(fields) == 0 {
		return "{}\n", nil
	}
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range fields {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Name}
		val := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
		if v := scalar(f.Value); v != nil {
			if err := val.Encode(v); err != nil {
				return "", fmt.Errorf("encode %s: %w", f.Name, err)
			}
		}
		doc.Content = append(doc.Content, key, val)
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal metadata: %w", err)
	}
	return string(out), nil
}

func scalar(cell string) any {
	if recordset.IsNull(cell) {
		return nil
	}
	s := strings.TrimSpace(cell)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return cell
}
