package recordset

import (
	"fmt"

	"github.com/Syuf1514/video-labeler/pkg/types"
)

// Item projects one row into the view handed to the UI layer: label values
// in label order (Position is the toggling digit) and metadata fields in
// column order.
func (t *Table) Item(id string) (types.ItemView, error) {
	r, ok := t.index[id]
	if !ok {
		return types.ItemView{}, fmt.Errorf("%w: %q", types.ErrUnknownItem, id)
	}
	row := t.rows[r]
	view := types.ItemView{ID: id}

	labels, metadata := t.Classify()
	for i, name := range labels {
		v, _ := parseFlag(row[t.columnIndex(name)])
		view.Labels = append(view.Labels, types.LabelValue{Position: i + 1, Name: name, Value: v})
	}
	for _, name := range metadata {
		view.Metadata = append(view.Metadata, types.Field{Name: name, Value: row[t.columnIndex(name)]})
	}
	return view, nil
}
