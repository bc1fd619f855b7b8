package types

// LabelValue is one label column's value for an item. Position is the
// 1-based digit that toggles it.
type LabelValue struct {
	Position int    `json:"position"`
	Name     string `json:"name"`
	Value    bool   `json:"value"`
}

// Field is one metadata column's value for an item. Empty means null.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ItemView is the read-only projection of one item handed to the UI layer.
type ItemView struct {
	ID       string       `json:"id"`
	Labels   []LabelValue `json:"labels"`
	Metadata []Field      `json:"metadata"`
}

// Result is returned by every operator-facing action: where the cursor is
// and what it points at. SaveErr reports a non-fatal persistence failure.
type Result struct {
	Position int       `json:"position"`
	Count    int       `json:"count"`
	Sort     SortSpec  `json:"sort"`
	Source   string    `json:"source"`
	Item     *ItemView `json:"item,omitempty"`
	SaveErr  error     `json:"-"`
}
