package recordset

import (
	"strconv"
	"strings"
)

// nullTokens are the cell values read as missing, in addition to blanks.
var nullTokens = map[string]bool{
	"NA":   true,
	"N/A":  true,
	"#N/A": true,
	"NaN":  true,
	"nan":  true,
	"null": true,
	"NULL": true,
	"None": true,
}

// IsNull reports whether a cell holds no value.
func IsNull(cell string) bool {
	s := strings.TrimSpace(cell)
	return s == "" || nullTokens[s]
}

// parseNumber parses a non-null cell as a float.
func parseNumber(cell string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// parseFlag parses a label cell. Null reads as false with ok set.
func parseFlag(cell string) (value bool, ok bool) {
	if IsNull(cell) {
		return false, true
	}
	f, isNum := parseNumber(cell)
	if !isNum || (f != 0 && f != 1) {
		return false, false
	}
	return f == 1, true
}

// Classify splits the non-identity columns into label columns (every
// non-null value is 0 or 1) and metadata columns. Both keep table order;
// the label order is what digit keys index into. The result is computed
// from the current columns on every call.
func (t *Table) Classify() (labels, metadata []string) {
	for c, name := range t.columns {
		if name == t.identity {
			continue
		}
		if t.isLabel(c) {
			labels = append(labels, name)
		} else {
			metadata = append(metadata, name)
		}
	}
	return labels, metadata
}

// LabelColumns returns the label column names in table order.
func (t *Table) LabelColumns() []string {
	labels, _ := t.Classify()
	return labels
}

// MetadataColumns returns the metadata column names in table order.
func (t *Table) MetadataColumns() []string {
	_, metadata := t.Classify()
	return metadata
}

// IsLabel reports whether name is currently a label column.
func (t *Table) IsLabel(name string) bool {
	if name == t.identity {
		return false
	}
	c := t.columnIndex(name)
	return c >= 0 && t.isLabel(c)
}

func (t *Table) isLabel(c int) bool {
	for _, row := range t.rows {
		if _, ok := parseFlag(row[c]); !ok {
			return false
		}
	}
	return true
}

// isNumeric reports whether every non-null cell of column c parses as a
// number, which selects numeric rather than lexical ordering.
func (t *Table) isNumeric(c int) bool {
	for _, row := range t.rows {
		if IsNull(row[c]) {
			continue
		}
		if _, ok := parseNumber(row[c]); !ok {
			return false
		}
	}
	return true
}
