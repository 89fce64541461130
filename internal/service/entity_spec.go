package service

import (
	"strconv"
	"strings"
)

// Column one input field of a report entity, keyed by its JSON name
type Column struct {
	Key   string
	Label string
}

// EmptinessFunc decides whether a submitted row carries no data and must be skipped.
// Rows reach it with bookkeeping keys already removed.
type EmptinessFunc func(row map[string]any) bool

// EntitySpec describes how one report entity is ingested and reported
type EntitySpec struct {
	Key           string // URL segment, e.g. "casualties"
	ModelType     string // ledger model type, e.g. "Casualty"
	Label         string
	Columns       []Column
	TyphoonScoped bool
	Tracked       bool // updates append to the modification ledger
	ReplaceMode   bool // a submission replaces every row of the open typhoon
	IsEmpty       EmptinessFunc

	// ReportColumns overrides Columns in snapshots and exports
	ReportColumns []Column
}

func (s *EntitySpec) reportColumns() []Column {
	if len(s.ReportColumns) > 0 {
		return s.ReportColumns
	}
	return s.Columns
}

func (s *EntitySpec) columnKeys() []string {
	keys := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		keys[i] = c.Key
	}
	return keys
}

// ── emptiness predicates ──
// Each entity keeps its own rule; some treat 0 as no data, some do not.

// blankRow: empty unless a non-ignored value is non-nil and not a blank string
func blankRow(ignored ...string) EmptinessFunc {
	return emptyUnless(false, ignored)
}

// blankOrZeroRow: like blankRow, but 0 and "0" also count as no data
func blankOrZeroRow(ignored ...string) EmptinessFunc {
	return emptyUnless(true, ignored)
}

func emptyUnless(zeroIsEmpty bool, ignored []string) EmptinessFunc {
	skip := make(map[string]bool, len(ignored))
	for _, k := range ignored {
		skip[k] = true
	}
	return func(row map[string]any) bool {
		for k, v := range row {
			if skip[k] {
				continue
			}
			if hasValue(v, zeroIsEmpty) {
				return false
			}
		}
		return true
	}
}

func hasValue(v any, zeroIsEmpty bool) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		t := strings.TrimSpace(x)
		if t == "" {
			return false
		}
		return !(zeroIsEmpty && isZeroString(t))
	case bool:
		return x
	case float64:
		return !(zeroIsEmpty && x == 0)
	case float32:
		return !(zeroIsEmpty && x == 0)
	case int:
		return !(zeroIsEmpty && x == 0)
	case int64:
		return !(zeroIsEmpty && x == 0)
	case uint:
		return !(zeroIsEmpty && x == 0)
	default:
		return true
	}
}

func isZeroString(s string) bool {
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && f == 0
}
