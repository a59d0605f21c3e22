// Package query compiles flat filter parameters into composed read predicates
// and applies pagination. Filters never mutate stored data.
package query

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Spec describes the query surface of one entity: which parameters are
// accepted and which columns they touch.
type Spec struct {
	// Exact lists parameters matched verbatim against the column of the same
	// name (workspace_id, status, type, priority, ...).
	Exact []string
	// Search lists the text columns OR-matched by the "search" parameter.
	Search []string
	// DateColumn is compared against date_from/date_to; created_at when empty.
	DateColumn string
	// Exists maps parameters to columns checked for NULL / NOT NULL
	// (has_user -> user_id, is_scheduled -> next_attempt_at).
	Exists map[string]string
	// Null is the inverse of Exists: a truthy value selects rows where the
	// column IS NULL (is_running -> ended_at).
	Null map[string]string
	// JSONContains maps parameters to JSON array columns checked for
	// membership (event -> events).
	JSONContains map[string]string
	// Order is the default ordering clause.
	Order string
}

var truthyParam = map[string]bool{"1": true, "true": true, "0": false, "false": false}

// Apply composes all recognized filters conjunctively onto db. Unknown
// parameters are ignored.
func Apply(db *gorm.DB, spec Spec, params map[string]string) *gorm.DB {
	for _, col := range spec.Exact {
		if v, ok := params[col]; ok && v != "" {
			db = db.Where(fmt.Sprintf("%s = ?", col), v)
		}
	}

	if search, ok := params["search"]; ok && search != "" && len(spec.Search) > 0 {
		clauses := make([]string, len(spec.Search))
		args := make([]interface{}, len(spec.Search))
		for i, col := range spec.Search {
			clauses[i] = fmt.Sprintf("%s ILIKE ?", col)
			args[i] = "%" + search + "%"
		}
		db = db.Where(strings.Join(clauses, " OR "), args...)
	}

	dateCol := spec.DateColumn
	if dateCol == "" {
		dateCol = "created_at"
	}
	if from, ok := parseDate(params["date_from"]); ok {
		db = db.Where(fmt.Sprintf("%s >= ?", dateCol), from)
	}
	if to, ok := parseDate(params["date_to"]); ok {
		// Inclusive upper bound: push date-only values to end of day.
		if to.Hour() == 0 && to.Minute() == 0 && to.Second() == 0 {
			to = to.Add(24*time.Hour - time.Second)
		}
		db = db.Where(fmt.Sprintf("%s <= ?", dateCol), to)
	}

	for param, col := range spec.Exists {
		if v, ok := params[param]; ok && v != "" {
			if want, known := truthyParam[v]; known {
				if want {
					db = db.Where(fmt.Sprintf("%s IS NOT NULL", col))
				} else {
					db = db.Where(fmt.Sprintf("%s IS NULL", col))
				}
			}
		}
	}

	for param, col := range spec.Null {
		if v, ok := params[param]; ok && v != "" {
			if want, known := truthyParam[v]; known {
				if want {
					db = db.Where(fmt.Sprintf("%s IS NULL", col))
				} else {
					db = db.Where(fmt.Sprintf("%s IS NOT NULL", col))
				}
			}
		}
	}

	for param, col := range spec.JSONContains {
		if v, ok := params[param]; ok && v != "" {
			member, _ := json.Marshal([]string{v})
			db = db.Where(fmt.Sprintf("%s @> ?", col), string(member))
		}
	}

	if spec.Order != "" {
		db = db.Order(spec.Order)
	}
	return db
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
