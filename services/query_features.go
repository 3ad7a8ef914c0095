package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"challenge-hub-system/utils"

	"gorm.io/gorm"
)

const (
	defaultPage  = 1
	defaultLimit = 6
)

// Control keys consumed by the query layer itself; everything else is a
// filter on a challenge column.
var controlKeys = map[string]bool{
	"page":   true,
	"sort":   true,
	"limit":  true,
	"fields": true,
}

type columnKind int

const (
	kindString columnKind = iota
	kindTime
)

// Columns callers may filter on, with their value type. Anything outside
// this list is rejected instead of being forwarded to the store.
var filterableColumns = map[string]columnKind{
	"title":         kindString,
	"status":        kindString,
	"prize":         kindString,
	"duration":      kindString,
	"contact_email": kindString,
	"start_time":    kindTime,
	"deadline":      kindTime,
	"created_at":    kindTime,
}

var sortableColumns = map[string]bool{
	"title":      true,
	"status":     true,
	"prize":      true,
	"start_time": true,
	"deadline":   true,
	"created_at": true,
	"updated_at": true,
}

var projectableColumns = map[string]bool{
	"id":              true,
	"title":           true,
	"slug":            true,
	"brief":           true,
	"description":     true,
	"requirements":    true,
	"deliverables":    true,
	"seniority_level": true,
	"skills":          true,
	"start_time":      true,
	"deadline":        true,
	"duration":        true,
	"prize":           true,
	"contact_email":   true,
	"status":          true,
	"cover_url":       true,
	"created_at":      true,
	"updated_at":      true,
}

var comparisonOps = map[string]string{
	"gte": ">=",
	"gt":  ">",
	"lte": "<=",
	"lt":  "<",
}

// ChallengeQuery translates a parsed query string (filter, sort, fields,
// page, limit) into GORM clauses over the challenges table.
type ChallengeQuery struct {
	params map[string]string
}

func NewChallengeQuery(params map[string]string) *ChallengeQuery {
	return &ChallengeQuery{params: params}
}

// splitFilterKey splits "deadline[gte]" into ("deadline", "gte"). A bare
// key comes back with an empty operator, meaning equality.
func splitFilterKey(key string) (column, op string) {
	if i := strings.IndexByte(key, '['); i >= 0 && strings.HasSuffix(key, "]") {
		return key[:i], key[i+1 : len(key)-1]
	}
	return key, ""
}

func parseTimeValue(column, raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Time{}, utils.NewValidationError(fmt.Sprintf("invalid date value %q for filter %q", raw, column))
}

// Filter applies every non-control key as a typed predicate.
func (q *ChallengeQuery) Filter(db *gorm.DB) (*gorm.DB, error) {
	for key, raw := range q.params {
		if controlKeys[key] {
			continue
		}
		column, op := splitFilterKey(key)
		colKind, ok := filterableColumns[column]
		if !ok {
			return nil, utils.NewValidationError(fmt.Sprintf("cannot filter on %q", column))
		}
		sqlOp := "="
		if op != "" {
			sqlOp, ok = comparisonOps[op]
			if !ok {
				return nil, utils.NewValidationError(fmt.Sprintf("unknown filter operator %q", op))
			}
		}
		var value interface{} = raw
		if colKind == kindTime {
			t, err := parseTimeValue(column, raw)
			if err != nil {
				return nil, err
			}
			value = t
		}
		db = db.Where(fmt.Sprintf("%s %s ?", column, sqlOp), value)
	}
	return db, nil
}

// Sort applies the comma-separated sort list; a leading '-' means
// descending. Defaults to newest-created-first.
func (q *ChallengeQuery) Sort(db *gorm.DB) (*gorm.DB, error) {
	raw := q.params["sort"]
	if raw == "" {
		return db.Order("created_at DESC"), nil
	}
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		direction := "ASC"
		if strings.HasPrefix(field, "-") {
			direction = "DESC"
			field = field[1:]
		}
		if !sortableColumns[field] {
			return nil, utils.NewValidationError(fmt.Sprintf("cannot sort on %q", field))
		}
		db = db.Order(fmt.Sprintf("%s %s", field, direction))
	}
	return db, nil
}

// Project narrows the selected columns to the requested allow-listed
// fields. Without a fields key the full entity is returned.
func (q *ChallengeQuery) Project(db *gorm.DB) (*gorm.DB, error) {
	raw := q.params["fields"]
	if raw == "" {
		return db, nil
	}
	var columns []string
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		if !projectableColumns[field] {
			return nil, utils.NewValidationError(fmt.Sprintf("cannot select field %q", field))
		}
		columns = append(columns, field)
	}
	if len(columns) == 0 {
		return db, nil
	}
	return db.Select(columns), nil
}

// Page returns the requested page, falling back to 1 on junk input.
func (q *ChallengeQuery) Page() int {
	if n, err := strconv.Atoi(q.params["page"]); err == nil && n > 0 {
		return n
	}
	return defaultPage
}

// Limit returns the requested page size, falling back to 6 on junk input.
func (q *ChallengeQuery) Limit() int {
	if n, err := strconv.Atoi(q.params["limit"]); err == nil && n > 0 {
		return n
	}
	return defaultLimit
}

// Paginate applies the skip/limit window. Out-of-range pages simply
// produce an empty result.
func (q *ChallengeQuery) Paginate(db *gorm.DB) *gorm.DB {
	page := q.Page()
	limit := q.Limit()
	return db.Offset((page - 1) * limit).Limit(limit)
}
