package db

import (
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/dggcrm/dggcrm/internal/shared/query"
)

// '!' is the LIKE escape character; backslash is not portable to MySQL string literals.
var likeEscaper = strings.NewReplacer(`!`, `!!`, `%`, `!%`, `_`, `!_`)

// ContainsFold is a GORM scope matching rows where any of the given columns
// contains term, case-insensitively. Columns come from code, never from
// request input. An empty term leaves the query unchanged.
//
// Example usage:
//
//	db.Model(&models.ContactModel{}).Scopes(db.ContainsFold(q, "full_name", "email"))
func ContainsFold(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return tx
		}
		pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"

		clauses := make([]string, 0, len(columns))
		args := make([]interface{}, 0, len(columns))
		for _, col := range columns {
			clauses = append(clauses, "LOWER("+col+") LIKE ? ESCAPE '!'")
			args = append(args, pattern)
		}
		return tx.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
}

// TimeBetween restricts column to [from, to]; nil bounds are open.
func TimeBetween(column string, from, to *time.Time) func(db *gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if from != nil {
			tx = tx.Where(column+" >= ?", *from)
		}
		if to != nil {
			tx = tx.Where(column+" <= ?", *to)
		}
		return tx
	}
}

// Paginate applies LIMIT/OFFSET for the page filter.
func Paginate(p query.PageFilter) func(db *gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Offset(p.Offset()).Limit(p.Limit())
	}
}

// Ordered applies the sort terms, followed by an id tie-break so that pages
// are stable.
func Ordered(s query.SortFilter, idColumn string) func(db *gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		for _, t := range s.Terms {
			tx = tx.Order(t.String())
		}
		if idColumn != "" {
			tx = tx.Order(idColumn + " DESC")
		}
		return tx
	}
}

// MatchIDOrContains behaves like ContainsFold, and additionally matches
// idColumn exactly when term is a positive integer.
func MatchIDOrContains(term, idColumn string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		id, err := strconv.ParseUint(term, 10, 64)
		if err != nil || id == 0 {
			return ContainsFold(term, columns...)(tx)
		}
		pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"

		clauses := []string{idColumn + " = ?"}
		args := []interface{}{id}
		for _, col := range columns {
			clauses = append(clauses, "LOWER("+col+") LIKE ? ESCAPE '!'")
			args = append(args, pattern)
		}
		return tx.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
}
