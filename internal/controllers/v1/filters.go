package v1

import (
	"fmt"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// stringFilters adds fuzzy filters for name, note and search to the query.
//
// A parameter that is set, but empty, filters for the empty string.
func stringFilters(db, query *gorm.DB, setFields []string, name, note, search string) *gorm.DB {
	if name != "" {
		query = query.Where("name LIKE ?", fmt.Sprintf("%%%s%%", name))
	} else if slices.Contains(setFields, "Name") {
		query = query.Where("name = ''")
	}

	if note != "" {
		query = query.Where("note LIKE ?", fmt.Sprintf("%%%s%%", note))
	} else if slices.Contains(setFields, "Note") {
		query = query.Where("note = ''")
	}

	if search != "" {
		query = query.Where(
			db.Where("note LIKE ?", fmt.Sprintf("%%%s%%", search)).Or(
				db.Where("name LIKE ?", fmt.Sprintf("%%%s%%", search)),
			),
		)
	}

	return query
}

// limit returns the requested limit or the default if none was requested.
func limit(setFields []string, requested int) int {
	if slices.Contains(setFields, "Limit") {
		return requested
	}

	return defaultLimit
}

// paginate returns the part of items selected by offset and limit.
// A negative limit returns all items after the offset.
func paginate[T any](items []T, offset uint, limit int) []T {
	if int(offset) >= len(items) {
		return []T{}
	}

	items = items[offset:]
	if limit >= 0 && limit < len(items) {
		items = items[:limit]
	}

	return items
}
