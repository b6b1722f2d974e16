// Package option carries composable query options applied to gorm statements.
package option

import "gorm.io/gorm"

type QueryOption interface {
	Apply(stmt *gorm.DB) *gorm.DB
}

type queryOptionFunc func(stmt *gorm.DB) *gorm.DB

func (f queryOptionFunc) Apply(stmt *gorm.DB) *gorm.DB { return f(stmt) }

// OrderBy appends an ORDER BY clause, e.g. "created_at desc".
func OrderBy(expr string) QueryOption {
	return queryOptionFunc(func(stmt *gorm.DB) *gorm.DB {
		return stmt.Order(expr)
	})
}

// Limit caps the result size; non-positive values are ignored.
func Limit(n int) QueryOption {
	return queryOptionFunc(func(stmt *gorm.DB) *gorm.DB {
		if n <= 0 {
			return stmt
		}
		return stmt.Limit(n)
	})
}

// Offset skips n rows; non-positive values are ignored.
func Offset(n int) QueryOption {
	return queryOptionFunc(func(stmt *gorm.DB) *gorm.DB {
		if n <= 0 {
			return stmt
		}
		return stmt.Offset(n)
	})
}

// Where appends an arbitrary condition with arguments.
func Where(query string, args ...any) QueryOption {
	return queryOptionFunc(func(stmt *gorm.DB) *gorm.DB {
		return stmt.Where(query, args...)
	})
}

func Apply(stmt *gorm.DB, opts ...QueryOption) *gorm.DB {
	for _, opt := range opts {
		stmt = opt.Apply(stmt)
	}
	return stmt
}
