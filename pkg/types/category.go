package types

import "errors"

var ErrCategoryNotFound = errors.New("category not found")

type Category struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	Slug string `db:"slug" json:"slug"`
}

// CategorySeed is one entry of the fixed catalog, before it has a database id.
type CategorySeed struct {
	Name string
	Slug string
}
