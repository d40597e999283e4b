package types

import "time"

type Member struct {
	ID         int64     `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	LeadsCount int       `db:"leads_count" json:"leads_count"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
