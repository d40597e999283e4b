package types

import "time"

type Lead struct {
	ID           int64     `db:"id" json:"id"`
	NeedID       int64     `db:"need_id" json:"need_id"`
	ContactName  *string   `db:"contact_name" json:"contact_name"`
	ContactInfo  *string   `db:"contact_info" json:"contact_info"`
	ProvidedByID *int64    `db:"provided_by_id" json:"provided_by_id"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type LeadWithProvider struct {
	Lead
	ProvidedByName *string `db:"provided_by_name" json:"provided_by_name"`
}
