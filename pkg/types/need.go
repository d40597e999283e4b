package types

import (
	"errors"
	"time"
)

var ErrNeedNotFound = errors.New("need not found")

type NeedStatus string

const (
	NeedStatusOpen     NeedStatus = "Open"
	NeedStatusHasLeads NeedStatus = "Has Leads"
	// NeedStatusResolved is only ever set by a member after the fact.
	NeedStatusResolved NeedStatus = "Resolved"
)

func (s NeedStatus) Valid() bool {
	switch s {
	case NeedStatusOpen, NeedStatusHasLeads, NeedStatusResolved:
		return true
	}
	return false
}

type Need struct {
	ID           int64      `db:"id" json:"id"`
	Title        string     `db:"title" json:"title"`
	OriginalText *string    `db:"original_text" json:"original_text"`
	CategoryID   int64      `db:"category_id" json:"category_id"`
	DateOfNeed   time.Time  `db:"date_of_need" json:"date_of_need"`
	Status       NeedStatus `db:"status" json:"status"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

// NeedSummary is a need joined with its category and lead count, as listed on the board.
type NeedSummary struct {
	Need
	CategoryName string `db:"category_name" json:"category_name"`
	CategorySlug string `db:"category_slug" json:"category_slug"`
	LeadsCount   int    `db:"leads_count" json:"leads_count"`
}

type NeedFilters struct {
	Category string     `form:"category"`
	Status   NeedStatus `form:"status"`
	Search   string     `form:"search"`
	Limit    uint64     `form:"limit"`
	Offset   uint64     `form:"offset"`
}
