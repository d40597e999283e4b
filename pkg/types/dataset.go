package types

import "errors"

// DateLayout is the calendar format used for date_of_need in the dataset artifact.
const DateLayout = "2006-01-02"

var (
	ErrUnsupportedDatasetFormat = errors.New("unsupported dataset format")
	ErrInputNotFound            = errors.New("input file not found")
)

type DatasetFormat string

const (
	DatasetFormatJSON DatasetFormat = "json"
	DatasetFormatYAML DatasetFormat = "yaml"
)

// Dataset is the artifact handed from the import pipeline to the loader.
// Ids in it are run-local and are replaced by database ids on load.
type Dataset struct {
	Needs   []DatasetNeed   `json:"needs" yaml:"needs"`
	Leads   []DatasetLead   `json:"leads" yaml:"leads"`
	Members []DatasetMember `json:"members" yaml:"members"`
	Stats   DatasetStats    `json:"stats" yaml:"stats"`
}

type DatasetNeed struct {
	ID           int        `json:"id" yaml:"id"`
	Title        string     `json:"title" yaml:"title"`
	OriginalText string     `json:"original_text" yaml:"original_text"`
	CategorySlug string     `json:"category_slug" yaml:"category_slug"`
	DateOfNeed   string     `json:"date_of_need" yaml:"date_of_need"`
	Status       NeedStatus `json:"status" yaml:"status"`
}

type DatasetLead struct {
	NeedID      int     `json:"need_id" yaml:"need_id"`
	ContactName *string `json:"contact_name" yaml:"contact_name"`
	ContactInfo *string `json:"contact_info" yaml:"contact_info"`
	ProvidedBy  *string `json:"provided_by" yaml:"provided_by"`
}

type DatasetMember struct {
	ID         int    `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	LeadsCount int    `json:"leads_count" yaml:"leads_count"`
}

type DatasetStats struct {
	TotalNeeds     int `json:"total_needs" yaml:"total_needs"`
	TotalLeads     int `json:"total_leads" yaml:"total_leads"`
	TotalMembers   int `json:"total_members" yaml:"total_members"`
	NeedsWithLeads int `json:"needs_with_leads" yaml:"needs_with_leads"`
}
