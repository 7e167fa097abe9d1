package models

import "time"

// Regions is the closed set of valid territory regions.
var Regions = []string{"Oeste", "Norte", "Sul", "Centro", "Leste"}

// Territory is a geographic work unit with its completion-date history.
//
// TimesWhereItWasDone holds ISO timestamps normalized to 12:00 UTC, newest
// first. LeastEditedBy holds the last editors, most recent first, capped at 5.
type Territory struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	Name                string    `gorm:"size:191;not null;index" json:"name"`
	Description         string    `gorm:"type:text" json:"description"`
	Region              string    `gorm:"size:32;not null" json:"region"`
	DoneRecently        bool      `gorm:"not null;default:false" json:"done_recently"`
	TimesWhereItWasDone []string  `gorm:"serializer:json" json:"times_where_it_was_done"`
	LeastEditedBy       []string  `gorm:"serializer:json" json:"least_edited_by"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func ValidRegion(r string) bool {
	for _, v := range Regions {
		if v == r {
			return true
		}
	}
	return false
}
