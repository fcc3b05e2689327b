package model

import (
	"time"

	"gorm.io/gorm"
)

// Campaign is one election. IsActive gates voting; ClosedAt marks the
// one-way end of the lifecycle, a closed campaign can never reopen.
type Campaign struct {
	gorm.Model
	Title       string      `gorm:"not null" json:"title"`
	Description string      `json:"description"`
	IsActive    bool        `gorm:"default:true" json:"isActive"`
	ClosedAt    *time.Time  `json:"closedAt,omitempty"`
	Candidates  []Candidate `gorm:"foreignKey:CampaignID" json:"candidates,omitempty"`
}

// Open reports whether the campaign currently accepts votes.
func (c *Campaign) Open() bool {
	return c.IsActive && c.ClosedAt == nil
}

// Candidate is one option within a campaign.
type Candidate struct {
	gorm.Model
	Name       string `gorm:"not null" json:"name"`
	Party      string `json:"party"` // optional affiliation label
	CampaignID uint   `gorm:"index;not null" json:"campaignId"`
}
