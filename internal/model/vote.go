package model

import "time"

// Vote is one immutable ballot. The composite unique index on
// (UserID, CampaignID) is the one-vote-per-campaign invariant: the database
// rejects a second insert atomically, so there is no check-then-insert window.
// Votes are never updated or deleted, hence no gorm.Model / soft delete here.
type Vote struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"uniqueIndex:idx_voter_campaign;not null" json:"userId"`
	CampaignID  uint      `gorm:"uniqueIndex:idx_voter_campaign;not null" json:"campaignId"`
	CandidateID uint      `gorm:"index;not null" json:"candidateId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TallyEntry is one row of a campaign's results.
type TallyEntry struct {
	CandidateID uint   `json:"candidateId"`
	Name        string `json:"name"`
	Party       string `json:"party,omitempty"`
	Count       int64  `json:"count"`
}
