package service

import (
	"context"
	"errors"
	"sort"

	"gorm.io/gorm"

	"colvote.com/internal/domain"
	"colvote.com/internal/model"
)

// VoteServiceImpl implements domain.VoteService: the append-only vote ledger
// and the read-side tally.
type VoteServiceImpl struct {
	db *gorm.DB
}

func NewVoteService(db *gorm.DB) *VoteServiceImpl {
	return &VoteServiceImpl{db: db}
}

// CastVote records one vote inside a single transaction. The open/closed check
// reads the current campaign row, and uniqueness of (voter, campaign) is
// enforced by the votes unique index: two concurrent duplicates race on the
// insert itself and the database lets exactly one through.
func (s *VoteServiceImpl) CastVote(ctx context.Context, voterID, campaignID, candidateID uint) (*model.Vote, error) {
	if voterID == 0 || campaignID == 0 || candidateID == 0 {
		return nil, domain.NewBadRequestError("campaignId and candidateId are required")
	}

	var vote model.Vote
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var campaign model.Campaign
		if err := tx.First(&campaign, campaignID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFoundError("campaign not found")
			}
			return domain.NewInternalError("failed to fetch campaign", err)
		}
		if !campaign.Open() {
			return domain.NewCampaignClosedError()
		}

		var candidate model.Candidate
		if err := tx.Where("id = ? AND campaign_id = ?", candidateID, campaignID).
			First(&candidate).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &domain.AppError{Code: 404, Message: "candidate not found in campaign", Err: domain.ErrCandidateNotFound}
			}
			return domain.NewInternalError("failed to fetch candidate", err)
		}

		vote = model.Vote{
			UserID:      voterID,
			CampaignID:  campaignID,
			CandidateID: candidateID,
		}
		if err := tx.Create(&vote).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.NewDuplicateVoteError()
			}
			return domain.NewInternalError("failed to record vote", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &vote, nil
}

// Tally recomputes the results for one campaign. Every candidate appears, zero
// counts included; ordering is count descending with ties broken by candidate
// insertion order (ascending ID).
func (s *VoteServiceImpl) Tally(ctx context.Context, campaignID uint) ([]model.TallyEntry, error) {
	var campaign model.Campaign
	if err := s.db.WithContext(ctx).First(&campaign, campaignID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("campaign not found")
		}
		return nil, domain.NewInternalError("failed to fetch campaign", err)
	}

	var candidates []model.Candidate
	if err := s.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Order("id ASC").
		Find(&candidates).Error; err != nil {
		return nil, domain.NewInternalError("failed to fetch candidates", err)
	}

	type countRow struct {
		CandidateID uint
		Count       int64
	}
	var rows []countRow
	if err := s.db.WithContext(ctx).Model(&model.Vote{}).
		Select("candidate_id, COUNT(*) as count").
		Where("campaign_id = ?", campaignID).
		Group("candidate_id").
		Scan(&rows).Error; err != nil {
		return nil, domain.NewInternalError("failed to count votes", err)
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.CandidateID] = row.Count
	}

	entries := make([]model.TallyEntry, 0, len(candidates))
	for _, c := range candidates {
		entries = append(entries, model.TallyEntry{
			CandidateID: c.ID,
			Name:        c.Name,
			Party:       c.Party,
			Count:       counts[c.ID],
		})
	}

	// candidates were fetched in insertion order, so a stable sort keeps
	// that order for equal counts.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	return entries, nil
}

// MyVotes returns the ballots one voter has cast, oldest first.
func (s *VoteServiceImpl) MyVotes(ctx context.Context, voterID uint) ([]model.Vote, error) {
	var votes []model.Vote
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", voterID).
		Order("id ASC").
		Find(&votes).Error; err != nil {
		return nil, domain.NewInternalError("failed to fetch votes", err)
	}
	return votes, nil
}
