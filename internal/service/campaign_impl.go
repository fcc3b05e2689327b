package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"colvote.com/internal/domain"
	"colvote.com/internal/model"
)

// CampaignServiceImpl implements domain.CampaignService.
type CampaignServiceImpl struct {
	db *gorm.DB
}

func NewCampaignService(db *gorm.DB) *CampaignServiceImpl {
	return &CampaignServiceImpl{db: db}
}

// CreateCampaign creates an active campaign, with inline candidates when given.
func (s *CampaignServiceImpl) CreateCampaign(ctx context.Context, title, description string, candidates []domain.CandidateInput) (*model.Campaign, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domain.NewBadRequestError("title is required")
	}

	campaign := model.Campaign{
		Title:       title,
		Description: strings.TrimSpace(description),
		IsActive:    true,
	}
	for _, c := range candidates {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, domain.NewBadRequestError("candidate name is required")
		}
		campaign.Candidates = append(campaign.Candidates, model.Candidate{
			Name:  name,
			Party: strings.TrimSpace(c.Party),
		})
	}

	if err := s.db.WithContext(ctx).Create(&campaign).Error; err != nil {
		return nil, domain.NewInternalError("failed to create campaign", err)
	}
	return &campaign, nil
}

func (s *CampaignServiceImpl) GetCampaign(ctx context.Context, id uint) (*model.Campaign, error) {
	var campaign model.Campaign
	if err := s.db.WithContext(ctx).Preload("Candidates").First(&campaign, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("campaign not found")
		}
		return nil, domain.NewInternalError("failed to fetch campaign", err)
	}
	return &campaign, nil
}

func (s *CampaignServiceImpl) ListCampaigns(ctx context.Context, activeOnly bool) ([]model.Campaign, error) {
	var campaigns []model.Campaign
	query := s.db.WithContext(ctx).Preload("Candidates").Order("id ASC")
	if activeOnly {
		query = query.Where("is_active = ? AND closed_at IS NULL", true)
	}
	if err := query.Find(&campaigns).Error; err != nil {
		return nil, domain.NewInternalError("failed to fetch campaigns", err)
	}
	return campaigns, nil
}

// SetCampaignStatus toggles IsActive. A closed campaign can never be altered.
func (s *CampaignServiceImpl) SetCampaignStatus(ctx context.Context, id uint, isActive bool) (*model.Campaign, error) {
	campaign, err := s.GetCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	if campaign.ClosedAt != nil {
		return nil, domain.NewCampaignClosedError()
	}

	if err := s.db.WithContext(ctx).Model(campaign).Update("is_active", isActive).Error; err != nil {
		return nil, domain.NewInternalError("failed to update campaign status", err)
	}
	return campaign, nil
}

// CloseCampaign ends the campaign permanently: IsActive drops to false and
// ClosedAt is stamped. Closing an already-closed campaign is a no-op.
func (s *CampaignServiceImpl) CloseCampaign(ctx context.Context, id uint) (*model.Campaign, error) {
	campaign, err := s.GetCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	if campaign.ClosedAt != nil {
		return campaign, nil
	}

	now := time.Now().UTC()
	if err := s.db.WithContext(ctx).Model(campaign).Updates(map[string]interface{}{
		"is_active": false,
		"closed_at": now,
	}).Error; err != nil {
		return nil, domain.NewInternalError("failed to close campaign", err)
	}
	return campaign, nil
}

// AddCandidate attaches a candidate to a campaign that is not yet closed.
func (s *CampaignServiceImpl) AddCandidate(ctx context.Context, campaignID uint, input domain.CandidateInput) (*model.Candidate, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.NewBadRequestError("candidate name is required")
	}

	campaign, err := s.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign.ClosedAt != nil {
		return nil, domain.NewCampaignClosedError()
	}

	candidate := model.Candidate{
		Name:       name,
		Party:      strings.TrimSpace(input.Party),
		CampaignID: campaign.ID,
	}
	if err := s.db.WithContext(ctx).Create(&candidate).Error; err != nil {
		return nil, domain.NewInternalError("failed to create candidate", err)
	}
	return &candidate, nil
}

func (s *CampaignServiceImpl) ListCandidates(ctx context.Context, campaignID uint) ([]model.Candidate, error) {
	var candidates []model.Candidate
	query := s.db.WithContext(ctx).Order("id ASC")
	if campaignID != 0 {
		query = query.Where("campaign_id = ?", campaignID)
	}
	if err := query.Find(&candidates).Error; err != nil {
		return nil, domain.NewInternalError("failed to fetch candidates", err)
	}
	return candidates, nil
}

// DeleteCandidate removes a candidate. Candidates with recorded votes cannot
// be deleted; votes are immutable and must stay attributable.
func (s *CampaignServiceImpl) DeleteCandidate(ctx context.Context, id uint) error {
	var votes int64
	if err := s.db.WithContext(ctx).Model(&model.Vote{}).
		Where("candidate_id = ?", id).
		Count(&votes).Error; err != nil {
		return domain.NewInternalError("failed to count candidate votes", err)
	}
	if votes > 0 {
		return domain.NewConflictError("candidate has recorded votes")
	}

	result := s.db.WithContext(ctx).Delete(&model.Candidate{}, id)
	if result.Error != nil {
		return domain.NewInternalError("failed to delete candidate", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("candidate not found")
	}
	return nil
}
