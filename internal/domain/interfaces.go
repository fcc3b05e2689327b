package domain

import (
	"context"
	"time"

	"colvote.com/internal/model"
)

// UserService covers registration, login and electoral-roll management.
type UserService interface {
	// Register creates a voter account. The password is hashed before storage.
	Register(ctx context.Context, input RegisterInput) (*model.User, error)
	// Authenticate verifies colegiado + DPI + birth date + password and
	// returns the matching user, or ErrUnauthorized on any mismatch.
	Authenticate(ctx context.Context, input LoginInput) (*model.User, error)
	// GetUser fetches one user by ID.
	GetUser(ctx context.Context, id uint) (*model.User, error)
	// ListUsers returns a page of the electoral roll.
	ListUsers(ctx context.Context, page, pageSize int) ([]model.User, int64, error)
	// UpdateUser applies a partial update. Role changes require asAdmin.
	UpdateUser(ctx context.Context, id uint, updates UserUpdate, asAdmin bool) (*model.User, error)
	// DeleteUser removes a user from the roll.
	DeleteUser(ctx context.Context, id uint) error
	// EnsureAdmin seeds the bootstrap admin when no admin account exists.
	EnsureAdmin(ctx context.Context, colegiado, password string) error
}

// RegisterInput groups the registration fields.
type RegisterInput struct {
	Colegiado string
	Name      string
	Email     string
	DPI       string
	BirthDate string
	Password  string
}

// LoginInput groups the login credentials.
type LoginInput struct {
	Colegiado string
	DPI       string
	BirthDate string
	Password  string
}

// UserUpdate lists the mutable user fields; nil means "leave unchanged".
type UserUpdate struct {
	Name      *string
	Email     *string
	BirthDate *string
	Password  *string
	Role      *model.Role
}

// CampaignService manages campaigns and their candidates.
type CampaignService interface {
	// CreateCampaign creates a campaign, optionally with inline candidates.
	CreateCampaign(ctx context.Context, title, description string, candidates []CandidateInput) (*model.Campaign, error)
	// GetCampaign fetches one campaign with its candidates.
	GetCampaign(ctx context.Context, id uint) (*model.Campaign, error)
	// ListCampaigns returns campaigns with candidates; activeOnly filters to
	// those open for voting.
	ListCampaigns(ctx context.Context, activeOnly bool) ([]model.Campaign, error)
	// SetCampaignStatus toggles IsActive. Fails once the campaign is closed.
	SetCampaignStatus(ctx context.Context, id uint, isActive bool) (*model.Campaign, error)
	// CloseCampaign ends the campaign permanently.
	CloseCampaign(ctx context.Context, id uint) (*model.Campaign, error)
	// AddCandidate attaches a candidate to an open campaign.
	AddCandidate(ctx context.Context, campaignID uint, input CandidateInput) (*model.Candidate, error)
	// ListCandidates returns all candidates, or those of one campaign when
	// campaignID is non-zero.
	ListCandidates(ctx context.Context, campaignID uint) ([]model.Candidate, error)
	// DeleteCandidate removes a candidate that has not received votes.
	DeleteCandidate(ctx context.Context, id uint) error
}

// CandidateInput groups the candidate creation fields.
type CandidateInput struct {
	Name  string
	Party string
}

// VoteService is the vote ledger and the read-side tally.
type VoteService interface {
	// CastVote records exactly one vote per (voter, campaign). A concurrent
	// duplicate is rejected by the storage constraint, not by a pre-check.
	CastVote(ctx context.Context, voterID, campaignID, candidateID uint) (*model.Vote, error)
	// Tally recomputes per-candidate counts for a campaign on every call.
	Tally(ctx context.Context, campaignID uint) ([]model.TallyEntry, error)
	// MyVotes returns the ballots cast by one voter.
	MyVotes(ctx context.Context, voterID uint) ([]model.Vote, error)
}

// TokenRevoker invalidates issued tokens before their natural expiry.
type TokenRevoker interface {
	// Revoke denylists a token ID for the remaining token lifetime.
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	// IsRevoked reports whether a token ID has been denylisted.
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
