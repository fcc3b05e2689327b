package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"colvote.com/internal/domain"
	"colvote.com/internal/model"
)

func TestCastVoteAndTally(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	campaigns := NewCampaignService(db)
	votes := NewVoteService(db)
	ctx := context.Background()

	campaign := createCampaign(t, campaigns, "Board Election", "Candidate A", "Candidate B")
	a, b := campaign.Candidates[0], campaign.Candidates[1]

	// Three voters for A, one for B.
	for i := 0; i < 3; i++ {
		voter := registerVoter(t, users, fmt.Sprintf("a%d", i), fmt.Sprintf("100000000000%d", i))
		if _, err := votes.CastVote(ctx, voter.ID, campaign.ID, a.ID); err != nil {
			t.Fatalf("vote for A failed: %v", err)
		}
	}
	voterB := registerVoter(t, users, "b0", "2000000000000")
	if _, err := votes.CastVote(ctx, voterB.ID, campaign.ID, b.ID); err != nil {
		t.Fatalf("vote for B failed: %v", err)
	}

	entries, err := votes.Tally(ctx, campaign.ID)
	if err != nil {
		t.Fatalf("tally error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 tally entries, got %d", len(entries))
	}
	if entries[0].CandidateID != a.ID || entries[0].Count != 3 {
		t.Fatalf("expected A first with 3 votes, got %+v", entries[0])
	}
	if entries[1].CandidateID != b.ID || entries[1].Count != 1 {
		t.Fatalf("expected B second with 1 vote, got %+v", entries[1])
	}
}

func TestTallyIncludesZeroCounts(t *testing.T) {
	db := newTestDB(t)
	campaigns := NewCampaignService(db)
	votes := NewVoteService(db)

	campaign := createCampaign(t, campaigns, "Empty Election", "A", "B", "C")

	entries, err := votes.Tally(context.Background(), campaign.ID)
	if err != nil {
		t.Fatalf("tally error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected all candidates in the tally, got %d", len(entries))
	}
	for i, e := range entries {
		if e.Count != 0 {
			t.Fatalf("expected zero count, got %+v", e)
		}
		// Equal counts keep candidate insertion order.
		if i > 0 && entries[i-1].CandidateID > e.CandidateID {
			t.Fatalf("tie order not stable by insertion: %+v", entries)
		}
	}
}

func TestTallyUnknownCampaign(t *testing.T) {
	db := newTestDB(t)
	votes := NewVoteService(db)

	if _, err := votes.Tally(context.Background(), 9999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestConcurrentDuplicateVotes(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	campaigns := NewCampaignService(db)
	votes := NewVoteService(db)

	campaign := createCampaign(t, campaigns, "Board Election", "A", "B")
	voter := registerVoter(t, users, "123", "1234567890123")
	candidateID := campaign.Candidates[0].ID

	const attempts = 50
	var successes, duplicates atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := votes.CastVote(context.Background(), voter.ID, campaign.ID, candidateID)
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, domain.ErrDuplicateVote):
				duplicates.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if successes.Load() != 1 {
		t.Fatalf("expected exactly 1 successful vote, got %d", successes.Load())
	}
	if duplicates.Load() != attempts-1 {
		t.Fatalf("expected %d duplicate rejections, got %d", attempts-1, duplicates.Load())
	}

	var count int64
	db.Model(&model.Vote{}).Where("user_id = ? AND campaign_id = ?", voter.ID, campaign.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly 1 vote row, got %d", count)
	}
}

func TestCastVoteClosedCampaign(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	campaigns := NewCampaignService(db)
	votes := NewVoteService(db)
	ctx := context.Background()

	campaign := createCampaign(t, campaigns, "Board Election", "A")
	voter := registerVoter(t, users, "123", "1234567890123")

	if _, err := campaigns.CloseCampaign(ctx, campaign.ID); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	_, err := votes.CastVote(ctx, voter.ID, campaign.ID, campaign.Candidates[0].ID)
	if !errors.Is(err, domain.ErrCampaignClosed) {
		t.Fatalf("expected campaign closed, got %v", err)
	}
}

func TestCastVoteInactiveCampaign(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	campaigns := NewCampaignService(db)
	votes := NewVoteService(db)
	ctx := context.Background()

	campaign := createCampaign(t, campaigns, "Board Election", "A")
	voter := registerVoter(t, users, "123", "1234567890123")

	if _, err := campaigns.SetCampaignStatus(ctx, campaign.ID, false); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	_, err := votes.CastVote(ctx, voter.ID, campaign.ID, campaign.Candidates[0].ID)
	if !errors.Is(err, domain.ErrCampaignClosed) {
		t.Fatalf("expected campaign closed, got %v", err)
	}

	// Reactivating a merely paused campaign is allowed and voting resumes.
	if _, err := campaigns.SetCampaignStatus(ctx, campaign.ID, true); err != nil {
		t.Fatalf("reactivate failed: %v", err)
	}
	if _, err := votes.CastVote(ctx, voter.ID, campaign.ID, campaign.Candidates[0].ID); err != nil {
		t.Fatalf("vote after reactivation failed: %v", err)
	}
}

func TestCastVoteForeignCandidate(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	campaigns := NewCampaignService(db)
	votes := NewVoteService(db)
	ctx := context.Background()

	campaign := createCampaign(t, campaigns, "Board Election", "A")
	other := createCampaign(t, campaigns, "Other Election", "X")
	voter := registerVoter(t, users, "123", "1234567890123")

	_, err := votes.CastVote(ctx, voter.ID, campaign.ID, other.Candidates[0].ID)
	if !errors.Is(err, domain.ErrCandidateNotFound) {
		t.Fatalf("expected candidate not found, got %v", err)
	}

	_, err = votes.CastVote(ctx, voter.ID, 9999, campaign.Candidates[0].ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected campaign not found, got %v", err)
	}
}

func TestMyVotes(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	campaigns := NewCampaignService(db)
	votes := NewVoteService(db)
	ctx := context.Background()

	first := createCampaign(t, campaigns, "First", "A")
	second := createCampaign(t, campaigns, "Second", "B")
	voter := registerVoter(t, users, "123", "1234567890123")

	if _, err := votes.CastVote(ctx, voter.ID, first.ID, first.Candidates[0].ID); err != nil {
		t.Fatalf("first vote failed: %v", err)
	}
	if _, err := votes.CastVote(ctx, voter.ID, second.ID, second.Candidates[0].ID); err != nil {
		t.Fatalf("second vote failed: %v", err)
	}

	got, err := votes.MyVotes(ctx, voter.ID)
	if err != nil {
		t.Fatalf("my votes error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 votes, got %d", len(got))
	}
	if got[0].CampaignID != first.ID || got[1].CampaignID != second.ID {
		t.Fatalf("votes out of order: %+v", got)
	}
}
