package api

import (
	"github.com/gofiber/fiber/v2"

	"colvote.com/internal/api/middleware"
	"colvote.com/internal/domain"
)

// VoteHandler serves the voter-facing endpoints.
type VoteHandler struct {
	votes     domain.VoteService
	campaigns domain.CampaignService
}

func NewVoteHandler(votes domain.VoteService, campaigns domain.CampaignService) *VoteHandler {
	return &VoteHandler{votes: votes, campaigns: campaigns}
}

type CastVoteRequest struct {
	CampaignID  uint `json:"campaignId"`
	CandidateID uint `json:"candidateId"`
}

// CastVote records the voter's ballot. A second vote in the same campaign is
// rejected with 409, including under concurrent duplicate submissions.
func (h *VoteHandler) CastVote(c *fiber.Ctx) error {
	claims := middleware.ClaimsFromCtx(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing bearer token"})
	}

	var req CastVoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	vote, err := h.votes.CastVote(c.UserContext(), claims.UserID, req.CampaignID, req.CandidateID)
	if err != nil {
		return sendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(vote)
}

// VoterCampaigns lists the campaigns currently open for voting.
func (h *VoteHandler) VoterCampaigns(c *fiber.Ctx) error {
	campaigns, err := h.campaigns.ListCampaigns(c.UserContext(), true)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(campaigns)
}

// MyVotes returns the voter's own ballot receipts.
func (h *VoteHandler) MyVotes(c *fiber.Ctx) error {
	claims := middleware.ClaimsFromCtx(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing bearer token"})
	}

	votes, err := h.votes.MyVotes(c.UserContext(), claims.UserID)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(votes)
}
