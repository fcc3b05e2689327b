package api

import (
	"github.com/gofiber/fiber/v2"

	"colvote.com/internal/domain"
)

// CampaignHandler serves campaign management and public campaign reads.
type CampaignHandler struct {
	campaigns domain.CampaignService
	votes     domain.VoteService
}

func NewCampaignHandler(campaigns domain.CampaignService, votes domain.VoteService) *CampaignHandler {
	return &CampaignHandler{campaigns: campaigns, votes: votes}
}

type CandidateRequest struct {
	Name  string `json:"name"`
	Party string `json:"party"`
}

type CreateCampaignRequest struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Candidates  []CandidateRequest `json:"candidates,omitempty"`
}

// CreateCampaign creates a campaign, optionally with inline candidates.
func (h *CampaignHandler) CreateCampaign(c *fiber.Ctx) error {
	var req CreateCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	candidates := make([]domain.CandidateInput, 0, len(req.Candidates))
	for _, cand := range req.Candidates {
		candidates = append(candidates, domain.CandidateInput{Name: cand.Name, Party: cand.Party})
	}

	campaign, err := h.campaigns.CreateCampaign(c.UserContext(), req.Title, req.Description, candidates)
	if err != nil {
		return sendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(campaign)
}

// ListCampaigns returns all campaigns with their candidates.
func (h *CampaignHandler) ListCampaigns(c *fiber.Ctx) error {
	campaigns, err := h.campaigns.ListCampaigns(c.UserContext(), c.QueryBool("active", false))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(campaigns)
}

// GetCampaign returns one campaign with its candidates. An unparseable id
// names no campaign, so public reads answer 404 rather than 400.
func (h *CampaignHandler) GetCampaign(c *fiber.Ctx) error {
	id := idParam(c, "id")
	if id == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "campaign not found"})
	}

	campaign, err := h.campaigns.GetCampaign(c.UserContext(), id)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(campaign)
}

type CampaignStatusRequest struct {
	IsActive *bool `json:"isActive"`
}

// UpdateStatus toggles whether a campaign accepts votes.
func (h *CampaignHandler) UpdateStatus(c *fiber.Ctx) error {
	id := idParam(c, "id")
	if id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid campaign id"})
	}

	var req CampaignStatusRequest
	if err := c.BodyParser(&req); err != nil || req.IsActive == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "isActive is required"})
	}

	campaign, err := h.campaigns.SetCampaignStatus(c.UserContext(), id, *req.IsActive)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(campaign)
}

// CloseCampaign ends a campaign permanently.
func (h *CampaignHandler) CloseCampaign(c *fiber.Ctx) error {
	id := idParam(c, "id")
	if id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid campaign id"})
	}

	campaign, err := h.campaigns.CloseCampaign(c.UserContext(), id)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(campaign)
}

// GetResults returns the current tally for a campaign.
func (h *CampaignHandler) GetResults(c *fiber.Ctx) error {
	id := idParam(c, "id")
	if id == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "campaign not found"})
	}

	campaign, err := h.campaigns.GetCampaign(c.UserContext(), id)
	if err != nil {
		return sendError(c, err)
	}

	entries, err := h.votes.Tally(c.UserContext(), id)
	if err != nil {
		return sendError(c, err)
	}

	var total int64
	for _, e := range entries {
		total += e.Count
	}

	return c.JSON(fiber.Map{
		"campaignId": campaign.ID,
		"title":      campaign.Title,
		"isActive":   campaign.IsActive,
		"closedAt":   campaign.ClosedAt,
		"totalVotes": total,
		"results":    entries,
	})
}
