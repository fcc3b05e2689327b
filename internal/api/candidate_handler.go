package api

import (
	"github.com/gofiber/fiber/v2"

	"colvote.com/internal/domain"
)

// CandidateHandler serves candidate management. Admin-only by policy.
type CandidateHandler struct {
	campaigns domain.CampaignService
}

func NewCandidateHandler(campaigns domain.CampaignService) *CandidateHandler {
	return &CandidateHandler{campaigns: campaigns}
}

type CreateCandidateRequest struct {
	Name       string `json:"name"`
	Party      string `json:"party"`
	CampaignID uint   `json:"campaignId"`
}

// CreateCandidate attaches a candidate to an existing open campaign.
func (h *CandidateHandler) CreateCandidate(c *fiber.Ctx) error {
	var req CreateCandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.CampaignID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "campaignId is required"})
	}

	candidate, err := h.campaigns.AddCandidate(c.UserContext(), req.CampaignID, domain.CandidateInput{
		Name:  req.Name,
		Party: req.Party,
	})
	if err != nil {
		return sendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(candidate)
}

// ListCandidates returns every candidate in the system.
func (h *CandidateHandler) ListCandidates(c *fiber.Ctx) error {
	candidates, err := h.campaigns.ListCandidates(c.UserContext(), 0)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(candidates)
}

// ListByCampaign returns the candidates of one campaign.
func (h *CandidateHandler) ListByCampaign(c *fiber.Ctx) error {
	campaignID := idParam(c, "campaignId")
	if campaignID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid campaign id"})
	}

	candidates, err := h.campaigns.ListCandidates(c.UserContext(), campaignID)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(candidates)
}

// DeleteCandidate removes a candidate that has not received votes.
func (h *CandidateHandler) DeleteCandidate(c *fiber.Ctx) error {
	id := idParam(c, "id")
	if id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid candidate id"})
	}

	if err := h.campaigns.DeleteCandidate(c.UserContext(), id); err != nil {
		return sendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
