package api

import (
	"errors"
	"log"
	"math"

	"github.com/gofiber/fiber/v2"

	"colvote.com/internal/domain"
)

// Pagination metadata for list responses.
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"pageSize"`
	Total     int64 `json:"total"`
	TotalPage int   `json:"totalPage"`
}

// ListResponse is the shared shape of paginated endpoints.
type ListResponse struct {
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// SendPaginatedResponse writes the standard paginated payload.
func SendPaginatedResponse(c *fiber.Ctx, data interface{}, page, pageSize int, total int64) error {
	totalPage := 0
	if pageSize > 0 {
		totalPage = int(math.Ceil(float64(total) / float64(pageSize)))
	}

	return c.JSON(ListResponse{
		Data: data,
		Pagination: Pagination{
			Page:      page,
			PageSize:  pageSize,
			Total:     total,
			TotalPage: totalPage,
		},
	})
}

// sendError maps a domain error to its HTTP status. Internal detail is logged
// server-side; the client only ever sees the AppError message.
func sendError(c *fiber.Ctx, err error) error {
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		if appErr.Code >= 500 {
			log.Printf("API: %s %s failed: %v", c.Method(), c.Path(), appErr)
			return c.Status(appErr.Code).JSON(fiber.Map{"error": "internal server error"})
		}
		return c.Status(appErr.Code).JSON(fiber.Map{"error": appErr.Message})
	}

	log.Printf("API: %s %s failed: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}
