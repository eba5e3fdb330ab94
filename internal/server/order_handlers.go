package server

import (
	"context"
	"time"

	"github.com/whoismarios/sa-gateway-demo/internal/models"

	"github.com/gofiber/fiber/v2"
)

// OrdersResponse is the fixed JSON shape of GET /api/orders/:userId.
type OrdersResponse struct {
	UserID      string         `json:"userId"`
	Orders      []models.Order `json:"orders"`
	TotalOrders int            `json:"totalOrders"`
}

// GetOrdersByUser handles GET /api/orders/:userId: every order for one user,
// ascending by order id. The userId is opaque; it is not validated and there
// is no existence check, so an unknown id returns an empty list, not a 404.
func (s *Server) GetOrdersByUser(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	if err := s.init.Ensure(ctx); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	userID := c.Params("userId")
	orders, err := s.orderRepo.ByUser(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if orders == nil {
		orders = []models.Order{}
	}

	return c.JSON(OrdersResponse{
		UserID:      userID,
		Orders:      orders,
		TotalOrders: len(orders),
	})
}
