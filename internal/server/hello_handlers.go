package server

import (
	"context"
	"time"

	"github.com/whoismarios/sa-gateway-demo/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	helloUserLimit  = 5
	helloOrderLimit = 10
)

// HelloResponse is the fixed JSON shape of GET /api/hello.
type HelloResponse struct {
	Msg         string                 `json:"msg"`
	Users       []models.User          `json:"users"`
	Orders      []models.OrderWithUser `json:"orders"`
	TotalUsers  int                    `json:"totalUsers"`
	TotalOrders int                    `json:"totalOrders"`
	Timestamp   string                 `json:"timestamp"`
}

// GetHello handles GET /api/hello: the first five users plus the first ten
// orders joined with their owning user's name and email. Every call triggers
// the schema/seed initializer.
func (s *Server) GetHello(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	if err := s.init.Ensure(ctx); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	users, err := s.userRepo.List(ctx, helloUserLimit)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	orders, err := s.orderRepo.ListWithUsers(ctx, helloOrderLimit)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if users == nil {
		users = []models.User{}
	}
	if orders == nil {
		orders = []models.OrderWithUser{}
	}

	return c.JSON(HelloResponse{
		Msg:         "Hello from REST",
		Users:       users,
		Orders:      orders,
		TotalUsers:  len(users),
		TotalOrders: len(orders),
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	})
}
