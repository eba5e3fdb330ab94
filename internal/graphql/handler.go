package graphql

import (
	"context"

	"github.com/whoismarios/sa-gateway-demo/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
)

// Request is the standard GraphQL POST body.
type Request struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// Do executes a request against the schema. Resolver errors end up as entries
// in the result's errors list, never as a transport failure.
func (s *Schema) Do(ctx context.Context, req Request) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         s.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		Context:        ctx,
	})
}

// Handler returns the Fiber handler serving POST /graphql with the standard
// {data, errors?} envelope.
func (s *Schema) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req Request
		if err := c.BodyParser(&req); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid request body"))
		}

		result := s.Do(c.UserContext(), req)
		return c.JSON(result)
	}
}
