package graphql

import (
	"github.com/gofiber/fiber/v2"
	gql "github.com/graph-gophers/graphql-go"

	"github.com/regma/inventario-api/internal/application/dto"
	apphttp "github.com/regma/inventario-api/internal/interfaces/http"
)

type request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Handler ejecuta consultas POST /graphql. Debe montarse después de OptionalAuth para que
// el usuario del token quede como actor de las mutaciones.
func Handler(schema *gql.Schema) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req request
		if err := c.BodyParser(&req); err != nil || req.Query == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.APIResponse{Success: false, Message: "se esperaba {query, variables}"})
		}
		ctx := WithActor(c.UserContext(), apphttp.GetUserID(c))
		return c.JSON(schema.Exec(ctx, req.Query, req.OperationName, req.Variables))
	}
}
