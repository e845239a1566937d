package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/regma/inventario-api/internal/application/auth"
	"github.com/regma/inventario-api/internal/application/dto"
	"github.com/regma/inventario-api/pkg/logger"
)

// AuthHandler maneja el login de operadores.
type AuthHandler struct {
	uc   *auth.AuthUseCase
	errs errorResponder
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, production bool, log *logger.Logger) *AuthHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthHandler{uc: uc, errs: errorResponder{production: production, log: log.Component("http")}}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.APIResponse{data=dto.LoginResponse}
// @Failure      400   {object}  dto.APIResponse
// @Failure      401   {object}  dto.APIResponse
// @Failure      403   {object}  dto.APIResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return respondOK(c, fiber.StatusOK, "Sesión iniciada", out)
}
