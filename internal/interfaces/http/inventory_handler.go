package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/regma/inventario-api/internal/application/dto"
	"github.com/regma/inventario-api/internal/application/inventory"
	"github.com/regma/inventario-api/pkg/logger"
)

// InventoryHandler maneja ajuste, alta y consultas de inventario.
type InventoryHandler struct {
	adjust  *inventory.AdjustStockUseCase
	ledgers *inventory.LedgerUseCase
	kardex  *inventory.KardexUseCase
	errs    errorResponder
}

// NewInventoryHandler construye el handler. kardex puede ser nil si el PDF no está habilitado.
func NewInventoryHandler(
	adjust *inventory.AdjustStockUseCase,
	ledgers *inventory.LedgerUseCase,
	kardex *inventory.KardexUseCase,
	production bool,
	log *logger.Logger,
) *InventoryHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &InventoryHandler{
		adjust:  adjust,
		ledgers: ledgers,
		kardex:  kardex,
		errs:    errorResponder{production: production, log: log.Component("http")},
	}
}

// AdjustStock godoc
// @Summary      Ajustar inventario
// @Description  Aplica una entrada, salida o ajuste absoluto sobre el inventario indicado.
// @Description  El actor es el usuario del token; sin token se usa usuarioId del body.
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del inventario"
// @Param        body  body  dto.AdjustStockRequest   true  "tipoMovimiento (entrada|salida|ajuste), cantidad, motivo, usuarioId"
// @Success      200   {object}  dto.APIResponse{data=dto.LedgerResponse}
// @Failure      400   {object}  dto.APIResponse
// @Failure      404   {object}  dto.APIResponse
// @Failure      409   {object}  dto.APIResponse
// @Failure      500   {object}  dto.APIResponse
// @Router       /api/inventario/{id} [patch]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var req dto.AdjustStockRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "cuerpo inválido: se esperaba JSON con tipoMovimiento y cantidad enteros")
	}
	actor := GetUserID(c)
	if actor == "" {
		actor = req.UsuarioID
	}
	ledger, message, err := h.adjust.AdjustStock(c.UserContext(), inventory.AdjustStockInput{
		LedgerID:       c.Params("id"),
		TipoMovimiento: req.TipoMovimiento,
		Cantidad:       req.Cantidad,
		Motivo:         req.Motivo,
		ActorID:        actor,
	})
	if err != nil {
		return h.errs.respond(c, err)
	}
	return respondOK(c, fiber.StatusOK, message, ledger)
}

// CreateLedger godoc
// @Summary      Crear inventario
// @Description  Da de alta el inventario de un producto en una ubicación. Un stock inicial > 0 queda como entrada.
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLedgerRequest  true  "productoId, ubicacion, stockInicial, motivo"
// @Success      201   {object}  dto.APIResponse{data=dto.LedgerResponse}
// @Failure      400   {object}  dto.APIResponse
// @Failure      401   {object}  dto.APIResponse
// @Failure      403   {object}  dto.APIResponse
// @Failure      404   {object}  dto.APIResponse
// @Failure      409   {object}  dto.APIResponse
// @Router       /api/inventario [post]
func (h *InventoryHandler) CreateLedger(c *fiber.Ctx) error {
	var req dto.CreateLedgerRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	ledger, err := h.ledgers.Provision(c.UserContext(), inventory.ProvisionInput{
		ProductoID:   req.ProductoID,
		Ubicacion:    req.Ubicacion,
		StockInicial: req.StockInicial,
		Motivo:       req.Motivo,
		ActorID:      GetUserID(c),
	})
	if err != nil {
		return h.errs.respond(c, err)
	}
	return respondOK(c, fiber.StatusCreated, "Inventario creado exitosamente", ledger)
}

// GetLedger godoc
// @Summary      Obtener inventario
// @Tags         inventario
// @Produce      json
// @Param        id   path  string  true  "ID del inventario"
// @Success      200  {object}  dto.APIResponse{data=dto.LedgerResponse}
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/inventario/{id} [get]
func (h *InventoryHandler) GetLedger(c *fiber.Ctx) error {
	ledger, err := h.ledgers.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.respond(c, err)
	}
	return respondOK(c, fiber.StatusOK, "Inventario obtenido", ledger)
}

// ListLedgers godoc
// @Summary      Listar inventarios
// @Tags         inventario
// @Produce      json
// @Param        limit   query  int  false  "Máximo 100 (default 20)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.APIResponse{data=dto.LedgerListResponse}
// @Failure      400  {object}  dto.APIResponse
// @Router       /api/inventario [get]
func (h *InventoryHandler) ListLedgers(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return respondError(c, fiber.StatusBadRequest, "parámetros de paginación inválidos")
	}
	out, err := h.ledgers.List(c.UserContext(), page)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return respondOK(c, fiber.StatusOK, "Inventarios obtenidos", out)
}

// ListMovements godoc
// @Summary      Historial de movimientos
// @Description  Movimientos del inventario, del más reciente al más antiguo.
// @Tags         inventario
// @Produce      json
// @Param        id      path   string  true   "ID del inventario"
// @Param        limit   query  int     false  "Máximo 100 (default 20)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.APIResponse{data=dto.MovementListResponse}
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/inventario/{id}/movimientos [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return respondError(c, fiber.StatusBadRequest, "parámetros de paginación inválidos")
	}
	out, err := h.ledgers.Movements(c.UserContext(), c.Params("id"), page)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return respondOK(c, fiber.StatusOK, "Movimientos obtenidos", out)
}

// Kardex godoc
// @Summary      Kardex en PDF
// @Tags         inventario
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del inventario"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/inventario/{id}/kardex [get]
func (h *InventoryHandler) Kardex(c *fiber.Ctx) error {
	if h.kardex == nil {
		return respondError(c, fiber.StatusNotImplemented, "generación de kardex no disponible")
	}
	pdf, filename, err := h.kardex.Kardex(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.respond(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
