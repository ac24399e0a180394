package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/usecase"
)

// SettingHandler maneja las peticiones HTTP de ajustes.
type SettingHandler struct {
	uc *usecase.SettingUseCase
}

// NewSettingHandler construye el handler.
func NewSettingHandler(uc *usecase.SettingUseCase) *SettingHandler {
	return &SettingHandler{uc: uc}
}

// List godoc
// @Summary      Listar todos los ajustes
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SettingResponse
// @Router       /api/settings [get]
func (h *SettingHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListSettings(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener un ajuste por clave
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Param        key  path  string  true  "Clave del ajuste"
// @Success      200  {object}  dto.SettingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/settings/{key} [get]
func (h *SettingHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetSetting(c.Context(), c.Params("key"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Set godoc
// @Summary      Crear o actualizar un ajuste
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        key   path  string  true  "Clave del ajuste"
// @Param        body  body  dto.SetSettingRequest  true  "Valor y categoría"
// @Success      200   {object}  dto.SettingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings/{key} [put]
func (h *SettingHandler) Set(c *fiber.Ctx) error {
	var in dto.SetSettingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SetSetting(requestCtx(c), GetUserID(c), c.Params("key"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
