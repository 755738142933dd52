package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/freelanceflow/internal/application/clients"
	"github.com/tu-usuario/freelanceflow/internal/application/dto"
	"github.com/tu-usuario/freelanceflow/internal/domain"
)

// ClientHandler maneja las peticiones HTTP de clientes.
type ClientHandler struct {
	uc *clients.UseCase
}

// NewClientHandler construye el handler.
func NewClientHandler(uc *clients.UseCase) *ClientHandler {
	return &ClientHandler{uc: uc}
}

// Create POST /api/clients
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	client, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, client)
}

// List GET /api/clients?limit=50&offset=0
// Devuelve el total de clientes vivos en el header X-Total-Count.
func (h *ClientHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return respondBadBody(c)
	}
	page.DefaultPage()

	list, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	total, err := h.uc.Count()
	if err != nil {
		return respondError(c, err)
	}
	c.Set("X-Total-Count", strconv.Itoa(total))
	return respondOK(c, list)
}

// ListActive GET /api/clients/active
func (h *ClientHandler) ListActive(c *fiber.Ctx) error {
	list, err := h.uc.ListActive()
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, list)
}

// Search GET /api/clients/search?name=acme
func (h *ClientHandler) Search(c *fiber.Ctx) error {
	list, err := h.uc.Search(c.Query("name"))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, list)
}

// GetByID GET /api/clients/:id
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	client, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, client)
}

// Update PUT /api/clients/:id
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	client, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, client)
}

// UpdateStatus PUT /api/clients/:id/status
func (h *ClientHandler) UpdateStatus(c *fiber.Ctx) error {
	var in struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if in.Status == "" {
		return respondError(c, domain.ErrInvalidInput)
	}
	client, err := h.uc.UpdateStatus(c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, client)
}

// Delete DELETE /api/clients/:id
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, nil, "cliente eliminado")
}
