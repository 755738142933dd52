package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/freelanceflow/internal/application/dto"
	"github.com/tu-usuario/freelanceflow/internal/application/projects"
	"github.com/tu-usuario/freelanceflow/internal/domain"
)

// ProjectHandler maneja las peticiones HTTP de proyectos.
type ProjectHandler struct {
	uc *projects.UseCase
}

// NewProjectHandler construye el handler.
func NewProjectHandler(uc *projects.UseCase) *ProjectHandler {
	return &ProjectHandler{uc: uc}
}

// Create POST /api/projects
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProjectRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	project, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, project)
}

// List GET /api/projects?limit=50&offset=0
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return respondBadBody(c)
	}
	page.DefaultPage()
	list, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, list)
}

// ListActive GET /api/projects/active
func (h *ProjectHandler) ListActive(c *fiber.Ctx) error {
	list, err := h.uc.ListActive()
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, list)
}

// ListByClient GET /api/projects/client/:clientId
func (h *ProjectHandler) ListByClient(c *fiber.Ctx) error {
	list, err := h.uc.ListByClient(c.Params("clientId"))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, list)
}

// GetByID GET /api/projects/:id
func (h *ProjectHandler) GetByID(c *fiber.Ctx) error {
	project, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, project)
}

// Update PUT /api/projects/:id
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProjectRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	project, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, project)
}

// UpdateStatus PUT /api/projects/:id/status
func (h *ProjectHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateProjectStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	project, err := h.uc.UpdateStatus(c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, project)
}

// UpdateActiveStatus PUT /api/projects/:id/active
func (h *ProjectHandler) UpdateActiveStatus(c *fiber.Ctx) error {
	var in struct {
		IsActive *bool `json:"is_active"`
	}
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if in.IsActive == nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	project, err := h.uc.UpdateActiveStatus(c.Params("id"), *in.IsActive)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, project)
}

// Delete DELETE /api/projects/:id
func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, nil, "proyecto eliminado")
}
