package controllers

import (
	"oneasy-portal/dto"
	"oneasy-portal/internal/middleware"
	"oneasy-portal/internal/services"

	"github.com/gofiber/fiber/v2"
)

type DocumentHandler struct {
	docs *services.DocumentService
}

func NewDocumentHandler(docs *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{docs: docs}
}

// Upload godoc
// @Summary      Upload a registration document
// @Tags         documents
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Document"
// @Success      201  {object}  controllers.Envelope{data=dto.DocumentUploadDTO}
// @Failure      400  {object}  controllers.Envelope
// @Router       /documents [post]
func (h *DocumentHandler) Upload() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := middleware.ActorFrom(c)
		if err != nil {
			return err
		}
		fh, err := c.FormFile("file")
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "file is required")
		}
		f, err := fh.Open()
		if err != nil {
			return err
		}
		defer f.Close()

		ref, err := h.docs.Store(actor.UserID, fh.Filename, f)
		if err != nil {
			return err
		}
		return ok(c, fiber.StatusCreated, dto.DocumentUploadDTO{FileURL: ref})
	}
}

// View godoc
// @Summary      Open a document through a signed link
// @Tags         documents
// @Param        token  query  string  true  "Signed token"
// @Success      200
// @Failure      403  {object}  controllers.Envelope
// @Router       /documents/view [get]
func (h *DocumentHandler) View() fiber.Handler {
	return func(c *fiber.Ctx) error {
		path, err := h.docs.Open(c.Query("token"))
		if err != nil {
			return err
		}
		return c.SendFile(path)
	}
}
