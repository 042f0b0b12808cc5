package handlers

import (
	"github.com/gin-gonic/gin"

	"dellerose/cmd/api/dto"
	"dellerose/cmd/api/middleware"
	"dellerose/cmd/api/services"
	"dellerose/models"
)

// GenerateDraftsHandler godoc
// @Summary      Generate drafts for every platform
// @Description  Fans the brief out to the five platform agents concurrently
// @Tags         drafts
// @Accept       json
// @Param        id  path  string  true  "Workflow id"
// @Param        request  body  dto.GenerateDraftsRequest  true  "Content brief"
// @Produce      json
// @Success      200  {object}  dto.Envelope[dto.DraftSetDTO]
// @Failure      412  {object}  dto.FailureDTO
// @Router       /workflows/{id}/drafts [post]
func GenerateDraftsHandler(svc *services.DraftService) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := requestID(c)

		var req dto.GenerateDraftsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, reqID, "Feltet 'brief' mangler.")
			return
		}

		respond(c, svc.GenerateAll(c.Request.Context(), reqID, middleware.UserID(c), c.Param("id"), req.Brief))
	}
}

// RegenerateDraftHandler godoc
// @Summary      Regenerate one platform draft
// @Tags         drafts
// @Accept       json
// @Param        id  path  string  true  "Workflow id"
// @Param        platform  path  string  true  "Platform"
// @Param        request  body  dto.RegenerateRequest  true  "Content brief"
// @Produce      json
// @Success      200  {object}  dto.Envelope[dto.RegeneratedDraftDTO]
// @Failure      400  {object}  dto.FailureDTO
// @Router       /workflows/{id}/drafts/{platform}/regenerate [post]
func RegenerateDraftHandler(svc *services.DraftService) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := requestID(c)

		var req dto.RegenerateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, reqID, "Feltet 'brief' mangler.")
			return
		}

		platform := models.Platform(c.Param("platform"))
		respond(c, svc.Regenerate(c.Request.Context(), reqID, middleware.UserID(c), c.Param("id"), platform, req.Brief))
	}
}
