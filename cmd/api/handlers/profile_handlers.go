package handlers

import (
	"github.com/gin-gonic/gin"

	"dellerose/cmd/api/dto"
	"dellerose/cmd/api/middleware"
	"dellerose/cmd/api/services"
)

// GetProfileHandler godoc
// @Summary      Get the caller's brand profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  dto.Envelope[dto.ProfileDTO]
// @Failure      404  {object}  dto.FailureDTO
// @Router       /profile [get]
func GetProfileHandler(svc *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		respond(c, svc.Get(c.Request.Context(), requestID(c), middleware.UserID(c)))
	}
}

// UpsertProfileHandler godoc
// @Summary      Create or update the caller's brand profile
// @Tags         profile
// @Accept       json
// @Param        request  body  dto.ProfileRequest  true  "Brand profile"
// @Produce      json
// @Success      200  {object}  dto.Envelope[dto.ProfileDTO]
// @Failure      400  {object}  dto.FailureDTO
// @Router       /profile [put]
func UpsertProfileHandler(svc *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := requestID(c)

		var req dto.ProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, reqID, "Profilfelterne mangler eller er ugyldige.")
			return
		}

		respond(c, svc.Upsert(c.Request.Context(), reqID, middleware.UserID(c), req))
	}
}
