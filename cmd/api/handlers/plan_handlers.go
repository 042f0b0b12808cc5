package handlers

import (
	"github.com/gin-gonic/gin"

	"dellerose/cmd/api/dto"
	"dellerose/cmd/api/middleware"
	"dellerose/cmd/api/services"
	"dellerose/models"
)

// UpsertPlanHandler godoc
// @Summary      Approve a draft into the scheduler
// @Description  Idempotent per (user, workflow, platform); repeated approvals overwrite
// @Tags         plans
// @Accept       json
// @Param        id  path  string  true  "Workflow id"
// @Param        request  body  dto.UpsertPlanRequest  true  "Brief and approved draft"
// @Produce      json
// @Success      200  {object}  dto.Envelope[dto.PlanDTO]
// @Failure      400  {object}  dto.FailureDTO
// @Router       /workflows/{id}/plans [put]
func UpsertPlanHandler(svc *services.PlanService) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := requestID(c)

		var req dto.UpsertPlanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, reqID, "Feltet 'brief' eller 'draft' mangler.")
			return
		}

		respond(c, svc.Upsert(c.Request.Context(), reqID, middleware.UserID(c), c.Param("id"), req))
	}
}

// UpdatePlanStatusHandler godoc
// @Summary      Update a plan's status
// @Tags         plans
// @Accept       json
// @Param        id  path  string  true  "Workflow id"
// @Param        platform  path  string  true  "Platform"
// @Param        request  body  dto.UpdatePlanStatusRequest  true  "New status"
// @Produce      json
// @Success      200  {object}  dto.Envelope[dto.PlanDTO]
// @Failure      404  {object}  dto.FailureDTO
// @Router       /workflows/{id}/plans/{platform} [patch]
func UpdatePlanStatusHandler(svc *services.PlanService) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := requestID(c)

		var req dto.UpdatePlanStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, reqID, "Feltet 'status' mangler.")
			return
		}

		platform := models.Platform(c.Param("platform"))
		respond(c, svc.UpdateStatus(c.Request.Context(), reqID, middleware.UserID(c), c.Param("id"), platform, req))
	}
}

// ListScheduledPlansHandler godoc
// @Summary      List upcoming scheduled posts
// @Tags         plans
// @Produce      json
// @Success      200  {object}  dto.Envelope[[]dto.PlanDTO]
// @Router       /plans/scheduled [get]
func ListScheduledPlansHandler(svc *services.PlanService) gin.HandlerFunc {
	return func(c *gin.Context) {
		respond(c, svc.ListScheduled(c.Request.Context(), requestID(c), middleware.UserID(c)))
	}
}
