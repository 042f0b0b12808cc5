package handlers

import (
	"github.com/gin-gonic/gin"

	"dellerose/cmd/api/middleware"
	"dellerose/cmd/api/services"
	"dellerose/workflow"
)

// ListWorkflowsHandler godoc
// @Summary      List the caller's workflows
// @Tags         workflows
// @Produce      json
// @Success      200  {object}  dto.Envelope[[]dto.WorkflowSummaryDTO]
// @Router       /workflows [get]
func ListWorkflowsHandler(svc *services.WorkflowService) gin.HandlerFunc {
	return func(c *gin.Context) {
		respond(c, svc.List(c.Request.Context(), requestID(c), middleware.UserID(c)))
	}
}

// GetSnapshotHandler godoc
// @Summary      Load a workflow aggregate snapshot
// @Tags         workflows
// @Param        id  path  string  true  "Workflow id"
// @Produce      json
// @Success      200  {object}  dto.Envelope[dto.SnapshotDTO]
// @Failure      404  {object}  dto.FailureDTO
// @Router       /workflows/{id}/snapshot [get]
func GetSnapshotHandler(svc *services.WorkflowService) gin.HandlerFunc {
	return func(c *gin.Context) {
		respond(c, svc.GetSnapshot(c.Request.Context(), requestID(c), middleware.UserID(c), c.Param("id")))
	}
}

// SaveSnapshotHandler godoc
// @Summary      Save a workflow aggregate snapshot
// @Tags         workflows
// @Accept       json
// @Param        id  path  string  true  "Workflow id"
// @Param        request  body  dto.SnapshotDTO  true  "Aggregate snapshot"
// @Produce      json
// @Success      200  {object}  dto.Envelope[dto.SnapshotDTO]
// @Failure      400  {object}  dto.FailureDTO
// @Router       /workflows/{id}/snapshot [put]
func SaveSnapshotHandler(svc *services.WorkflowService) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := requestID(c)

		var aggregate workflow.Aggregate
		if err := c.ShouldBindJSON(&aggregate); err != nil {
			badRequest(c, reqID, "Snapshottet kunne ikke læses.")
			return
		}

		respond(c, svc.SaveSnapshot(c.Request.Context(), reqID, middleware.UserID(c), c.Param("id"), &aggregate))
	}
}
