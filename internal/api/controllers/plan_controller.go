package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fitplan/internal/models/request_models"
	"fitplan/internal/services"
	"fitplan/pkg/utils"
)

type PlanController struct {
	planService services.PlanServiceInterface
	enqueuer    services.PlanEnqueuer
}

func NewPlanController(planService services.PlanServiceInterface, enqueuer services.PlanEnqueuer) *PlanController {
	return &PlanController{
		planService: planService,
		enqueuer:    enqueuer,
	}
}

// GeneratePlanHandler queues a regeneration of the caller's plan. The result
// arrives asynchronously over the WebSocket; poll the status endpoint in the
// meantime.
func (p *PlanController) GeneratePlanHandler(c *gin.Context) {
	var req request_models.GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	userID := c.GetString("user_id")
	if err := p.enqueuer.EnqueueGeneration(c.Request.Context(), userID, req.Feedback, req.Strict); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{"status": "pending"}, "Plan generation queued")
}

func (p *PlanController) GetPlanHandler(c *gin.Context) {
	plan, err := p.planService.GetPlan(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, plan, "")
}

func (p *PlanController) GetStatusHandler(c *gin.Context) {
	status, err := p.planService.GetStatus(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, status, "")
}
