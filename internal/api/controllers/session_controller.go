package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fitplan/internal/models/request_models"
	"fitplan/internal/services"
	"fitplan/pkg/utils"
)

type SessionController struct {
	sessionService services.SessionServiceInterface
}

func NewSessionController(sessionService services.SessionServiceInterface) *SessionController {
	return &SessionController{sessionService: sessionService}
}

func (s *SessionController) LogSessionHandler(c *gin.Context) {
	var req request_models.LogSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	session, err := s.sessionService.LogSession(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, session, "Session logged")
}

func (s *SessionController) ListSessionsHandler(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	sessions, err := s.sessionService.ListSessions(c.Request.Context(), c.GetString("user_id"), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, sessions, "")
}
