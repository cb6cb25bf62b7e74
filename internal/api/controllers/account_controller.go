package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fitplan/internal/models/request_models"
	"fitplan/internal/models/response_models"
	"fitplan/internal/services"
	"fitplan/pkg/utils"
)

type AccountController struct {
	accountService services.AccountServiceInterface
}

func NewAccountController(accountService services.AccountServiceInterface) *AccountController {
	return &AccountController{accountService: accountService}
}

func (a *AccountController) SignUpHandler(c *gin.Context) {
	var req request_models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.accountService.CreateAccount(c.Request.Context(), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Account created, plan generation started")
}

func (a *AccountController) LoginHandler(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	token, err := a.accountService.Login(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, response_models.LoginResponse{Token: token}, "Logged in")
}

func (a *AccountController) ProfileHandler(c *gin.Context) {
	profile, err := a.accountService.GetProfile(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, profile, "")
}

func (a *AccountController) ForgotPasswordHandler(c *gin.Context) {
	var req request_models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.accountService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "If the email exists, a reset link was sent")
}

func (a *AccountController) ResetPasswordHandler(c *gin.Context) {
	var req request_models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.accountService.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Password updated")
}
