package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fitplan/internal/models/request_models"
	"fitplan/internal/services"
	"fitplan/pkg/utils"
)

type ExerciseController struct {
	exerciseService services.ExerciseServiceInterface
}

func NewExerciseController(exerciseService services.ExerciseServiceInterface) *ExerciseController {
	return &ExerciseController{exerciseService: exerciseService}
}

func (e *ExerciseController) CreateExerciseHandler(c *gin.Context) {
	var req request_models.CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	exercise, err := e.exerciseService.RegisterExercise(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, exercise, "Exercise registered")
}

func (e *ExerciseController) GetExerciseHandler(c *gin.Context) {
	exercise, err := e.exerciseService.GetExercise(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, exercise, "")
}

func (e *ExerciseController) ListExercisesHandler(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	exercises, err := e.exerciseService.ListExercises(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, exercises, "")
}
