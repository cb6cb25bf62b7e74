package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"fitplan/cmd/fx/account_fx"
	"fitplan/cmd/fx/cache_fx"
	"fitplan/cmd/fx/db_fx"
	"fitplan/cmd/fx/exercise_fx"
	"fitplan/cmd/fx/mail_fx"
	"fitplan/cmd/fx/memcache_fx"
	"fitplan/cmd/fx/notify_fx"
	"fitplan/cmd/fx/plan_fx"
	"fitplan/cmd/fx/queue_fx"
	"fitplan/cmd/fx/session_fx"
	"fitplan/cmd/fx/video_fx"
	"fitplan/internal/api/controllers"
	"fitplan/pkg/logger"
	"fitplan/pkg/middleware"
	"fitplan/pkg/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	app := fx.New(
		fx.Provide(ProvideLogger),

		db_fx.Module,
		cache_fx.Module,
		memcache_fx.Module,
		mail_fx.Module,
		account_fx.Module,
		exercise_fx.Module,
		session_fx.Module,
		video_fx.Module,
		plan_fx.Module,
		notify_fx.Module,
		queue_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func ProvideLogger() (*logger.Logger, error) {
	return logger.New(utils.GetEnvWithDefault("APP_ENV", "development"))
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Info("starting HTTP server", "port", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatal("server stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	planController *controllers.PlanController,
	exerciseController *controllers.ExerciseController,
	sessionController *controllers.SessionController,
	wsController *controllers.WSController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, accountController, planController, exerciseController, sessionController, wsController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	planController *controllers.PlanController,
	exerciseController *controllers.ExerciseController,
	sessionController *controllers.SessionController,
	wsController *controllers.WSController) {

	authGroup := r.Group("/auth")
	authGroup.POST("/signup", accountController.SignUpHandler)
	authGroup.POST("/login", accountController.LoginHandler)
	authGroup.POST("/forgot-password", accountController.ForgotPasswordHandler)
	authGroup.POST("/reset-password", accountController.ResetPasswordHandler)

	userGroup := r.Group("/users", middleware.JWTAuthMiddleware())
	userGroup.GET("/me", accountController.ProfileHandler)

	planGroup := r.Group("/plans", middleware.JWTAuthMiddleware())
	planGroup.POST("/generate", planController.GeneratePlanHandler)
	planGroup.GET("/me", planController.GetPlanHandler)
	planGroup.GET("/me/status", planController.GetStatusHandler)

	exerciseGroup := r.Group("/exercises", middleware.JWTAuthMiddleware())
	exerciseGroup.GET("", exerciseController.ListExercisesHandler)
	exerciseGroup.GET("/:id", exerciseController.GetExerciseHandler)
	exerciseGroup.POST("", middleware.RoleMiddleware("admin"), exerciseController.CreateExerciseHandler)

	sessionGroup := r.Group("/sessions", middleware.JWTAuthMiddleware())
	sessionGroup.POST("", sessionController.LogSessionHandler)
	sessionGroup.GET("", sessionController.ListSessionsHandler)

	r.GET("/ws", middleware.JWTAuthMiddleware(), wsController.ConnectHandler)
}
