package router

import (
	"studyRecommender/internal/rest"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupStatusRoutes(e *echo.Echo, api *echo.Group, handler *rest.StatusHandler) {
	e.GET("/", handler.Root)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	api.GET("", handler.Root)
}

func SetupProgramRoutes(api *echo.Group, handler *rest.ProgramHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	programs := api.Group("/programs")

	programs.GET("", handler.GetAllPrograms)
	programs.GET("/:id", handler.GetProgramByID)
	programs.POST("", handler.CreateProgram, authRequired, adminOnly)
	programs.PUT("/:id", handler.UpdateProgram, authRequired, adminOnly)
	programs.DELETE("/:id", handler.DeleteProgram, authRequired, adminOnly)
}

func SetupStudentRoutes(api *echo.Group, handler *rest.StudentHandler, recoHandler *rest.RecommendationHandler) {
	students := api.Group("/students")

	students.POST("", handler.CreateStudent)
	students.GET("/:id", handler.GetStudentByID)
	students.PUT("/:id", handler.UpdateStudent)
	students.GET("/:id/recommendations", recoHandler.History)
}

func SetRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler, feedbackHandler *rest.FeedbackHandler) {
	api.POST("/recommendations", handler.Recommend)
	api.POST("/feedback", feedbackHandler.Submit)
}

func SetRecommenderAdminRoutes(api *echo.Group, handler *rest.RecommenderAdminHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	admin := api.Group("/admin/recommender", authRequired, adminOnly)

	admin.GET("/config", handler.GetConfig)
	admin.PUT("/config", handler.UpdateConfig)
}
