package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/placement/config"
	_ "github.com/lshigami/placement/docs" // Swagger docs - generated by swag init
	"github.com/lshigami/placement/internal/controller"
	adminctrl "github.com/lshigami/placement/internal/controller/admin"
	userctrl "github.com/lshigami/placement/internal/controller/user"
	"github.com/lshigami/placement/internal/middleware"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func NewGinEngine(cfg *config.Config) *gin.Engine {
	switch cfg.Server.Mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	default:
		log.Warn().Str("mode", cfg.Server.Mode).Msg("Unknown GIN_MODE, using release")
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		requestID, _ := param.Keys[middleware.RequestIDKey].(string)
		log.Info().
			Str("request_id", requestID).
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(cfg.Server.FrontendOrigin)))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func corsConfig(origin string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if origin == "" || origin == "*" {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = []string{origin}
	}
	return c
}

// RegisterRoutes mounts the quiz API, the admin API, the health probe and the
// quiz page.
func RegisterRoutes(
	router *gin.Engine,
	systemCtrl *controller.SystemController,
	adminCtrl *adminctrl.QuestionController,
	quizCtrl *userctrl.QuizController,
) {
	router.GET("/", systemCtrl.QuizPage)
	router.GET("/health", systemCtrl.Health)

	api := router.Group("/api")
	{
		api.GET("/questions", quizCtrl.GetQuestions)
		api.POST("/grade", quizCtrl.Grade)

		// Admin
		api.POST("/questions", adminCtrl.CreateQuestion)
		api.DELETE("/questions/:id", adminCtrl.DeleteQuestion)
	}
}
