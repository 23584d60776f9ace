package router

import (
	"user-account-service/internal/config"
	"user-account-service/internal/handler"
	"user-account-service/internal/middleware"
	"user-account-service/internal/repository"
	"user-account-service/internal/service"
	"user-account-service/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires the repository, service and handlers onto a Gin
// engine. Login and session are public; everything else under /auth
// goes through the bearer-token guard.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	repo := repository.NewGormRepository(db)
	hasher := util.NewBcryptHasher(cfg.Security.BcryptCost)
	tokens := util.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.ExpireHours)
	svc := service.NewAuthService(repo, hasher, tokens, cfg.App.PageSize, cfg.App.StrictDelete)

	authHandler := handler.NewAuthHandler(svc)
	userHandler := handler.NewUserHandler(svc)
	exportHandler := handler.NewExportHandler(svc)

	r.GET("/healthz", func(c *gin.Context) {
		util.Success(c, util.Response{"status": "ok"})
	})

	auth := r.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.GET("/session", authHandler.Session)

	protected := auth.Group("")
	protected.Use(middleware.AuthMiddleware(tokens))

	protected.GET("/searchuser/:id", userHandler.SearchUser)
	protected.GET("/listuser", userHandler.ListUsers)
	protected.GET("/listuserPage", userHandler.ListUsersPage)
	protected.GET("/listroles", userHandler.ListRoles)
	protected.POST("/create", userHandler.CreateUser)
	protected.PUT("/update", userHandler.UpdateUser)
	protected.DELETE("/delete/:idUser", userHandler.DeleteUser)

	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	return r
}
