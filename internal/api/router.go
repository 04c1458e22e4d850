package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/launchdesk/portal/internal/api/handler"
	"github.com/launchdesk/portal/internal/api/middleware"
	"github.com/launchdesk/portal/internal/core/domain"
	"github.com/launchdesk/portal/internal/core/ports"
)

// Dependencies carries everything the router needs wired in.
type Dependencies struct {
	Sessions    ports.SessionService
	Work        ports.WorkService
	Admin       ports.AdminService
	SSO         ports.SSOService
	Revocations middleware.RevocationChecker
	Mongo       *mongo.Database
	Redis       *redis.Client
	JWTSecret   string
	Logger      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("portal"))

	authMW := middleware.Auth(deps.JWTSecret, deps.Revocations)
	adminMW := middleware.RequireRoles(domain.RoleAdmin)
	anyRoleMW := middleware.RequireRoles(domain.RoleAdmin, domain.RoleUser)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Sessions)
	profileHandler := handler.NewProfileHandler(deps.Sessions)
	workHandler := handler.NewWorkHandler(deps.Work)
	ssoHandler := handler.NewSSOHandler(deps.SSO)
	adminHandler := handler.NewAdminHandler(deps.Admin, deps.Work)
	dashboardHandler := handler.NewDashboardHandler()

	// --- Public routes ---
	auth := e.Group("/v1/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/reset-password", authHandler.ResetPassword)

	// Token resolution is called by the launched tool, not the browser session.
	e.GET("/v1/sso/tokens/:token", ssoHandler.Resolve)

	// --- Authenticated routes ---
	auth.POST("/logout", authHandler.Logout, authMW)

	me := e.Group("/v1/me", authMW, anyRoleMW)
	me.GET("", profileHandler.Me)
	me.PATCH("", profileHandler.UpdateMe)
	me.POST("/password", profileHandler.ChangePassword)

	e.GET("/v1/dashboard", dashboardHandler.Landing, authMW, anyRoleMW)
	e.POST("/v1/sso/tokens", ssoHandler.Issue, authMW, anyRoleMW)

	work := e.Group("/v1/work-items", authMW, anyRoleMW)
	work.POST("", workHandler.Submit)
	work.GET("", workHandler.ListMine)

	// --- Admin routes ---
	admin := e.Group("/v1/admin", authMW, adminMW)
	admin.GET("/overview", adminHandler.Overview)
	admin.GET("/users", adminHandler.ListUsers)
	admin.POST("/users", adminHandler.CreateUser)
	admin.PATCH("/users/:id", adminHandler.UpdateUser)
	admin.PUT("/users/:id/software", adminHandler.UpdateSoftware)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.GET("/work-items", adminHandler.ListWorkItems)
	admin.POST("/work-items/:id/accept", adminHandler.AcceptWorkItem)
	admin.POST("/work-items/:id/reject", adminHandler.RejectWorkItem)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
