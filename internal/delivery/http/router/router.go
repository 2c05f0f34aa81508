// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"roster/internal/delivery/http/middleware"
	"roster/internal/delivery/http/router/handler"
	"roster/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler         *handler.AuthHandler
	UserHandler         *handler.UserHandler
	RoleHandler         *handler.RoleHandler
	AuthMiddleware      *middleware.AuthMiddleware
	RequestIDMiddleware *middleware.RequestIDMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler         *handler.AuthHandler
	userHandler         *handler.UserHandler
	roleHandler         *handler.RoleHandler
	authMiddleware      *middleware.AuthMiddleware
	requestIDMiddleware *middleware.RequestIDMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:         params.AuthHandler,
		userHandler:         params.UserHandler,
		roleHandler:         params.RoleHandler,
		authMiddleware:      params.AuthMiddleware,
		requestIDMiddleware: params.RequestIDMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.requestIDMiddleware.Handle)
	// Every request is identified; individual groups decide whether to gate.
	e.Use(r.authMiddleware.Identify)

	e.GET("/health", handler.HealthCheck)

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.GET("/logout", r.authHandler.Logout, r.authMiddleware.RequireAuthenticated)
		authGroup.POST("/forgot-password", r.authHandler.ForgotPassword)
		authGroup.PATCH("/reset-password/:token", r.authHandler.ResetPassword)
	}

	// Account management is admin-only.
	userGroup := e.Group("/users")
	userGroup.Use(r.authMiddleware.RequireAuthenticated)
	userGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		userGroup.GET("", r.userHandler.List)
		userGroup.POST("", r.userHandler.Create)
		userGroup.GET("/:id", r.userHandler.GetByID)
		userGroup.PATCH("/:id", r.userHandler.Update)
		userGroup.DELETE("/:id", r.userHandler.Delete)
	}

	roleGroup := e.Group("/roles")
	roleGroup.Use(r.authMiddleware.RequireAuthenticated)
	roleGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		roleGroup.GET("/user/:id", r.roleHandler.GetForUser)
		roleGroup.PUT("/user/:id", r.roleHandler.ReplaceForUser)
	}
}
