package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/tadreeb/academy/internal/app/controllers"
	"github.com/tadreeb/academy/internal/app/models"
	"github.com/tadreeb/academy/internal/middleware"
)

// Controllers bundles every HTTP handler set the API mounts
type Controllers struct {
	Catalog   *controllers.CatalogController
	Forms     *controllers.FormController
	I18n      *controllers.I18nController
	AuthProxy *controllers.AuthProxyController
	AdminAuth *controllers.AdminAuthController
	Admin     *controllers.AdminController
	Health    *controllers.HealthController
}

// SetupRouter configures all application routes under /api.
// formLimit guards the public write endpoints and the OTP request.
func SetupRouter(
	router *gin.Engine,
	ctrls *Controllers,
	authMiddleware *middleware.AuthMiddleware,
	formLimit gin.HandlerFunc,
) {
	api := router.Group("/api")

	api.GET("/health", ctrls.Health.Health)

	// --- Public catalog ---
	api.GET("/home", ctrls.Catalog.Home)
	api.GET("/categories", ctrls.Catalog.ListCategories)
	programs := api.Group("/programs")
	{
		programs.GET("", ctrls.Catalog.ListPrograms)
		programs.GET("/:idOrSlug", ctrls.Catalog.GetProgram)
		programs.POST("/register", formLimit, ctrls.Forms.RegisterForProgram)
	}
	api.GET("/tracks", ctrls.Catalog.ListTracks)
	api.GET("/tracks/:idOrSlug", ctrls.Catalog.GetTrack)
	api.GET("/team", ctrls.Catalog.ListTeam)
	api.GET("/testimonials", ctrls.Catalog.ListTestimonials)

	// --- Public forms ---
	api.POST("/contact", formLimit, ctrls.Forms.SubmitContact)
	api.POST("/consulting", formLimit, ctrls.Forms.SubmitConsulting)

	// --- Dictionaries ---
	api.GET("/i18n", ctrls.I18n.Languages)
	api.GET("/i18n/:lang", ctrls.I18n.Dictionary)

	// --- Visitor auth, relayed to the auth backend ---
	auth := api.Group("/auth")
	{
		auth.POST("/otp/request", formLimit, ctrls.AuthProxy.RequestOTP)
		auth.POST("/otp/verify", ctrls.AuthProxy.VerifyOTP)
		auth.POST("/register", ctrls.AuthProxy.Register)
		auth.POST("/login", ctrls.AuthProxy.Login)
		auth.POST("/password/reset", ctrls.AuthProxy.ResetPassword)
		auth.POST("/refresh", ctrls.AuthProxy.Refresh)
		auth.POST("/logout", ctrls.AuthProxy.Logout)
		auth.GET("/me", ctrls.AuthProxy.Me)
		auth.GET("/sso", ctrls.AuthProxy.SSO)
	}

	// --- Back-office ---
	admin := api.Group("/admin")
	adminAuth := admin.Group("/auth")
	{
		adminAuth.POST("/login", formLimit, ctrls.AdminAuth.Login)
		adminAuth.POST("/refresh", ctrls.AdminAuth.RefreshToken)
		adminAuth.POST("/logout", ctrls.AdminAuth.Logout)
	}

	authenticated := admin.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Editors and admins work the inbox
		inbox := authenticated.Group("")
		inbox.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RoleEditor))
		{
			inbox.GET("/contact-messages", ctrls.Admin.ListContactMessages)
			inbox.PATCH("/contact-messages/:id/read", ctrls.Admin.MarkContactMessageRead)
			inbox.GET("/registrations", ctrls.Admin.ListRegistrations)
			inbox.GET("/consulting-requests", ctrls.Admin.ListConsultingRequests)
		}

		// Only admins change the catalog
		catalog := authenticated.Group("/programs")
		catalog.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			catalog.POST("", ctrls.Admin.CreateProgram)
			catalog.PUT("/:id", ctrls.Admin.UpdateProgram)
			catalog.DELETE("/:id", ctrls.Admin.DeleteProgram)
			catalog.POST("/:id/image", ctrls.Admin.UploadProgramImage)
		}
	}
}
