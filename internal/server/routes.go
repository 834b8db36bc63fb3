// Package server contain implementation of go-gin-server and each route handlers
package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/otel/trace/noop"

	"JobPortal-backend/internal/auth"
	"JobPortal-backend/internal/controller/admin"
	"JobPortal-backend/internal/controller/application"
	"JobPortal-backend/internal/controller/company"
	"JobPortal-backend/internal/controller/jobpost"
	"JobPortal-backend/internal/controller/payment"
	"JobPortal-backend/internal/controller/token"
	"JobPortal-backend/internal/controller/user"
	"JobPortal-backend/internal/middleware"
	"JobPortal-backend/internal/model"

	// Init swagger doc
	_ "JobPortal-backend/docs"
)

// base64 logos are a third larger than the image itself
const maxLogoBody = 16 << 20

// RegisterRoutes will register each http endpoint routes to bound Server instance
func (s *MyServer) RegisterRoutes() http.Handler {
	r := gin.Default()

	tracer := s.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.Config.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(middleware.SafeHeader(s.Config.IsProduction()), middleware.Tracing(tracer))

	gAuth := auth.NewOauthLoginHandler(s.DB, auth.NewGoogleOauthConfig(s.Config.Auth), s.Config.Auth.UserInfoEndpoint)
	lAuth := auth.NewLocalAuthHandler(s.DB)
	logout := auth.NewLogoutController(s.Blacklist)

	tokenController := token.NewTokenController(s.DB)
	userController := user.NewUserController(s.DB)
	companyController := company.NewCompanyController(s.DB, s.Storage)
	jobController := jobpost.NewJobPostController(s.DB)
	applicationController := application.NewApplicationController(s.DB)
	paymentController := payment.NewPaymentController(s.DB, s.Storage)
	adminController := admin.NewAdminController(s.DB)

	rateLimit := middleware.RateLimiterMiddleware(uint(max(s.Config.RateLimit.RequestsPerSecond, 0)), s.Redis)

	r.GET("/health", s.healthHandler)
	if s.Config.Storage.Bucket == "" {
		r.Static("/uploads", s.Config.Storage.LocalDir)
	}

	v1 := r.Group("/api/v1")
	{
		public := v1.Group("", rateLimit)
		{
			authRoute := public.Group("/auth")
			{
				authRoute.POST("google", gAuth.GoogleLoginHandler)
				authRoute.GET("google/callback", gAuth.Callback)
				authRoute.POST("login", lAuth.LocalLoginHandler)
			}
			public.POST("/token/redeem", tokenController.RedeemToken)
			public.POST("/register", userController.RegisterUser)
		}

		needAuth := v1.Group("")
		{
			needAuth.Use(middleware.RequireAuth(s.DB), middleware.JwtBlacklistCheck(s.Blacklist), rateLimit)

			needAuth.POST("/auth/logout", logout.LogoutHandler)

			needAuth.GET("/jobs", jobController.GetJobs)
			needAuth.GET("/jobs/:id", jobController.GetJobByID)

			needAuth.GET("/companies", companyController.GetAllCompanies)
			needAuth.GET("/companies/:id", companyController.GetCompanyByID)

			needAuth.POST("/applications", applicationController.SubmitApplication)
			needAuth.GET("/me/applications", userController.GetMyApplications)

			needAuth.GET("/payment-methods", paymentController.GetPaymentMethods)
			needAuth.POST("/payments", middleware.SizeLimit(payment.MaxScreenshotSize), paymentController.SubmitPayment)

			needAdmin := needAuth.Group("/admin")
			{
				needAdmin.Use(middleware.CheckRole(model.RoleAdmin))
				needAdmin.GET("metrics", adminController.GetMetrics)

				needAdmin.POST("tokens", tokenController.CreateToken)
				needAdmin.GET("tokens", tokenController.ListTokens)

				needAdmin.POST("companies", middleware.SizeLimit(maxLogoBody), companyController.CreateCompany)
				needAdmin.PATCH("companies/:id", middleware.SizeLimit(maxLogoBody), companyController.EditCompany)
				needAdmin.DELETE("companies/:id", companyController.DeleteCompany)

				needAdmin.POST("jobs", jobController.CreateJob)
				needAdmin.PATCH("jobs/:id", jobController.EditJob)
				needAdmin.DELETE("jobs/:id", jobController.DeleteJob)

				needAdmin.PATCH("payment-methods/:id", paymentController.UpdatePaymentMethod)
				needAdmin.GET("payments", paymentController.ListPayments)
			}
		}
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func (s *MyServer) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.DB.Health())
}
