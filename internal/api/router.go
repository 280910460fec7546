package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskboard/tracker-api/internal/api/handler"
	"github.com/taskboard/tracker-api/internal/api/middleware"
	"github.com/taskboard/tracker-api/internal/core/domain"
	"github.com/taskboard/tracker-api/internal/core/ports"

	_ "github.com/taskboard/tracker-api/docs"
)

// Deps bundles everything the router needs. Services are constructed in main
// so the router stays free of persistence wiring.
type Deps struct {
	DB        *mongo.Database
	Redis     *redis.Client
	JWTSecret string
	Log       zerolog.Logger

	Auth      ports.AuthService
	Projects  ports.ProjectService
	Tasks     ports.TaskService
	Tickets   ports.TicketService
	Users     ports.UserService
	Analytics ports.AnalyticsService
	Activity  ports.ActivityService
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("tracker"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	projectHandler := handler.NewProjectHandler(d.Projects)
	taskHandler := handler.NewTaskHandler(d.Tasks)
	ticketHandler := handler.NewTicketHandler(d.Tickets)
	userHandler := handler.NewUserHandler(d.Users)
	analyticsHandler := handler.NewAnalyticsHandler(d.Analytics)
	activityHandler := handler.NewActivityHandler(d.Activity)

	auth := middleware.Auth(d.JWTSecret)
	adminOnly := middleware.RBAC(string(domain.RoleAdmin))
	managers := middleware.RBAC(string(domain.RoleAdmin), string(domain.RoleModerator))

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes and operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.DB, d.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Authenticated API ---
	v1 := e.Group("/v1", auth)

	projects := v1.Group("/projects")
	projects.GET("", projectHandler.List)
	projects.POST("", projectHandler.Create, managers)
	projects.GET("/:id", projectHandler.Get)
	projects.PUT("/:id", projectHandler.Update, managers)
	projects.DELETE("/:id", projectHandler.Delete, managers)
	projects.GET("/:id/tasks", projectHandler.ListTasks)

	tasks := v1.Group("/tasks")
	tasks.GET("", taskHandler.List)
	tasks.POST("", taskHandler.Create, managers)
	tasks.GET("/:id", taskHandler.Get)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete, managers)

	tickets := v1.Group("/tickets")
	tickets.GET("", ticketHandler.List)
	tickets.POST("", ticketHandler.Create)
	tickets.GET("/:id", ticketHandler.Get)
	tickets.PUT("/:id/verify", ticketHandler.Verify, managers)
	tickets.DELETE("/:id", ticketHandler.Delete, managers)

	users := v1.Group("/users")
	users.GET("", userHandler.List, adminOnly)
	users.GET("/role/:role", userHandler.ListByRole, managers)
	users.GET("/:id", userHandler.Get, adminOnly)
	users.PUT("/:id", userHandler.Update, adminOnly)
	users.DELETE("/:id", userHandler.Delete, adminOnly)

	analytics := v1.Group("/analytics")
	analytics.GET("/system", analyticsHandler.System, adminOnly)
	analytics.GET("/projects/:id", analyticsHandler.Project)
	analytics.GET("/moderator", analyticsHandler.Moderator, managers)
	analytics.GET("/me", analyticsHandler.User)

	v1.GET("/activity", activityHandler.ListRecent, adminOnly)

	return e
}
