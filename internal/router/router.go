package router

import (
	"time"

	"sorty/internal/config"
	"sorty/internal/handler"
	"sorty/internal/middleware"
	perm "sorty/internal/permission"
	"sorty/internal/repository"
	"sorty/internal/service"
	"sorty/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis.
// rdb may be nil, which disables the asset cache and e-mail notifications.
// Notifications also need SMTP_HOST.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// ── Infrastructure ───────────────────────────────────────────────────────
	cache := service.NewAssetCache(rdb, time.Duration(cfg.AssetCacheTTLMinutes)*time.Minute)
	var notifier service.Notifier
	if rdb != nil && cfg.SMTPHost != "" {
		notifier = worker.NewDispatcher(rdb)
	}

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	movementRepo := repository.NewMovementRepository(db)
	maintenanceRepo := repository.NewMaintenanceRepository(db)
	incidentRepo := repository.NewIncidentRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, assetRepo, cache, cfg)
	categorySvc := service.NewCategoryService(categoryRepo, assetRepo)
	assetSvc := service.NewAssetService(assetRepo, categoryRepo, cache)
	assignmentSvc := service.NewAssignmentService(assetRepo, assignmentRepo, movementRepo, userRepo, cache, notifier, cfg)
	movementSvc := service.NewMovementService(assetRepo, assignmentRepo, movementRepo, cache)
	maintenanceSvc := service.NewMaintenanceService(maintenanceRepo, assetRepo, cache)
	incidentSvc := service.NewIncidentService(incidentRepo, assetRepo, assignmentRepo, movementRepo, maintenanceRepo, cache)
	reportSvc := service.NewReportService(reportRepo, assetRepo, assignmentRepo, cfg.OrganizationName)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	categoriesH := handler.NewCategoriesHandler(categorySvc)
	assetsH := handler.NewAssetsHandler(assetSvc)
	assignmentsH := handler.NewAssignmentsHandler(assignmentSvc)
	movementsH := handler.NewMovementsHandler(movementSvc)
	maintenanceH := handler.NewMaintenanceHandler(maintenanceSvc)
	incidentsH := handler.NewIncidentsHandler(incidentSvc)
	reportsH := handler.NewReportsHandler(reportSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	auth := r.Group("/v1/auth", middleware.LoginRateLimiter())
	{
		auth.POST("/login", authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	can := middleware.RequirePermission
	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	{
		assets := v1.Group("/assets")
		{
			assets.GET("", can(perm.Assets, perm.Read), assetsH.List)
			assets.GET("/:id", can(perm.Assets, perm.Read), assetsH.Get)
			assets.GET("/code/:code", can(perm.Assets, perm.Read), assetsH.GetByCode)
			assets.GET("/:id/assignment", can(perm.Assignments, perm.Read), assignmentsH.ActiveForAsset)
			assets.POST("", can(perm.Assets, perm.Create), assetsH.Create)
			assets.PUT("/:id", can(perm.Assets, perm.Update), assetsH.Update)
			assets.DELETE("/:id", can(perm.Assets, perm.Delete), assetsH.Delete)
		}

		assignments := v1.Group("/assignments")
		{
			assignments.GET("", can(perm.Assignments, perm.Read), assignmentsH.List)
			assignments.GET("/:id", can(perm.Assignments, perm.Read), assignmentsH.Get)
			assignments.POST("", can(perm.Assignments, perm.Create), assignmentsH.Assign)
			assignments.POST("/return", can(perm.Assignments, perm.Update), assignmentsH.Return)
			assignments.POST("/transfer", can(perm.Assignments, perm.Update), assignmentsH.Transfer)
		}

		movements := v1.Group("/movements")
		{
			movements.GET("", can(perm.Movements, perm.Read), movementsH.List)
			movements.POST("/entries", can(perm.Movements, perm.Create), movementsH.Entry)
			movements.POST("/exits", can(perm.Movements, perm.Create), movementsH.Exit)
		}

		maint := v1.Group("/maintenance")
		{
			maint.GET("", can(perm.Maintenance, perm.Read), maintenanceH.List)
			maint.GET("/:id", can(perm.Maintenance, perm.Read), maintenanceH.Get)
			maint.POST("", can(perm.Maintenance, perm.Create), maintenanceH.Schedule)
			maint.PUT("/:id", can(perm.Maintenance, perm.Update), maintenanceH.Update)
			maint.POST("/:id/start", can(perm.Maintenance, perm.Update), maintenanceH.Start)
			maint.POST("/:id/complete", can(perm.Maintenance, perm.Update), maintenanceH.Complete)
			maint.POST("/:id/cancel", can(perm.Maintenance, perm.Update), maintenanceH.Cancel)
		}

		incidents := v1.Group("/incidents")
		{
			incidents.GET("", can(perm.Incidents, perm.Read), incidentsH.List)
			incidents.GET("/:id", can(perm.Incidents, perm.Read), incidentsH.Get)
			incidents.POST("", can(perm.Incidents, perm.Create), incidentsH.Report)
			incidents.POST("/:id/investigate", can(perm.Incidents, perm.Update), incidentsH.Investigate)
			incidents.POST("/:id/resolve", can(perm.Incidents, perm.Update), incidentsH.Resolve)
			incidents.POST("/:id/close", can(perm.Incidents, perm.Update), incidentsH.Close)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", can(perm.Categories, perm.Read), categoriesH.Tree)
			categories.GET("/:id", can(perm.Categories, perm.Read), categoriesH.Get)
			categories.POST("", can(perm.Categories, perm.Create), categoriesH.Create)
			categories.PUT("/:id", can(perm.Categories, perm.Update), categoriesH.Update)
			categories.DELETE("/:id", can(perm.Categories, perm.Delete), categoriesH.Delete)
		}

		users := v1.Group("/users")
		{
			users.GET("", can(perm.Users, perm.Read), usersH.List)
			users.POST("", can(perm.Users, perm.Create), usersH.Create)
			users.PUT("/:id", can(perm.Users, perm.Update), usersH.Update)
			users.DELETE("/:id", can(perm.Users, perm.Delete), usersH.Deactivate)
			users.PATCH("/:id/reactivate", can(perm.Users, perm.Update), usersH.Reactivate)
		}

		reports := v1.Group("/reports", can(perm.Reports, perm.Read))
		{
			reports.GET("/summary", reportsH.Summary)
			reports.GET("/assets.xlsx", reportsH.ExportAssets)
			reports.GET("/assignments/:id/receipt", reportsH.AssignmentReceipt)
		}
	}

	// Swagger UI, only outside production
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
