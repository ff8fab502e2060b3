package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"homefind/api/internal/cache"
	"homefind/api/internal/config"
	"homefind/api/internal/middleware"
	"homefind/api/internal/models"
	"homefind/api/internal/repository"
	"homefind/api/internal/service"
	"homefind/api/internal/storage"
)

type HandlerSet struct {
	log       zerolog.Logger
	cfg       *config.AppConfig
	listings  *service.ListingService
	analytics *service.AnalyticsService
	leads     *service.LeadService
	users     *repository.UserRepository
	db        *pgxpool.Pool
	cache     *redis.Client
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, redisClient *redis.Client, store *storage.ObjectStore, cfg *config.AppConfig) HandlerSet {
	propertyRepo := repository.NewPropertyRepository(db)
	viewRepo := repository.NewViewRepository(db)
	leadRepo := repository.NewLeadRepository(db)
	userRepo := repository.NewUserRepository(db)

	var dedup service.Deduper
	if redisClient != nil {
		dedup = cache.NewViewDeduper(redisClient)
	}
	var images service.ImageResolver
	if store != nil {
		images = store
	}

	listings := service.NewListingService(propertyRepo, cfg.Listings, log)
	analytics := service.NewAnalyticsService(viewRepo, propertyRepo, dedup, images, cfg.Analytics, log)
	leads := service.NewLeadService(leadRepo, propertyRepo, log)

	return HandlerSet{
		log:       log,
		cfg:       cfg,
		listings:  listings,
		analytics: analytics,
		leads:     leads,
		users:     userRepo,
		db:        db,
		cache:     redisClient,
	}
}

// ListingLifecycle exposes the sweep entry point for the job scheduler.
func (h HandlerSet) ListingLifecycle() *service.ListingService {
	return h.listings
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	v1 := router.Group("/v1")

	analytics := v1.Group("/analytics")
	analytics.POST("/track", h.TrackView)
	analyticsAuthed := v1.Group("/analytics")
	analyticsAuthed.Use(
		middleware.Auth(h.cfg, h.users),
		middleware.RequireRoles(models.UserRoleSeller, models.UserRoleAgent, models.UserRoleAdmin),
	)
	analyticsAuthed.GET("/overview", h.AnalyticsOverview)
	analyticsAuthed.GET("/properties/:id", h.PropertyAnalytics)

	properties := v1.Group("/properties")
	properties.GET("", h.ListProperties)
	properties.GET("/:id", middleware.OptionalAuth(h.cfg, h.users), h.GetProperty)
	propertiesAuthed := v1.Group("/properties")
	propertiesAuthed.Use(
		middleware.Auth(h.cfg, h.users),
		middleware.RequireRoles(models.UserRoleSeller, models.UserRoleAgent, models.UserRoleAdmin),
	)
	propertiesAuthed.POST("", h.CreateProperty)
	propertiesAuthed.DELETE("/:id", h.DeleteProperty)
	propertiesAuthed.POST("/:id/renew", h.RenewProperty)

	// separate prefix: gin cannot mix a static segment with :id
	my := v1.Group("/my")
	my.Use(
		middleware.Auth(h.cfg, h.users),
		middleware.RequireRoles(models.UserRoleSeller, models.UserRoleAgent, models.UserRoleAdmin),
	)
	my.GET("/properties", h.MyProperties)

	leads := v1.Group("/leads")
	leads.POST("", h.CreateLead)
	leadsAuthed := v1.Group("/leads")
	leadsAuthed.Use(
		middleware.Auth(h.cfg, h.users),
		middleware.RequireRoles(models.UserRoleSeller, models.UserRoleAgent, models.UserRoleAdmin),
	)
	leadsAuthed.GET("", h.ListLeads)
	leadsAuthed.PATCH("/:id/status", h.UpdateLeadStatus)
	leadsAuthed.DELETE("/:id", h.DeleteLead)

	admin := v1.Group("/admin")
	admin.Use(
		middleware.Auth(h.cfg, h.users),
		middleware.RequireRoles(models.UserRoleAdmin),
	)
	admin.GET("/users", h.AdminListUsers)
	admin.PATCH("/users/:id/status", h.AdminSetUserStatus)
	admin.GET("/properties", h.AdminListProperties)
	admin.POST("/properties/:id/expire", h.AdminExpireProperty)
	admin.POST("/sweep", h.AdminRunSweep)
}

func currentCaller(c *gin.Context) (models.Caller, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return models.Caller{}, false
	}
	return models.Caller{ID: user.ID, Role: user.Role}, true
}
