package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/vitortoniolo/webapp-showme/internal/access"
	"github.com/vitortoniolo/webapp-showme/internal/config"
	"github.com/vitortoniolo/webapp-showme/internal/middleware"
	"github.com/vitortoniolo/webapp-showme/internal/repository"
	"github.com/vitortoniolo/webapp-showme/internal/seed"
	"github.com/vitortoniolo/webapp-showme/internal/service"
	"github.com/vitortoniolo/webapp-showme/internal/storage"
)

const (
	defaultEventPageSize   = 50
	defaultCatalogPageSize = 100
)

type HandlerSet struct {
	log           zerolog.Logger
	cfg           *config.AppConfig
	policy        *access.Policy
	authService   *service.AuthService
	catalog       *service.CatalogService
	uploadService *service.UploadService
	seeder        *seed.Seeder
	db            *pgxpool.Pool
	cache         *redis.Client
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, store *storage.ObjectStore, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	establishmentRepo := repository.NewEstablishmentRepository(db)
	eventRepo := repository.NewEventRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	artistRepo := repository.NewArtistRepository(db)

	policy := access.NewPolicy(cfg.Auth.AdminEmails, cfg.Auth.FullAccessEmails)
	auth := service.NewAuthService(userRepo, sessionRepo, log)
	catalog := service.NewCatalogService(establishmentRepo, eventRepo, genreRepo, artistRepo, policy, log)

	var upload *service.UploadService
	if store != nil {
		upload = service.NewUploadService(store, log)
	}

	seeder := seed.New(establishmentRepo, eventRepo, genreRepo, artistRepo, log)

	return HandlerSet{
		log:           log,
		cfg:           cfg,
		policy:        policy,
		authService:   auth,
		catalog:       catalog,
		uploadService: upload,
		seeder:        seeder,
		db:            db,
		cache:         cache,
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/health", h.Health)

	authRequired := middleware.Auth(h.authService)
	authLimiter := middleware.RateLimit(h.cache, "auth", h.cfg.Auth.LoginRateLimit, h.cfg.Auth.LoginRateWindow, h.log)

	auth := router.Group("/auth")
	{
		auth.POST("/signup", authLimiter, h.Signup)
		auth.POST("/login", authLimiter, h.Login)
		auth.GET("/me", authRequired, h.Me)
		auth.GET("/sessions", authRequired, h.Sessions)
		auth.POST("/logout", authRequired, h.Logout)
	}

	events := router.Group("/events")
	{
		events.GET("", h.ListEvents)
		events.GET("/:id", h.GetEvent)
		events.POST("", authRequired, h.CreateEvent)
		events.PUT("/:id", authRequired, h.UpdateEvent)
		events.DELETE("/:id", authRequired, h.DeleteEvent)
	}

	establishments := router.Group("/establishments")
	{
		establishments.GET("", h.ListEstablishments)
		establishments.GET("/:id", h.GetEstablishment)
		establishments.POST("", authRequired, h.CreateEstablishment)
		establishments.PUT("/:id", authRequired, h.UpdateEstablishment)
		establishments.DELETE("/:id", authRequired, h.DeleteEstablishment)
	}

	// Genres and artists are open to any caller, no ownership model.
	genres := router.Group("/genres")
	{
		genres.GET("", h.ListGenres)
		genres.GET("/:id", h.GetGenre)
		genres.POST("", h.CreateGenre)
		genres.PUT("/:id", h.UpdateGenre)
		genres.DELETE("/:id", h.DeleteGenre)
	}

	artists := router.Group("/artists")
	{
		artists.GET("", h.ListArtists)
		artists.GET("/:id", h.GetArtist)
		artists.POST("", h.CreateArtist)
		artists.PUT("/:id", h.UpdateArtist)
		artists.DELETE("/:id", h.DeleteArtist)
	}

	my := router.Group("/my", authRequired)
	{
		my.GET("/events", h.MyEvents)
		my.GET("/establishments", h.MyEstablishments)
	}

	media := router.Group("/media", authRequired)
	{
		media.POST("/upload", h.UploadMedia)
	}

	dev := router.Group("/dev")
	{
		dev.POST("/seed", h.Seed)
	}
}
