package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/GoArmGo/PhotoShare/internal/core/ports"
	"github.com/GoArmGo/PhotoShare/internal/metrics"
	"github.com/GoArmGo/PhotoShare/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// publicRoutes не требуют сессии.
var publicRoutes = map[string]bool{
	"POST /admin/login":  true,
	"POST /admin/logout": true,
	"POST /user":         true,
	"GET /healthz":       true,
	"GET /metrics":       true,
}

// RouterConfig — всё, что нужно для сборки API.
type RouterConfig struct {
	Guard       SessionGuard
	Gallery     usecase.GalleryUseCase
	Photos      usecase.PhotoUseCase
	Users       usecase.UserUseCase
	FileStorage ports.FileStorage
	Metrics     *metrics.Metrics
	Logger      *slog.Logger

	CookieName     string
	SessionTTL     time.Duration
	SecureCookie   bool
	UploadLimiter  chan struct{}
	UploadMaxBytes int64
	RequestTimeout time.Duration
}

// NewRouter собирает chi-роутер API.
func NewRouter(cfg RouterConfig) http.Handler {
	userHandler := NewUserHandler(cfg.Gallery, cfg.Users, cfg.Logger)
	adminHandler := NewAdminHandler(cfg.Guard, cfg.CookieName, cfg.SessionTTL, cfg.SecureCookie, cfg.Logger)

	var onRejected func()
	if cfg.Metrics != nil {
		onRejected = cfg.Metrics.UploadRejected
	}
	photoHandler := NewPhotoHandler(cfg.Gallery, cfg.Photos, cfg.FileStorage, cfg.UploadLimiter, cfg.UploadMaxBytes, onRejected, cfg.Logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(withUserSlot)
	r.Use(RequestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Instrument)
	}
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	r.Use(SessionGate(cfg.Guard, cfg.CookieName, publicRoutes, cfg.Logger))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondWithText(w, http.StatusOK, "ok", cfg.Logger)
	})
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}

	r.Post("/admin/login", adminHandler.Login)
	r.Post("/admin/logout", adminHandler.Logout)

	r.Post("/user", userHandler.Register)
	r.Get("/user/list", userHandler.ListUsers)
	r.Get("/user/{id}", userHandler.GetUser)
	r.Get("/counts", userHandler.Counts)

	r.Get("/photosOfUser/{id}", photoHandler.PhotosOfUser)
	r.Get("/photos/{id}", photoHandler.PhotosOfUser)
	r.Post("/photos/new", photoHandler.UploadPhoto)
	r.Get("/commentsOfUser/{id}", photoHandler.CommentsOfUser)
	r.Post("/commentsOfPhoto/{photo_id}", photoHandler.AddComment)
	r.Get("/images/{file_name}", photoHandler.Image)

	return r
}
