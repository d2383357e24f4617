package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/redeclipse/stats-api/internal/logic"
)

type Config struct {
	Postgres *pgxpool.Pool
	Redis    *redis.Client
	Logger   *zap.Logger

	// Services
	Players  logic.PlayerService
	Servers  logic.ServerService
	Maps     logic.MapService
	Modes    logic.ModeService
	Mutators logic.MutatorService
	Weapons  logic.WeaponService

	// Default page size when the request does not specify one
	PageSize int

	AllowedOrigins []string
}

type Handler struct {
	pg        *pgxpool.Pool
	redis     *redis.Client
	logger    *zap.SugaredLogger
	validator *validator.Validate

	players  logic.PlayerService
	servers  logic.ServerService
	maps     logic.MapService
	modes    logic.ModeService
	mutators logic.MutatorService
	weapons  logic.WeaponService

	pageSize       int
	allowedOrigins []string
}

func New(cfg Config) *Handler {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	return &Handler{
		pg:             cfg.Postgres,
		redis:          cfg.Redis,
		logger:         cfg.Logger.Sugar(),
		validator:      validator.New(),
		players:        cfg.Players,
		servers:        cfg.Servers,
		maps:           cfg.Maps,
		modes:          cfg.Modes,
		mutators:       cfg.Mutators,
		weapons:        cfg.Weapons,
		pageSize:       pageSize,
		allowedOrigins: cfg.AllowedOrigins,
	}
}

// Routes builds the chi router for the API.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(h.requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.allowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", h.Health)
	r.Get("/readyz", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/players", func(r chi.Router) {
			r.Get("/", h.ListPlayers)
			r.Route("/{handle}", func(r chi.Router) {
				r.Get("/", h.GetPlayer)
				r.Get("/games", h.GetPlayerGames)
				r.Get("/weapons", h.GetPlayerWeapons)
			})
		})
		r.Route("/servers", func(r chi.Router) {
			r.Get("/", h.ListServers)
			r.Route("/{handle}", func(r chi.Router) {
				r.Get("/", h.GetServer)
				r.Get("/games", h.GetServerGames)
			})
		})
		r.Route("/maps", func(r chi.Router) {
			r.Get("/", h.ListMaps)
			r.Route("/{name}", func(r chi.Router) {
				r.Get("/", h.GetMap)
				r.Get("/games", h.GetMapGames)
				r.Get("/topraces", h.GetMapTopRaces)
				r.Get("/weapons", h.GetMapWeapons)
			})
		})
		r.Route("/modes", func(r chi.Router) {
			r.Get("/", h.ListModes)
			r.Route("/{name}", func(r chi.Router) {
				r.Get("/", h.GetMode)
				r.Get("/games", h.GetModeGames)
			})
		})
		r.Route("/mutators", func(r chi.Router) {
			r.Get("/", h.ListMutators)
			r.Route("/{name}", func(r chi.Router) {
				r.Get("/", h.GetMutator)
				r.Get("/games", h.GetMutatorGames)
			})
		})
		r.Route("/weapons", func(r chi.Router) {
			r.Get("/", h.ListWeapons)
			r.Get("/{name}", h.GetWeapon)
		})
	})

	return r
}
