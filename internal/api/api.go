package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/susu3304/lootsplit/internal/config"
	"github.com/susu3304/lootsplit/internal/hunt"
	"github.com/susu3304/lootsplit/internal/logging"
	"github.com/susu3304/lootsplit/internal/sharetext"
	"go.uber.org/zap"
)

type API struct {
	router   *mux.Router
	config   *config.Config
	opts     hunt.Options
	share    sharetext.Options
	logger   *zap.Logger
	validate *validator.Validate
	server   *http.Server
}

func New(cfg *config.Config, opts hunt.Options, logger *zap.Logger) *API {
	api := &API{
		router: mux.NewRouter(),
		config: cfg,
		opts:   opts,
		share: sharetext.Options{
			Locale: cfg.Locale(),
			Footer: cfg.ShareFooter,
		},
		logger:   logging.OrNop(logger).Named("api"),
		validate: validator.New(),
	}

	api.setupRoutes()
	api.server = &http.Server{
		Addr:              cfg.WebBind,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return api
}

func (a *API) setupRoutes() {
	a.router.Use(a.requestLogger)

	a.router.HandleFunc("/healthz", a.handleHealth).Methods("GET")

	// Session endpoints
	a.router.HandleFunc("/api/validate", a.handleValidate).Methods("POST")
	a.router.HandleFunc("/api/parse", a.handleParse).Methods("POST")
	a.router.HandleFunc("/api/share", a.handleShare).Methods("POST")

	// Web interface
	a.router.HandleFunc("/", a.handleWebInterface).Methods("GET")
}

// Handler returns the router wrapped with CORS handling.
func (a *API) Handler() http.Handler {
	corsOptions := cors.Options{
		AllowedOrigins:   a.config.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: false,
	}
	return cors.New(corsOptions).Handler(a.router)
}

// Start serves until Shutdown is called.
func (a *API) Start() error {
	a.logger.Info("API server listening", zap.String("addr", "http://"+a.config.WebBind))
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *API) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}
