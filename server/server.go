package server

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Daskott/raksha/server/assistant"
	"github.com/Daskott/raksha/server/auth"
	"github.com/Daskott/raksha/server/cron"
	"github.com/Daskott/raksha/server/database"
	"github.com/Daskott/raksha/server/geocode"
	"github.com/Daskott/raksha/server/logger"
	"github.com/Daskott/raksha/server/metrics"
	"github.com/Daskott/raksha/server/models"
	"github.com/Daskott/raksha/server/notify"
	"github.com/Daskott/raksha/server/twilio"
	"github.com/Daskott/raksha/shared"
	"github.com/go-playground/validator"
	"github.com/gorilla/mux"
	"github.com/ulule/limiter/v3"
)

const DEFAULT_AUTH_RATE_LIMIT = "20-M"

var logg = logger.NewLogger()

// Server holds the dependencies shared by every handler. It keeps no per-request state.
type Server struct {
	store      *models.Store
	tokens     *auth.TokenIssuer
	dispatcher *notify.Dispatcher
	responder  assistant.Responder
	geocoder   geocode.Geocoder
	metrics    *metrics.Metrics
	validate   *validator.Validate
	authRate   limiter.Rate
}

type Options struct {
	Store  *models.Store
	Tokens *auth.TokenIssuer
	// Sender delivers alert SMS, nil disables SMS
	Sender notify.Sender
	// Responder answers chat messages, defaults to assistant.CannedResponder
	Responder assistant.Responder
	// Geocoder fills in missing alert addresses, nil disables it
	Geocoder      geocode.Geocoder
	Metrics       *metrics.Metrics
	AuthRateLimit string
}

func NewServer(opts Options) (*Server, error) {
	validate := validator.New()
	if err := RegisterValidators(validate); err != nil {
		return nil, err
	}

	rateLimit := opts.AuthRateLimit
	if rateLimit == "" {
		rateLimit = DEFAULT_AUTH_RATE_LIMIT
	}
	authRate, err := limiter.NewRateFromFormatted(rateLimit)
	if err != nil {
		return nil, fmt.Errorf("invalid auth rate limit %q: %v", rateLimit, err)
	}

	responder := opts.Responder
	if responder == nil {
		responder = assistant.CannedResponder{}
	}

	return &Server{
		store:      opts.Store,
		tokens:     opts.Tokens,
		dispatcher: notify.NewDispatcher(opts.Sender, logg, opts.Metrics),
		responder:  responder,
		geocoder:   opts.Geocoder,
		metrics:    opts.Metrics,
		validate:   validate,
		authRate:   authRate,
	}, nil
}

// Handler returns the http handler serving the raksha api
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(loggingMiddleware, s.metrics.Middleware, recoveryMiddleware)
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not Found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	router.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(s.initialContextMiddleware)

	rateLimited := s.rateLimitMiddleware()

	// Auth
	api.Handle("/auth/register", rateLimited(http.HandlerFunc(s.register))).Methods(http.MethodPost)
	api.Handle("/auth/login", rateLimited(http.HandlerFunc(s.logIn))).Methods(http.MethodPost)
	api.Handle("/auth/me", protected(s.me)).Methods(http.MethodGet)
	api.HandleFunc("/auth/jwks", s.jwks).Methods(http.MethodGet)

	// Contacts
	api.Handle("/contacts", protected(s.createContact)).Methods(http.MethodPost)
	api.Handle("/contacts", protected(s.contacts)).Methods(http.MethodGet)
	api.Handle("/contacts/{id}", protected(s.deleteContact)).Methods(http.MethodDelete)

	// Alerts
	api.Handle("/alerts", protected(s.createAlert)).Methods(http.MethodPost)
	api.Handle("/alerts", protected(s.alerts)).Methods(http.MethodGet)

	// Location
	api.Handle("/location/check-safety", protected(s.checkLocationSafety)).Methods(http.MethodPost)

	// Settings
	api.Handle("/settings", protected(s.settings)).Methods(http.MethodGet)
	api.Handle("/settings", protected(s.updateSettings)).Methods(http.MethodPut)

	// Assistant & history
	api.Handle("/ai/chat", protected(s.chat)).Methods(http.MethodPost)
	api.Handle("/history", protected(s.history)).Methods(http.MethodGet)

	// Utility
	api.HandleFunc("/health", healthCheck).Methods(http.MethodGet)
	api.HandleFunc("/emergency-numbers", emergencyNumbers).Methods(http.MethodGet)

	return corsMiddleware(router)
}

// Start wires up every dependency from config, then serves until SIGINT/SIGTERM
func Start(config shared.ServerConfig, devMode bool) {
	logg = logger.New(config.Logging)

	if config.Database.Dir == "" {
		config.Database.Dir = configDirectory(devMode)
	}

	backup, err := newSqliteBackup(config)
	fatalOnError(err)
	if backup != nil {
		fatalOnError(backup.restoreIfMissing())
	}

	db, err := database.Open(config.Database)
	fatalOnError(err)
	fatalOnError(database.Migrate(db))
	if backup != nil {
		backup.db = db
	}

	tokens, err := auth.NewTokenIssuer(config.Auth)
	fatalOnError(err)

	var sender notify.Sender
	if client := twilio.NewClient(config.Twilio); client != nil {
		sender = client
	} else {
		logg.Warn("Twilio is not configured, alerts will not be sent by SMS")
	}

	var geocoder geocode.Geocoder
	if googleGeocoder := geocode.NewGoogleGeocoder(config.Google.MapsAPIKey); googleGeocoder != nil {
		geocoder = googleGeocoder
	}

	srv, err := NewServer(Options{
		Store:         models.NewStore(db),
		Tokens:        tokens,
		Sender:        sender,
		Responder:     assistant.NewResponder(config.OpenAI),
		Geocoder:      geocoder,
		Metrics:       metrics.NewMetrics(),
		AuthRateLimit: config.Raksha.AuthRateLimit,
	})
	fatalOnError(err)

	scheduler := cron.NewCronScheduler(config.Raksha.Cron.TimeZone)
	if backup != nil {
		fatalOnError(backup.schedule(scheduler))
	}
	scheduler.StartAsync()

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%v", config.Raksha.Listener.Port),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	go serve(httpServer)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	cleanup(scheduler, httpServer, backup)
}

// ImportZones stores the given zones in the db the server would use with this config
func ImportZones(config shared.ServerConfig, devMode bool, zones []models.SafetyZone) error {
	if config.Database.Dir == "" {
		config.Database.Dir = configDirectory(devMode)
	}

	db, err := database.Open(config.Database)
	if err != nil {
		return err
	}

	if err := database.Migrate(db); err != nil {
		return err
	}

	return models.NewStore(db).CreateZones(zones)
}
