package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"go.uber.org/zap"

	explorer "github.com/worldtrends/explorer/pkg"
	"github.com/worldtrends/explorer/pkg/audit"
	cacheenv "github.com/worldtrends/explorer/pkg/env/cache"
	"github.com/worldtrends/explorer/pkg/env/db"
	serpapienv "github.com/worldtrends/explorer/pkg/env/serpapi"
	"github.com/worldtrends/explorer/pkg/env/server"
	"github.com/worldtrends/explorer/pkg/env/splunk"
	"github.com/worldtrends/explorer/pkg/env/user"
	"github.com/worldtrends/explorer/pkg/handlers"
	"github.com/worldtrends/explorer/pkg/metrics"
	"github.com/worldtrends/explorer/pkg/middleware"
	"github.com/worldtrends/explorer/pkg/version"
)

const (
	readTimeout       = 1 * time.Minute
	readHeaderTimeout = 20 * time.Second
	writeTimeout      = 2 * time.Minute
	shutdownTimeout   = 15 * time.Second
	schemaTimeout     = 30 * time.Second
)

func Run(logger *zap.SugaredLogger, servere *server.Env) error {
	production := explorer.Production()
	logger.Infof("Starting %s version: %s (commit: %s)", explorer.ServiceName, version.Version(), version.Commit())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	usere := user.NewUserEnv()
	err := usere.Populate()
	if err != nil {
		return fmt.Errorf("unable to configure users: %w", err)
	}

	date := "NONE"
	if !usere.Expiration.IsZero() {
		date = usere.Expiration.Format(user.ExpiryDateLayout)
	}
	logger.Infof("Production: %t, admin restricted: %t, expired: %t (expiration date: %s)",
		production, usere.Enabled(), usere.IsExpired(), date)
	logger.Debugf("Authorized users: %v", usere.Users)

	cachee := cacheenv.NewCacheEnv()
	err = cachee.Populate()
	if err != nil {
		return fmt.Errorf("unable to configure cache: %w", err)
	}

	c, err := newCache(cachee)
	if err != nil {
		return err
	}
	if c != nil {
		defer func() { _ = c.Close() }()
		logger.Infof("Caching responses for %s (redis: %t)", cachee.TTL, cachee.RedisURL != "")
	} else {
		logger.Infof("Response caching is disabled")
	}

	serpe := serpapienv.NewSerpAPIEnv()
	err = serpe.Populate()
	if err != nil {
		return fmt.Errorf("unable to configure SerpAPI: %w", err)
	}

	m := metrics.New()
	selector := newSelector(ctx, logger, serpe, c, cachee, m)
	if servere.Provider != "" && !selector.Switch(servere.Provider) {
		logger.Warnf("Requested provider %s is not available, using: %s", servere.Provider, selector.ActiveName())
	}

	audits := audit.Multi{audit.NewLoggerAudit(logger)}

	dbe := db.NewDBEnv()
	err = dbe.Populate()
	if err != nil {
		return fmt.Errorf("unable to configure database: %w", err)
	}

	var (
		auditDB  *sql.DB
		auditLog audit.Reader
	)
	if dbe.Enabled() {
		logger.Infof("Using audit database driver: %s", dbe.Driver)

		auditDB, err = sql.Open(dbe.Driver.Name(), dbe.ConnectionDSN())
		if err != nil {
			return fmt.Errorf("unable to open database connection: %w", err)
		}
		defer auditDB.Close()
		logger.Debugf("Connected to database host: %s (port: %d)", dbe.Host, dbe.Port)

		sa := audit.NewSQLAudit(auditDB, dbe.Driver.PostgreSQL())

		schemaCtx, cancel := context.WithTimeout(ctx, schemaTimeout)
		err = sa.EnsureSchema(schemaCtx)
		cancel()
		if err != nil {
			return err
		}

		audits = append(audits, sa)
		auditLog = sa
	}

	se := splunk.NewSplunkEnv()
	err = se.Populate()
	if err != nil {
		return fmt.Errorf("unable to configure Splunk: %w", err)
	}
	if se.Enabled() {
		logger.Infof("Sending audit to Splunk endpoint: %s", se.Endpoint)
		audits = append(audits, audit.NewSplunkAudit(se))
	}

	cfg := &explorer.Config{
		Selector: selector,
		Audit:    audits,
		AuditLog: auditLog,
		Metrics:  m,
		UserEnv:  usere,
		Cache:    c,
		DB:       auditDB,
		Logger:   logger,
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(servere.Port)),
		Handler:           NewRouter(cfg, servere),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}

	errs := make(chan error, 1)
	go func() {
		logger.Infof("HTTP server starting on port: %d", servere.Port)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("unable to start HTTP server: %w", err)
		}
	case <-ctx.Done():
		logger.Infof("Shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("unable to shut down HTTP server: %w", err)
		}
	}

	return nil
}

// NewRouter wires every endpoint with its middleware chain.
func NewRouter(cfg *explorer.Config, servere *server.Env) http.Handler {
	// Temp workaround for easy to access io.Writer.
	defaultLogOutput := log.Default().Writer()

	healthLogOutput := io.Discard
	if !explorer.Production() {
		healthLogOutput = defaultLogOutput
	}
	logHandler := gorillaHandlers.LoggingHandler

	base := alice.New(
		alice.Constructor(middleware.Metrics(cfg)),
		alice.Constructor(middleware.Recovery(cfg)),
	)
	apiChain := base.Append(
		alice.Constructor(middleware.Timeout(explorer.RequestTimeout())),
		alice.Constructor(middleware.Audit(cfg)),
	)
	adminChain := base.Append(
		alice.Constructor(middleware.Authorization(cfg)),
		alice.Constructor(middleware.Expiration(cfg)),
		alice.Constructor(middleware.Audit(cfg)),
	)

	r := mux.NewRouter()
	r.NotFoundHandler = base.Then(handlers.NotFound(cfg))
	r.MethodNotAllowedHandler = base.Then(handlers.MethodNotAllowed(cfg))

	r.Handle("/healthcheck", logHandler(healthLogOutput, base.Then(handlers.Healthcheck(cfg)))).Methods(http.MethodGet)
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics.Handler()).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/trends").Subrouter()
	api.NotFoundHandler = r.NotFoundHandler
	api.MethodNotAllowedHandler = r.MethodNotAllowedHandler

	api.Handle("/health", logHandler(healthLogOutput, base.Then(handlers.Health(cfg)))).Methods(http.MethodGet)
	api.Handle("/search", logHandler(defaultLogOutput, apiChain.Then(handlers.Search(cfg)))).Methods(http.MethodGet)
	api.Handle("/trending", logHandler(defaultLogOutput, apiChain.Then(handlers.Trending(cfg)))).Methods(http.MethodGet)
	api.Handle("/suggestions", logHandler(defaultLogOutput, apiChain.Then(handlers.Suggestions(cfg)))).Methods(http.MethodGet)
	api.Handle("/countries", logHandler(defaultLogOutput, base.Then(handlers.Countries(cfg)))).Methods(http.MethodGet)
	api.Handle("/compare", logHandler(defaultLogOutput, apiChain.Then(handlers.Compare(cfg)))).Methods(http.MethodPost)
	api.Handle("/providers", logHandler(defaultLogOutput, base.Then(handlers.Providers(cfg)))).Methods(http.MethodGet)
	api.Handle("/switch-provider", logHandler(defaultLogOutput, adminChain.Then(handlers.SwitchProvider(cfg)))).Methods(http.MethodPost)
	api.Handle("/audit", logHandler(defaultLogOutput, adminChain.Then(handlers.AuditLog(cfg)))).Methods(http.MethodGet)

	cors := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins(servere.CORSOrigins),
		gorillaHandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", "X-Forwarded-User"}),
	)

	return cors(r)
}
