package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"ledger-core/internal/config"
	"ledger-core/internal/handler"
	"ledger-core/internal/logging"
	"ledger-core/internal/notification"
	"ledger-core/internal/repository"
	"ledger-core/internal/service"
	"ledger-core/internal/statement"
)

// Server wires the in-memory store, services and handlers behind one router.
type Server struct {
	router *mux.Router
	server *http.Server
	logger *slog.Logger
	port   string
}

func NewServer(cfg *config.Config, logger *slog.Logger) *Server {
	store := repository.NewStore(logger)

	notifier := notification.NewLogNotifier(logger)
	audit := notification.NewAuditLog(logger)

	defaults := service.AccountDefaults{
		SavingsAnnualRate: decimal.NewFromFloat(cfg.SavingsAnnualRate),
		CheckingRate:      decimal.NewFromFloat(cfg.CheckingInterestRate),
	}
	if cfg.WithdrawalDailyLimit > 0 {
		limit := decimal.NewFromFloat(cfg.WithdrawalDailyLimit)
		defaults.DailyLimit = &limit
	}
	if cfg.WithdrawalMonthlyLimit > 0 {
		limit := decimal.NewFromFloat(cfg.WithdrawalMonthlyLimit)
		defaults.MonthlyLimit = &limit
	}

	accountService := service.NewAccountService(store, defaults, logger)
	transactionService := service.NewTransactionService(store, notifier, audit, logger)
	transferService := service.NewFundTransferService(store, notifier, audit, logger)
	interestService := service.NewInterestService(store, logger)
	statements := statement.NewGenerator(store.Accounts(), store.Transactions())

	accountHandler := handler.NewAccountHandler(accountService, statements)
	transactionHandler := handler.NewTransactionHandler(transactionService, transferService)
	interestHandler := handler.NewInterestHandler(interestService)

	router := mux.NewRouter()
	router.Use(loggingMiddleware(logger))

	router.HandleFunc("/accounts", accountHandler.CreateAccount).Methods("POST")
	router.HandleFunc("/accounts/{account_id}", accountHandler.GetAccount).Methods("GET")
	router.HandleFunc("/accounts/{account_id}/close", accountHandler.CloseAccount).Methods("POST")
	router.HandleFunc("/accounts/{account_id}/statement", accountHandler.Statement).Methods("GET")

	router.HandleFunc("/accounts/{account_id}/deposit", transactionHandler.Deposit).Methods("POST")
	router.HandleFunc("/accounts/{account_id}/withdraw", transactionHandler.Withdraw).Methods("POST")
	router.HandleFunc("/accounts/{account_id}/transactions", transactionHandler.History).Methods("GET")
	router.HandleFunc("/transfers", transactionHandler.Transfer).Methods("POST")

	router.HandleFunc("/accounts/{account_id}/interest", interestHandler.Apply).Methods("POST")
	router.HandleFunc("/interest/batch", interestHandler.ApplyBatch).Methods("POST")

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}).Methods("GET")

	return &Server{
		router: router,
		logger: logger,
	}
}

// loggingMiddleware adds request logging
func loggingMiddleware(logger *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(ww, r)

			logger.Info("request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.statusCode,
				"duration", time.Since(start),
			)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Start listens on the given port ("0" picks a free one) and serves in the
// background.
func (s *Server) Start(port string) (string, error) {
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return "", err
	}

	addr := listener.Addr().(*net.TCPAddr)
	s.port = strconv.Itoa(addr.Port)

	s.server = &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting server", "port", s.port)

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Error("server failed", "error", err)
		}
	}()

	return s.port, nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("shutting down server")

	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) Port() string {
	return s.port
}

// Router exposes the handler tree for httptest-based tests.
func (s *Server) Router() *mux.Router {
	return s.router
}

// StartServer builds and starts a server from the configuration.
func StartServer(cfg *config.Config) (*Server, string, error) {
	var logger *slog.Logger
	if cfg.Port == "0" {
		// Test environment: keep output quiet.
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	} else {
		logger = logging.Init("ledger-core", cfg.LogLevel, cfg.AppEnv)
	}

	server := NewServer(cfg, logger)

	port, err := server.Start(cfg.Port)
	if err != nil {
		return nil, "", err
	}

	return server, port, nil
}
