// Package server exposes the ledger over a JSON REST API.
package server

import (
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/sahajm/finledger/internal/events"
	"github.com/sahajm/finledger/internal/store"
	"github.com/sahajm/finledger/internal/suggest"
)

type Server struct {
	store      *store.Store
	classifier *suggest.Classifier
	publisher  events.Publisher
	topic      string
	router     chi.Router
	addr       string
	log        *zap.Logger
}

// Options carries the optional collaborators. Zero values disable them.
type Options struct {
	Publisher events.Publisher
	Topic     string
	Logger    *zap.Logger
}

func New(st *store.Store, addr string, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Publisher == nil {
		opts.Publisher = events.Nop{}
	}
	if opts.Topic == "" {
		opts.Topic = events.TopicTransactionPosted
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	s := &Server{
		store:      st,
		classifier: suggest.New(),
		publisher:  opts.Publisher,
		topic:      opts.Topic,
		router:     r,
		addr:       addr,
		log:        opts.Logger,
	}
	r.Use(s.requestLogger)

	r.Route("/api/v1", func(r chi.Router) {
		// Accounts
		r.Post("/accounts", s.createAccount)
		r.Get("/accounts", s.listAccounts)
		r.Get("/accounts/{id}", s.getAccount)
		r.Get("/accounts/{id}/balance", s.getAccountBalance)
		r.Get("/accounts/{id}/entries", s.listAccountEntries)
		r.Patch("/accounts/{id}", s.renameAccount)
		r.Delete("/accounts/{id}", s.deleteAccount)

		// Transactions
		r.Post("/transactions", s.createTransaction)
		r.Post("/transactions/validate", s.validateTransaction)
		r.Get("/transactions", s.listTransactions)
		r.Get("/transactions/{id}", s.getTransaction)

		// Reports
		r.Get("/reports/net-worth", s.netWorth)
		r.Get("/reports/net-worth/timeline", s.netWorthTimeline)
		r.Get("/reports/cashflow", s.cashFlow)
		r.Get("/reports/income-expense", s.incomeExpense)
		r.Get("/reports/loans", s.outstandingLoans)

		// Classification and form metadata
		r.Post("/suggest", s.suggestNature)
		r.Get("/meta/account-types", s.listAccountTypes)
		r.Get("/meta/natures", s.listNatures)
		r.Get("/meta/hints", s.formHints)
		r.Get("/meta/currencies", s.listCurrencies)
	})

	return s
}

func (s *Server) ListenAndServe() error {
	s.log.Info("server listening", zap.String("addr", s.addr))
	return http.ListenAndServe(s.addr, s.router)
}

func (s *Server) Serve(ln net.Listener) error {
	s.log.Info("server listening", zap.String("addr", ln.Addr().String()))
	return http.Serve(ln, s.router)
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("took", time.Since(start)),
		)
	})
}
