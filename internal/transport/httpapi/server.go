package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sandevgo/finadvisor/internal/providers/market"
	"github.com/sandevgo/finadvisor/internal/service/advisor"
	"github.com/sandevgo/finadvisor/pkg/log"
)

type Advisor interface {
	Advise(ctx context.Context, q advisor.Query) (*advisor.Response, error)
}

type QuoteLookup interface {
	Lookup(ctx context.Context, symbol, period string) (*market.Quote, error)
}

// Server exposes the calculators and the advisor over JSON.
type Server struct {
	srv     *http.Server
	advisor Advisor
	quotes  QuoteLookup
}

// DefaultWriteTimeout applies when NewServer gets no write timeout.
const DefaultWriteTimeout = 60 * time.Second

// NewServer builds the API server. quotes may be nil, in which case the quote
// route answers 503. writeTimeout must cover the slowest advisory answer.
func NewServer(addr string, adv Advisor, quotes QuoteLookup, writeTimeout time.Duration) *Server {
	if writeTimeout <= 0 {
		writeTimeout = DefaultWriteTimeout
	}
	s := &Server{
		advisor: adv,
		quotes:  quotes,
	}
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      writeTimeout,
	}
	return s
}

func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.Use(requestLogger)
	router.HandleFunc("/healthz", s.health).Methods(http.MethodGet)

	api := router.PathPrefix("/v1").Subrouter()
	api.HandleFunc("/projections/sip", s.projectSIP).Methods(http.MethodPost)
	api.HandleFunc("/projections/lumpsum", s.projectLumpSum).Methods(http.MethodPost)
	api.HandleFunc("/loans/emi", s.loanEMI).Methods(http.MethodPost)
	api.HandleFunc("/risk/classify", s.classifyRisk).Methods(http.MethodPost)
	api.HandleFunc("/risk/questions", s.riskQuestions).Methods(http.MethodGet)
	api.HandleFunc("/budget", s.planBudget).Methods(http.MethodPost)
	api.HandleFunc("/advice", s.advise).Methods(http.MethodPost)
	api.HandleFunc("/quotes/{symbol}", s.quote).Methods(http.MethodGet)
	return router
}

func (s *Server) Start(ctx context.Context) error {
	s.srv.BaseContext = func(_ net.Listener) context.Context { return ctx }
	log.FromCtx(ctx).Info().Str("addr", s.srv.Addr).Msg("HTTP API listening")
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
