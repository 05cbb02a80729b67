package api

import (
	"sync"

	"go.uber.org/zap"

	"github.com/terraincognita07/cyclia/internal/config"
	"github.com/terraincognita07/cyclia/internal/persistence"
	"github.com/terraincognita07/cyclia/internal/store"
)

// Handler wires the data store, the persistence checkpoint and the
// optional app lock into the HTTP surface. The store expects a single
// logical writer, so mu serializes every request that touches it:
// Fiber runs handlers on concurrent goroutines.
type Handler struct {
	mu           sync.Mutex
	store        *store.DataStore
	port         persistence.Port
	logger       *zap.Logger
	lock         config.Lock
	cookieSecure bool
	lookahead    int
}

func NewHandler(dataStore *store.DataStore, port persistence.Port, cfg *config.Config, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		store:        dataStore,
		port:         port,
		logger:       logger,
		lock:         cfg.Lock,
		cookieSecure: cfg.Server.CookieSecure,
		lookahead:    cfg.Defaults.LookaheadMonths,
	}
}

// checkpoint persists the current snapshot after a successful mutation.
// A failed save is the persistence layer's problem: in-memory state is
// already consistent, so the error is logged and the request still
// succeeds.
func (handler *Handler) checkpoint() {
	if handler.port == nil {
		return
	}
	if err := handler.port.Save(handler.store.Snapshot()); err != nil {
		handler.logger.Error("snapshot checkpoint failed", zap.Error(err))
	}
}
