// Package devserver is a development REST backend implementing the contract
// the admin client consumes. Records live in a jsonstore file.
package devserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/idilsaglam/crudadmin/internal/model"
	"github.com/idilsaglam/crudadmin/internal/store/jsonstore"
)

type Server struct {
	store  *jsonstore.Store
	logger *zap.Logger
	router *gin.Engine
	now    func() time.Time
}

// New wires one route group per kind.
func New(store *jsonstore.Store, logger *zap.Logger, kinds ...model.Kind) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(kinds) == 0 {
		kinds = model.Kinds()
	}
	s := &Server{store: store, logger: logger, now: time.Now}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger), cors.Default())
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	for _, k := range kinds {
		h := &kindHandler{server: s, kind: k}
		g := r.Group(k.Endpoint)
		g.GET("", h.list)
		g.GET("/:id", h.get)
		g.POST("", h.create)
		g.PUT("", h.update)
		g.DELETE("/:id", h.remove)
	}
	s.router = r
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("dev server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		return nil
	}
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("request_id", c.GetHeader("X-Request-Id")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

type kindHandler struct {
	server *Server
	kind   model.Kind
}

func (h *kindHandler) list(c *gin.Context) {
	c.JSON(http.StatusOK, h.server.store.List(h.kind.Name))
}

func (h *kindHandler) get(c *gin.Context) {
	rec, err := h.server.store.Get(h.kind.Name, model.NewID(c.Param("id")))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *kindHandler) create(c *gin.Context) {
	rec, ok := h.bind(c)
	if !ok {
		return
	}
	rec.ID = model.NewID(uuid.NewString())
	rec.CreatedAt = model.TimestampOf(h.server.now())
	if err := h.server.store.Insert(h.kind.Name, rec); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (h *kindHandler) update(c *gin.Context) {
	rec, ok := h.bind(c)
	if !ok {
		return
	}
	if rec.ID.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "missing _id"})
		return
	}
	old, err := h.server.store.Get(h.kind.Name, rec.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	// identifiers and creation time are owned by the backend
	rec.ID = old.ID
	rec.CreatedAt = old.CreatedAt
	if err := h.server.store.Replace(h.kind.Name, rec); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *kindHandler) remove(c *gin.Context) {
	if err := h.server.store.Delete(h.kind.Name, model.NewID(c.Param("id"))); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *kindHandler) bind(c *gin.Context) (model.Record, bool) {
	var rec model.Record
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return model.Record{}, false
	}
	rec.Name = strings.TrimSpace(rec.Name)
	if rec.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "name is required"})
		return model.Record{}, false
	}
	return rec, true
}

func (h *kindHandler) fail(c *gin.Context, err error) {
	if errors.Is(err, jsonstore.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": h.kind.Name + " not found"})
		return
	}
	h.server.logger.Error("store failure", zap.String("kind", h.kind.Name), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
}
