package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/supportdesk/aisha/config"
	"github.com/supportdesk/aisha/internal/chat"
	"github.com/supportdesk/aisha/internal/store"
	"github.com/supportdesk/aisha/internal/tickets"
	"github.com/supportdesk/aisha/provider"
	"github.com/supportdesk/aisha/session/inmemory"
	"github.com/supportdesk/aisha/tools/embedding"
)

// Run wires the whole backend and serves HTTP until the listener fails.
func Run(cfg *config.Config) error {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	// Unified HTTP error handler with structured JSON and logging
	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.String(200, "ok") })
	// fixed short string for external scheduler pings
	e.GET("/cron-job", func(c echo.Context) error { return c.String(200, "CJ") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	ctx := context.Background()

	st, err := store.NewWithDSN(ctx, cfg.Storage.Postgres.DSN())
	if err != nil {
		return err
	}

	llm, err := provider.NewProvider(cfg.LLM)
	if err != nil {
		return err
	}
	embed := embedding.NewEmbedding(llm, cfg.Memory.EmbeddingDimensions)

	sessions := inmemory.NewStore(cfg.Memory.SessionTTL, cfg.Memory.MaxSessions)

	var claims tickets.Claimer
	if cfg.Storage.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:        fmt.Sprintf("%s:%s", cfg.Storage.Redis.Host, cfg.Storage.Redis.Port),
			Password:    cfg.Storage.Redis.Password,
			DB:          cfg.Storage.Redis.DB,
			DialTimeout: cfg.Storage.Redis.Timeout,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis connection failed (%s:%s): %w", cfg.Storage.Redis.Host, cfg.Storage.Redis.Port, err)
		}
		claims = &tickets.RedisClaimer{Client: rdb, TTL: cfg.Memory.TicketClaimTTL}
	}

	gate := &tickets.Gate{
		Store:  st,
		Claims: claims,
		Logger: log.New(log.Writer(), "[TICKET] ", log.LstdFlags),
	}

	mgr := &chat.Manager{
		Sessions:        sessions,
		Records:         st,
		Embed:           embed,
		LLM:             llm,
		Gate:            gate,
		TopK:            cfg.Memory.SearchTopK,
		DefaultLanguage: cfg.General.DefaultLanguage,
		Logger:          log.New(log.Writer(), "[CHAT] ", log.LstdFlags),
	}

	ch := &ChatHandler{Chat: mgr}
	ch.Register(e)

	addr := cfg.General.Listen
	if addr == "" {
		addr = ":8001"
	}
	if addr[0] != ':' {
		addr = ":" + addr
	}
	log.Printf("listening on %s", addr)
	return e.Start(addr)
}
