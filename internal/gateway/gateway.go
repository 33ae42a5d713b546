// Package gateway fronts the platform: it reverse-proxies API traffic to
// the owning service and aggregates their health checks.
package gateway

import (
	"context"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"sync"
	"time"

	"hotelreserve/internal/config"
	"hotelreserve/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const healthTimeout = 2 * time.Second

// route maps one path prefix to the service that owns it.
type route struct {
	prefix string
	target string
}

type Gateway struct {
	routes   []route
	proxies  map[string]*httputil.ReverseProxy
	services map[string]string
	client   *http.Client
	log      *zap.Logger
}

func New(cfg *config.Config, log *zap.Logger) (*Gateway, error) {
	g := &Gateway{
		proxies: make(map[string]*httputil.ReverseProxy),
		services: map[string]string{
			"auth":         cfg.AuthURL,
			"booking":      cfg.BookingURL,
			"inventory":    cfg.InventoryURL,
			"payment":      cfg.PaymentURL,
			"notification": cfg.NotificationURL,
			"toolbox":      cfg.ToolboxURL,
		},
		client: &http.Client{Timeout: healthTimeout},
		log:    log,
	}

	// longest prefix first so /api/v1/auth wins over /api/v1
	g.routes = []route{
		{"/api/v1/auth", cfg.AuthURL},
		{"/api/v1/users", cfg.AuthURL},
		{"/api/v1/reservations", cfg.BookingURL},
		{"/api/v1/hotels", cfg.InventoryURL},
		{"/api/v1/rooms", cfg.InventoryURL},
		{"/api/v1/payments", cfg.PaymentURL},
		{"/api/v1/notifications", cfg.NotificationURL},
		{"/ws/notifications", cfg.NotificationURL},
		{"/api/v1/toolbox", cfg.ToolboxURL},
	}

	for _, r := range g.routes {
		if _, ok := g.proxies[r.target]; ok {
			continue
		}
		u, err := url.Parse(r.target)
		if err != nil {
			return nil, err
		}
		proxy := httputil.NewSingleHostReverseProxy(u)
		proxy.ErrorHandler = g.proxyError
		g.proxies[r.target] = proxy
	}

	return g, nil
}

func (g *Gateway) proxyError(w http.ResponseWriter, r *http.Request, err error) {
	g.log.Warn("upstream unreachable",
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadGateway)
	_, _ = w.Write([]byte(`{"success":false,"error":{"code":"UPSTREAM_UNAVAILABLE","message":"Service is unavailable"}}`))
}

// Proxy forwards the request to the service owning its path prefix.
func (g *Gateway) Proxy(c *gin.Context) {
	path := c.Request.URL.Path
	for _, r := range g.routes {
		if strings.HasPrefix(path, r.prefix) {
			g.proxies[r.target].ServeHTTP(c.Writer, c.Request)
			return
		}
	}
	response.Error(c, http.StatusNotFound, "NOT_FOUND", "No route for this path")
}

// Health probes every service concurrently and reports per-service status.
func (g *Gateway) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	statuses := make(map[string]string, len(g.services))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for name, base := range g.services {
		wg.Add(1)
		go func(name, base string) {
			defer wg.Done()
			status := "down"
			if g.probe(ctx, base) {
				status = "up"
			}
			mu.Lock()
			statuses[name] = status
			mu.Unlock()
		}(name, base)
	}
	wg.Wait()

	code := http.StatusOK
	for _, status := range statuses {
		if status != "up" {
			code = http.StatusServiceUnavailable
			break
		}
	}

	response.Success(c, code, gin.H{"gateway": "up", "services": statuses})
}

func (g *Gateway) probe(ctx context.Context, base string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Router builds the gin engine: /health locally, everything else proxied.
func (g *Gateway) Router(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.GET("/health", g.Health)
	r.NoRoute(g.Proxy)
	return r
}
