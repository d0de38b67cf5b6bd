// Package api serves the server inventory over HTTP, with pagination links on
// every listing.
package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jdholdren/pagelinks/internal/inventory"
	"github.com/jdholdren/pagelinks/internal/metrics"
	"github.com/jdholdren/pagelinks/internal/serverutil"
)

type (
	// Server answers inventory requests.
	Server struct {
		*http.Server

		inventory *inventory.Service

		baseURL         string // Scheme and host links are built against
		defaultPageSize int
		maxPageSize     int
	}

	ServerConfig struct {
		Port            int
		BaseURL         string
		CorsOrigin      string
		DefaultPageSize int
		MaxPageSize     int
	}
)

func NewServer(config ServerConfig, inv *inventory.Service) *Server {
	r := serverutil.ErrRouter{Router: mux.NewRouter()}

	srvr := Server{
		inventory:       inv,
		baseURL:         strings.TrimSuffix(config.BaseURL, "/"),
		defaultPageSize: config.DefaultPageSize,
		maxPageSize:     config.MaxPageSize,
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%d", config.Port),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			Handler: handlers.CORS(
				handlers.AllowedOrigins([]string{config.CorsOrigin}),
				handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
				handlers.AllowedHeaders([]string{"content-type"}),
				handlers.ExposedHeaders([]string{"Link", serverutil.RequestIDHeader}),
			)(r),
		},
	}

	r.Use(serverutil.AccessLogMiddleware) // Log everything
	r.Use(metrics.Middleware)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFuncE("/v1/servers", srvr.getServers).Methods(http.MethodGet)
	r.HandleFuncE("/v1/servers", srvr.postServers).Methods(http.MethodPost)
	r.HandleFuncE("/v1/servers/{serverID}", srvr.getServer).Methods(http.MethodGet)

	slog.Debug("configured api server", "port", config.Port, "base_url", srvr.baseURL)

	return &srvr
}
