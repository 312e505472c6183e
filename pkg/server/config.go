package server

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/systra-connect/portal/pkg/navigation"
)

// Config holds HTTP server settings.
type Config struct {
	// Address is the host:port to listen on.
	// Default: "localhost:8080".
	Address string

	// ReadHeaderTimeout bounds reading request headers.
	// Default: 10 seconds.
	ReadHeaderTimeout time.Duration

	// IdleTimeout bounds keep-alive connections.
	// Default: 120 seconds.
	IdleTimeout time.Duration

	// ShutdownTimeout is the graceful shutdown window.
	// Default: 10 seconds.
	ShutdownTimeout time.Duration

	// ReadBufferSize and WriteBufferSize size the WebSocket I/O buffers.
	// Default: 4096 each.
	ReadBufferSize  int
	WriteBufferSize int

	// MaxMessageSize bounds an incoming navigation message.
	// Default: 4096 bytes.
	MaxMessageSize int64

	// MaxHistory bounds each navigation session's history.
	// Default: navigation.DefaultMaxHistory.
	MaxHistory int

	// PingInterval is the WebSocket heartbeat interval.
	// Default: 30 seconds.
	PingInterval time.Duration

	// AllowedOrigins are extra origins accepted for navigation sessions
	// besides the request's own host.
	AllowedOrigins []string

	// CheckOrigin overrides the WebSocket origin check entirely.
	CheckOrigin func(r *http.Request) bool

	// AppName is shown in page titles.
	// Default: "Systra Connect".
	AppName string

	// Logger is the structured logger.
	// Default: slog.Default().With("component", "server").
	Logger *slog.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Address:           "localhost:8080",
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		ShutdownTimeout:   10 * time.Second,
		ReadBufferSize:    4096,
		WriteBufferSize:   4096,
		MaxMessageSize:    4096,
		MaxHistory:        navigation.DefaultMaxHistory,
		PingInterval:      30 * time.Second,
		AppName:           "Systra Connect",
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c *Config) withDefaults() *Config {
	out := *c
	def := DefaultConfig()
	if out.Address == "" {
		out.Address = def.Address
	}
	if out.ReadHeaderTimeout <= 0 {
		out.ReadHeaderTimeout = def.ReadHeaderTimeout
	}
	if out.IdleTimeout <= 0 {
		out.IdleTimeout = def.IdleTimeout
	}
	if out.ShutdownTimeout <= 0 {
		out.ShutdownTimeout = def.ShutdownTimeout
	}
	if out.ReadBufferSize <= 0 {
		out.ReadBufferSize = def.ReadBufferSize
	}
	if out.WriteBufferSize <= 0 {
		out.WriteBufferSize = def.WriteBufferSize
	}
	if out.MaxMessageSize <= 0 {
		out.MaxMessageSize = def.MaxMessageSize
	}
	if out.MaxHistory <= 0 {
		out.MaxHistory = def.MaxHistory
	}
	if out.PingInterval <= 0 {
		out.PingInterval = def.PingInterval
	}
	if out.AppName == "" {
		out.AppName = def.AppName
	}
	if out.Logger == nil {
		out.Logger = slog.Default().With("component", "server")
	}
	if out.CheckOrigin == nil {
		out.CheckOrigin = OriginCheck(out.AllowedOrigins)
	}
	return &out
}

// SameOriginCheck accepts requests without an Origin header and requests
// whose Origin host equals the request host.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

// OriginCheck returns a check that accepts same-origin requests plus any
// origin in allowed. Entries are compared case-insensitively; "*" allows all.
func OriginCheck(allowed []string) func(r *http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		set[strings.ToLower(strings.TrimSuffix(o, "/"))] = true
	}
	return func(r *http.Request) bool {
		if SameOriginCheck(r) || set["*"] {
			return true
		}
		return set[strings.ToLower(r.Header.Get("Origin"))]
	}
}
