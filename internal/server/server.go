package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/campus-community/gateway/internal/api"
	"github.com/campus-community/gateway/internal/config"
	"github.com/campus-community/gateway/internal/metrics"
	"github.com/campus-community/gateway/internal/utils"
)

type Server struct {
	cfg *config.Config
	api *api.API
}

func NewServer(cfg *config.Config, a *api.API) *Server {
	return &Server{cfg: cfg, api: a}
}

func (s *Server) NewHTTPServer() *http.Server {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(metrics.Middleware)
	r.Use(loginLimiter(s.cfg.LoginRate, s.cfg.LoginBurst))

	r.Handle("/metrics", metrics.Handler())
	r.Mount("/", s.api.Routes())

	return &http.Server{
		Addr:         s.cfg.BindAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
}

// maxLoginLimiters caps how many per-address limiters are kept; past
// that the whole map is reset rather than tracking recency per entry.
const maxLoginLimiters = 10000

type ipLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

func newIPLimiter(r float64, burst int) *ipLimiter {
	return &ipLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(r),
		burst:    burst,
	}
}

func (l *ipLimiter) allow(addr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	lim, ok := l.limiters[addr]
	if !ok {
		if len(l.limiters) >= maxLoginLimiters {
			l.limiters = make(map[string]*rate.Limiter)
		}
		lim = rate.NewLimiter(l.rate, l.burst)
		l.limiters[addr] = lim
	}
	return lim.Allow()
}

// loginLimiter rate-limits credential attempts per remote address. Only
// /auth/login pays the cost; everything else passes through.
func loginLimiter(r float64, burst int) func(http.Handler) http.Handler {
	l := newIPLimiter(r, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if req.Method == http.MethodPost && req.URL.Path == "/auth/login" {
				if !l.allow(req.RemoteAddr) {
					utils.WriteJSONResponse(w, http.StatusTooManyRequests, false, "too many login attempts", nil, nil)
					return
				}
			}
			next.ServeHTTP(w, req)
		})
	}
}
