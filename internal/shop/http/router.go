package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/merchware/shopd/internal/shop/service"
	"github.com/merchware/shopd/internal/shop/store"
	"github.com/merchware/shopd/pkg/httpx"
	"github.com/merchware/shopd/pkg/jwtx"
	"github.com/merchware/shopd/pkg/slogx"

	_ "github.com/merchware/shopd/api" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	codec        *jwtx.HS256Codec
	guard        *service.Guard
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	AuthService    *service.AuthService
	UserService    *service.UserService
	ProductService *service.ProductService
	OrderService   *service.OrderService
	StatusService  *service.StatusService
}

func NewRouter(
	codec *jwtx.HS256Codec,
	guard *service.Guard,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		codec:        codec,
		guard:        guard,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerProducts()
	r.registerOrders()
	r.registerStatuses()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			shopd API
//	@version		0.1.0
//	@description	E-commerce backend: accounts, catalog, orders and order statuses
//	@description	behind JWT bearer authentication. Tokens are HS256-signed and
//	@description	short-lived; roles are re-read from the store on every request.
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &LoginHandler{AuthService: r.AuthService}

	// Strict limit keyed by IP + submitted username: one noisy IP cannot
	// lock everyone out, one username cannot be brute forced from many IPs.
	r.Mux.Handle("POST /api/v1/login",
		httpx.Chain(h,
			httpx.RateLimitByIPAndFormField(httpx.StrictLimit, "username"),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	// Public signup, strict limit by IP.
	r.Mux.Handle("POST /api/v1/users",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("GET /api/v1/users",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			AuthnMiddleware(r.guard),
			RequireAdmin(r.guard),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("GET /api/v1/users/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			AuthnMiddleware(r.guard),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("PUT /api/v1/users/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			AuthnMiddleware(r.guard),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("DELETE /api/v1/users/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			AuthnMiddleware(r.guard),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("PUT /api/v1/users/change_role",
		httpx.Chain(http.HandlerFunc(h.HandleChangeRole),
			AuthnMiddleware(r.guard),
			RequireAdmin(r.guard),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerProducts() {
	h := &ProductsHandler{ProductService: r.ProductService}

	// Catalog reads are public.
	r.Mux.Handle("GET /api/v1/products",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /api/v1/products/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	// Catalog writes are admin.
	r.Mux.Handle("POST /api/v1/products",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			AuthnMiddleware(r.guard),
			RequireAdmin(r.guard),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("PUT /api/v1/products/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			AuthnMiddleware(r.guard),
			RequireAdmin(r.guard),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /api/v1/products/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			AuthnMiddleware(r.guard),
			RequireAdmin(r.guard),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerOrders() {
	h := &OrdersHandler{OrderService: r.OrderService}

	r.Mux.Handle("POST /api/v1/orders",
		httpx.Chain(http.HandlerFunc(h.HandlePlace),
			AuthnMiddleware(r.guard),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /api/v1/orders",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			AuthnMiddleware(r.guard),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /api/v1/orders/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			AuthnMiddleware(r.guard),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("PUT /api/v1/orders/{id}/status",
		httpx.Chain(http.HandlerFunc(h.HandleSetStatus),
			AuthnMiddleware(r.guard),
			RequireAdmin(r.guard),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /api/v1/orders/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleCancel),
			AuthnMiddleware(r.guard),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerStatuses() {
	h := &StatusesHandler{StatusService: r.StatusService}

	admin := func(next http.HandlerFunc) http.Handler {
		return httpx.Chain(next,
			AuthnMiddleware(r.guard),
			RequireAdmin(r.guard),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("POST /api/v1/statuses", admin(h.HandleCreate))
	r.Mux.Handle("GET /api/v1/statuses", admin(h.HandleList))
	r.Mux.Handle("GET /api/v1/statuses/{id}", admin(h.HandleGet))
	r.Mux.Handle("PUT /api/v1/statuses/{id}", admin(h.HandleUpdate))
	r.Mux.Handle("DELETE /api/v1/statuses/{id}", admin(h.HandleDelete))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.codec),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}
