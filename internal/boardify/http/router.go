package http

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/cors"

	"github.com/aussiebroadwan/boardify/internal/boardify/service"
	"github.com/aussiebroadwan/boardify/internal/boardify/store"
	"github.com/aussiebroadwan/boardify/pkg/httpx"
	"github.com/aussiebroadwan/boardify/pkg/slogx"

	_ "github.com/aussiebroadwan/boardify/api/boardify" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	// SecureCookies marks the session cookie Secure (production only).
	SecureCookies bool
	// CORSOrigins lists allowed browser origins; "*" allows any. Empty
	// disables CORS handling.
	CORSOrigins []string

	AccountService  *service.AccountService
	SessionService  *service.SessionService
	BoardService    *service.BoardService
	CollabService   *service.CollabService
	InviteService   *service.InviteService
	TaskTypeService *service.TaskTypeService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	return &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}
}

// corsOptions allows the session cookie only for listed origins. A "*"
// entry opens reads to any origin but never with credentials.
func corsOptions(origins []string) cors.Options {
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Retry-After", "X-Request-ID"},
		AllowCredentials: !slices.Contains(origins, "*"),
		MaxAge:           300,
	}
}

// ApplyRoutes registers every route. Call it after the services are wired.
func (r *Router) ApplyRoutes() {
	// CORS must run before anything can reject a preflight.
	if len(r.CORSOrigins) > 0 {
		r.middlewares = append(r.middlewares, cors.Handler(corsOptions(r.CORSOrigins)))
	}
	r.middlewares = append(r.middlewares,
		httpx.SecurityHeaders,
		slogx.HTTPMiddleware(r.logger),
	)

	r.registerAuth()
	r.registerBoards()
	r.registerCollab()
	r.registerTaskTypes()
	r.registerSystem()

	r.Mux.Handle("GET /swagger/",
		httpx.Chain(httpSwagger.Handler(),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Boardify API
//	@version		0.1.0
//	@description	Kanban boards with personal and collaborative workspaces.
//	@description
//	@description				Authenticate with POST /api/auth/signup or /api/auth/login; the session travels in the boardify_session cookie.
//
//	@contact.name				AussieBroadWAN Team
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	SessionCookie
//	@in							cookie
//	@name						boardify_session
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) authn() httpx.Middleware {
	return httpx.AuthnMiddleware(sessionResolver{sessions: r.SessionService})
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		AccountService: r.AccountService,
		SecureCookies:  r.SecureCookies,
	}

	// Credential endpoints - strict limit by IP + email to slow brute force
	r.Mux.Handle("POST /api/auth/signup",
		httpx.Chain(http.HandlerFunc(h.HandleSignup),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
		),
	)
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
		),
	)

	// Logout works with an expired or missing session so the cookie can
	// always be cleared.
	r.Mux.Handle("POST /api/auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.OptionalAuthnMiddleware(sessionResolver{sessions: r.SessionService}),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /api/auth/me",
		httpx.Chain(http.HandlerFunc(h.HandleMe),
			r.authn(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerBoards() {
	h := &BoardsHandler{BoardService: r.BoardService}

	secured := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			r.authn(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		)
	}

	r.Mux.Handle("GET /api/boards", secured(h.HandleList))
	r.Mux.Handle("POST /api/boards", secured(h.HandleCreate))
	r.Mux.Handle("GET /api/boards/{id}", secured(h.HandleGet))
	r.Mux.Handle("PUT /api/boards/{id}", secured(h.HandleUpdate))
	r.Mux.Handle("DELETE /api/boards/{id}", secured(h.HandleDelete))
	r.Mux.Handle("PUT /api/boards/{id}/tasks/{taskId}/subtasks", secured(h.HandleSubtasks))
	r.Mux.Handle("GET /api/boards/{id}/stats", secured(h.HandleStats))
}

func (r *Router) registerCollab() {
	h := &CollabHandler{CollabService: r.CollabService}
	inv := &InviteHandler{InviteService: r.InviteService}

	secured := func(fn http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
		return httpx.Chain(fn,
			r.authn(),
			httpx.RateLimitByUser(limit),
		)
	}

	r.Mux.Handle("GET /api/collab-boards", secured(h.HandleList, httpx.LenientLimit))
	r.Mux.Handle("POST /api/collab-boards", secured(h.HandleCreate, httpx.LenientLimit))
	r.Mux.Handle("GET /api/collab-boards/{id}", secured(h.HandleGet, httpx.LenientLimit))
	r.Mux.Handle("PUT /api/collab-boards/{id}", secured(h.HandleUpdate, httpx.LenientLimit))
	r.Mux.Handle("DELETE /api/collab-boards/{id}", secured(h.HandleDelete, httpx.ModerateLimit))
	r.Mux.Handle("PUT /api/collab-boards/{id}/tasks/{taskId}/subtasks", secured(h.HandleSubtasks, httpx.LenientLimit))
	r.Mux.Handle("GET /api/collab-boards/{id}/stats", secured(h.HandleStats, httpx.LenientLimit))
	r.Mux.Handle("GET /api/collab-boards/{id}/members", secured(h.HandleMembers, httpx.LenientLimit))

	// Invites mint and redeem tokens - moderate limit by user
	r.Mux.Handle("POST /api/collab-boards/{id}/invite", secured(inv.HandleCreate, httpx.ModerateLimit))
	r.Mux.Handle("GET /api/collab-boards/{id}/invites", secured(inv.HandleList, httpx.ModerateLimit))
	r.Mux.Handle("POST /api/collab-invites/accept", secured(inv.HandleAccept, httpx.ModerateLimit))
}

func (r *Router) registerTaskTypes() {
	h := &TaskTypesHandler{TaskTypeService: r.TaskTypeService}

	r.Mux.Handle("GET /api/task-types",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			r.authn(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /api/task-types",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - public limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}
