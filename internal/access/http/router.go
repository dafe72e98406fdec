package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/counterline/posgate/internal/access/service"
	"github.com/counterline/posgate/internal/access/store"
	"github.com/counterline/posgate/pkg/httpx"
	"github.com/counterline/posgate/pkg/slogx"

	_ "github.com/counterline/posgate/api/access" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     httpx.SessionVerifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	LoginService      *service.LoginService
	ScheduleService   *service.ScheduleService
	SuperTokenService *service.SuperTokenService
	UserService       *service.UserService
	BootstrapService  *service.BootstrapService
}

func NewRouter(
	verifier httpx.SessionVerifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerLogin()
	r.registerSchedule()
	r.registerTokens()
	r.registerUsers()
	r.registerAudit()
	r.registerBootstrap()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
//
//	@title			PosGate Access Control API
//	@version		0.1.0
//	@description	Login access control for point-of-sale terminals: schedule-based
//	@description	login gating, mandatory audited sign-ins, and short-lived
//	@description	single-use super tokens for step-up authorization of sensitive
//	@description	in-store actions.
//
//	@contact.name				Counterline Team
//	@contact.url				https://github.com/counterline/posgate
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerLogin() {
	loginHandler := &LoginHandler{LoginService: r.LoginService}

	// POST /login - strict rate limit by IP + email to slow brute force
	r.Mux.Handle("POST /v1/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	logoutHandler := &LogoutHandler{LoginService: r.LoginService}
	r.Mux.Handle("POST /v1/logout",
		httpx.Chain(logoutHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSchedule() {
	h := &ScheduleHandler{ScheduleService: r.ScheduleService}

	r.Mux.Handle("GET /v1/schedule",
		httpx.Chain(h,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerTokens() {
	mintHandler := &TokenMintHandler{
		SuperTokenService: r.SuperTokenService,
		UserService:       r.UserService,
	}
	redeemHandler := &TokenRedeemHandler{SuperTokenService: r.SuperTokenService}
	historyHandler := &TokenHistoryHandler{SuperTokenService: r.SuperTokenService}

	// POST /tokens/mint - admin only, moderate rate limit by user
	r.Mux.Handle("POST /v1/tokens/mint",
		httpx.Chain(mintHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireRole("admin"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// POST /tokens/redeem - any authenticated user, strict by IP to slow
	// code guessing
	r.Mux.Handle("POST /v1/tokens/redeem",
		httpx.Chain(redeemHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// GET /tokens - admin only
	r.Mux.Handle("GET /v1/tokens",
		httpx.Chain(historyHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireRole("admin"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	r.Mux.Handle("POST /v1/users",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireRole("admin"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("PATCH /v1/users/{id}/status",
		httpx.Chain(http.HandlerFunc(h.HandleStatus),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireRole("admin"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerAudit() {
	h := &SessionLogsHandler{Store: r.store}

	r.Mux.Handle("GET /v1/sessionlogs",
		httpx.Chain(h,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireRole("admin"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerBootstrap() {
	// POST /bootstrap - very strict rate limit by IP (one-time setup)
	h := &BootstrapHandler{BootstrapService: r.BootstrapService}
	r.Mux.Handle("POST /v1/bootstrap",
		httpx.Chain(h,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
