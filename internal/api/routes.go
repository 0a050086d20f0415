package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campus-community/gateway/internal/backend"
	"github.com/campus-community/gateway/internal/config"
	"github.com/campus-community/gateway/internal/guard"
	"github.com/campus-community/gateway/internal/roles"
	"github.com/campus-community/gateway/internal/session"
)

type API struct {
	cfg      *config.Config
	router   *chi.Mux
	mgr      *session.Manager
	backend  *backend.Client
	pages    *guard.Guard
	admin    *guard.Guard
	validate *validator.Validate
	log      *zap.Logger
}

func NewAPI(cfg *config.Config, mgr *session.Manager, bc *backend.Client, log *zap.Logger) *API {
	a := &API{
		cfg:      cfg,
		router:   chi.NewRouter(),
		mgr:      mgr,
		backend:  bc,
		pages:    guard.New(cfg.ProfilePolicy),
		admin:    guard.NewAdminSection(),
		validate: validator.New(),
		log:      log,
	}
	a.router.Use(middleware.Logger)
	a.router.Use(mgr.Middleware)
	a.routes()
	return a
}

func (a *API) Routes() *chi.Mux {
	return a.router
}

func (a *API) routes() {
	r := a.router

	// entry points, no guard
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/events", http.StatusSeeOther)
	})
	r.Get("/login", a.LoginPage)
	r.Get("/register", a.RegisterPage)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", a.Login)
		r.Post("/register", a.Register)
		r.Post("/verify", a.Verify)
		r.Post("/logout", a.Logout)
	})
	r.Get("/logout", a.Logout) // plain link from the shell
	r.Get("/session", a.CurrentSession)

	// protected pages; unauthorized roles bounce to the site root
	r.Group(func(r chi.Router) {
		r.Use(a.pages.RequireAuth())

		r.Get("/dashboard", a.Dashboard)
		r.Get("/events", a.ListEvents)
		r.Get("/forum", a.ListForumPosts)
		r.Get("/forum/questions/{id}/answers", a.ListAnswers)
		r.Get("/projects", a.ListProjects)
		r.Get("/projects/{id}/collaborators", a.ListCollaborators)
		r.Get("/clubs", a.ListClubs)
		r.Get("/marketplace", a.ListMarketplace)
		r.Get("/lostfound", a.ListLostFound)
		r.Get("/alumni", a.ListMentorships)
		r.Get("/hackathons", a.ListHackathons)
		r.Get("/notices", a.ListNotices)

		// creates any authenticated member can do
		r.Post("/forum/posts", a.CreateForumPost)
		r.Post("/forum/questions/{id}/answers", a.CreateAnswer)
		r.Post("/forum/questions/{id}/upvote", a.UpvoteQuestion)
		r.Post("/forum/answers/{id}/upvote", a.UpvoteAnswer)
		r.Post("/projects", a.CreateProject)
		r.Post("/projects/{id}/collaborators", a.RequestCollaboration)
		r.Post("/alumni/mentorships", a.CreateMentorship)
	})

	// creates the old client only offered to administrative roles,
	// enforced here
	r.Group(func(r chi.Router) {
		r.Use(a.pages.RequireAnyRole(roles.AdminRoles...))

		r.Post("/events", a.CreateEvent)
		r.Post("/hackathons", a.CreateHackathon)
		r.Post("/notices", a.CreateNotice)
		r.Post("/lostfound", a.CreateLostFound)
	})

	// admin section: any denial goes to /login, not the root
	r.Route("/admin", func(r chi.Router) {
		r.Use(a.admin.RequireAnyRole(roles.AdminRoles...))

		r.Get("/", a.AdminDashboard)
		r.Post("/events", a.CreateEvent)
		r.Post("/hackathons", a.CreateHackathon)
		r.Post("/notices", a.CreateNotice)
		r.Post("/lostfound", a.CreateLostFound)
	})

	r.Get("/health", a.Health)
}
