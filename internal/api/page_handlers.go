package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campus-community/gateway/internal/roles"
	"github.com/campus-community/gateway/internal/session"
	"github.com/campus-community/gateway/internal/utils"
)

// The page handlers are all the same screen: load a list, or submit a
// form. Each one relays the backend call with the session's token.

type listFn func(ctx context.Context, token string) (json.RawMessage, error)
type createFn func(ctx context.Context, token string, form json.RawMessage) error

func (a *API) serveList(w http.ResponseWriter, r *http.Request, fn listFn) {
	s := session.FromCtx(r.Context())
	items, err := fn(r.Context(), s.Token)
	if err != nil {
		writeBackendError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "", items, nil)
}

func (a *API) serveCreate(w http.ResponseWriter, r *http.Request, fn createFn, created string) {
	s := session.FromCtx(r.Context())
	form, err := io.ReadAll(r.Body)
	if err != nil {
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "invalid request", nil, err.Error())
		return
	}
	if len(form) == 0 {
		form = json.RawMessage(`{}`)
	}
	if err := fn(r.Context(), s.Token, form); err != nil {
		writeBackendError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, true, created, nil, nil)
}

func (a *API) Dashboard(w http.ResponseWriter, r *http.Request) {
	s := session.FromCtx(r.Context())
	data := map[string]interface{}{"user": s.User}
	if s.User != nil {
		data["is_admin"] = roles.IsAdministrative(s.Role())
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "", data, nil)
}

func (a *API) ListEvents(w http.ResponseWriter, r *http.Request) {
	a.serveList(w, r, a.backend.ListEvents)
}

func (a *API) ListForumPosts(w http.ResponseWriter, r *http.Request) {
	a.serveList(w, r, a.backend.ListForumPosts)
}

func (a *API) CreateForumPost(w http.ResponseWriter, r *http.Request) {
	a.serveCreate(w, r, a.backend.CreateForumPost, "question posted")
}

func (a *API) ListAnswers(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a.serveList(w, r, func(ctx context.Context, token string) (json.RawMessage, error) {
		return a.backend.ListAnswers(ctx, token, id)
	})
}

func (a *API) CreateAnswer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a.serveCreate(w, r, func(ctx context.Context, token string, form json.RawMessage) error {
		return a.backend.CreateAnswer(ctx, token, id, form)
	}, "answer posted")
}

func (a *API) UpvoteQuestion(w http.ResponseWriter, r *http.Request) {
	s := session.FromCtx(r.Context())
	if err := a.backend.UpvoteQuestion(r.Context(), s.Token, chi.URLParam(r, "id")); err != nil {
		writeBackendError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "upvoted", nil, nil)
}

func (a *API) UpvoteAnswer(w http.ResponseWriter, r *http.Request) {
	s := session.FromCtx(r.Context())
	if err := a.backend.UpvoteAnswer(r.Context(), s.Token, chi.URLParam(r, "id")); err != nil {
		writeBackendError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "upvoted", nil, nil)
}

func (a *API) ListProjects(w http.ResponseWriter, r *http.Request) {
	a.serveList(w, r, a.backend.ListProjects)
}

func (a *API) CreateProject(w http.ResponseWriter, r *http.Request) {
	a.serveCreate(w, r, a.backend.CreateProject, "project created")
}

func (a *API) ListCollaborators(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a.serveList(w, r, func(ctx context.Context, token string) (json.RawMessage, error) {
		return a.backend.ListCollaborators(ctx, token, id)
	})
}

func (a *API) RequestCollaboration(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a.serveCreate(w, r, func(ctx context.Context, token string, form json.RawMessage) error {
		return a.backend.RequestCollaboration(ctx, token, id, form)
	}, "collaboration requested")
}

func (a *API) ListClubs(w http.ResponseWriter, r *http.Request) {
	a.serveList(w, r, a.backend.ListClubs)
}

func (a *API) ListMarketplace(w http.ResponseWriter, r *http.Request) {
	a.serveList(w, r, a.backend.ListMarketplace)
}

func (a *API) ListHackathons(w http.ResponseWriter, r *http.Request) {
	a.serveList(w, r, a.backend.ListHackathons)
}

func (a *API) CreateHackathon(w http.ResponseWriter, r *http.Request) {
	a.serveCreate(w, r, a.backend.CreateHackathon, "hackathon created")
}

func (a *API) ListNotices(w http.ResponseWriter, r *http.Request) {
	a.serveList(w, r, a.backend.ListNotices)
}

func (a *API) CreateNotice(w http.ResponseWriter, r *http.Request) {
	a.serveCreate(w, r, a.backend.CreateNotice, "notice posted")
}

func (a *API) ListLostFound(w http.ResponseWriter, r *http.Request) {
	a.serveList(w, r, a.backend.ListLostFound)
}

func (a *API) CreateLostFound(w http.ResponseWriter, r *http.Request) {
	a.serveCreate(w, r, a.backend.CreateLostFound, "item posted")
}

func (a *API) ListMentorships(w http.ResponseWriter, r *http.Request) {
	a.serveList(w, r, a.backend.ListMentorships)
}

func (a *API) CreateMentorship(w http.ResponseWriter, r *http.Request) {
	a.serveCreate(w, r, a.backend.CreateMentorship, "mentorship posted")
}

func (a *API) CreateEvent(w http.ResponseWriter, r *http.Request) {
	a.serveCreate(w, r, a.backend.CreateEvent, "event created")
}
