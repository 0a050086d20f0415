package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/campus-community/gateway/internal/backend"
	"github.com/campus-community/gateway/internal/roles"
	"github.com/campus-community/gateway/internal/session"
	"github.com/campus-community/gateway/internal/utils"
)

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a session and navigates to the
// dashboard. A rejection surfaces the backend's message as-is and leaves
// any existing session untouched.
func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if isForm(r) {
		if err := r.ParseForm(); err != nil {
			utils.WriteJSONResponse(w, http.StatusBadRequest, false, "invalid form", nil, err.Error())
			return
		}
		req.Email = r.PostFormValue("email")
		req.Password = r.PostFormValue("password")
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "invalid request", nil, err.Error())
		return
	}

	rec, err := a.mgr.Login(r.Context(), req.Email, req.Password)
	if rec != nil {
		// token was issued; keep the session even if the profile
		// fetch behind it failed
		if c, cerr := a.mgr.Cookie(rec); cerr == nil {
			http.SetCookie(w, c)
		}
	}
	if err != nil {
		writeBackendError(w, err)
		return
	}
	a.log.Info("login", zap.String("email", req.Email))
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Register validates the signup payload and passes it through. The
// session is never mutated here.
func (a *API) Register(w http.ResponseWriter, r *http.Request) {
	var p backend.RegisterPayload
	if isForm(r) {
		if err := r.ParseForm(); err != nil {
			utils.WriteJSONResponse(w, http.StatusBadRequest, false, "invalid form", nil, err.Error())
			return
		}
		p.Name = r.PostFormValue("name")
		p.Email = r.PostFormValue("email")
		p.Password = r.PostFormValue("password")
		p.Role = r.PostFormValue("role")
		p.Branch = r.PostFormValue("branch")
		p.Year, _ = strconv.Atoi(r.PostFormValue("year"))
	} else if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "invalid request", nil, err.Error())
		return
	}
	if err := a.validate.Struct(p); err != nil {
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "invalid registration payload", nil, err.Error())
		return
	}
	if !roles.Known(roles.Role(p.Role)) {
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "unknown role", nil, nil)
		return
	}
	if err := a.mgr.Register(r.Context(), p); err != nil {
		writeBackendError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, true, "registered, check your email for the verification code", nil, nil)
}

// Verify confirms a pending registration with a one-time code.
func (a *API) Verify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if isForm(r) {
		if err := r.ParseForm(); err != nil {
			utils.WriteJSONResponse(w, http.StatusBadRequest, false, "invalid form", nil, err.Error())
			return
		}
		req.Email = r.PostFormValue("email")
		req.Code = r.PostFormValue("code")
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "invalid request", nil, err.Error())
		return
	}
	if err := a.mgr.Verify(r.Context(), req.Email, req.Code); err != nil {
		writeBackendError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "email verified", nil, nil)
}

// Logout clears the persisted session and the cookie, then navigates to
// the login page. Safe to call with no session at all.
func (a *API) Logout(w http.ResponseWriter, r *http.Request) {
	s := session.FromCtx(r.Context())
	if err := a.mgr.Logout(r.Context(), s.SID); err != nil {
		a.log.Warn("logout", zap.Error(err))
	}
	http.SetCookie(w, a.mgr.ClearCookie())
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// CurrentSession tells the shell who is logged in.
func (a *API) CurrentSession(w http.ResponseWriter, r *http.Request) {
	s := session.FromCtx(r.Context())
	data := map[string]interface{}{
		"authenticated": s.Authenticated(),
	}
	if s.User != nil {
		data["user"] = s.User
		data["is_admin"] = roles.IsAdministrative(s.Role())
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "", data, nil)
}

// LoginPage is the unauthenticated entry point guards redirect to. An
// already-authenticated browser is sent on to the dashboard.
func (a *API) LoginPage(w http.ResponseWriter, r *http.Request) {
	s := session.FromCtx(r.Context())
	if s.Authenticated() {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "sign in", map[string]interface{}{
		"login_url":    "/auth/login",
		"register_url": "/register",
	}, nil)
}

func (a *API) RegisterPage(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, true, "create your account", map[string]interface{}{
		"register_url": "/auth/register",
		"verify_url":   "/auth/verify",
		"roles":        append(append([]roles.Role{}, roles.UserRoles...), roles.AdminRoles...),
	}, nil)
}

func isForm(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return strings.HasPrefix(ct, "application/x-www-form-urlencoded") ||
		strings.HasPrefix(ct, "multipart/form-data")
}

// writeBackendError maps a backend failure onto the response. API errors
// keep their status and verbatim detail; transport failures collapse to
// the same show-the-message shape.
func writeBackendError(w http.ResponseWriter, err error) {
	if apiErr, ok := err.(*backend.APIError); ok {
		utils.WriteJSONResponse(w, apiErr.Status, false, apiErr.Detail, nil, apiErr.Detail)
		return
	}
	utils.WriteJSONResponse(w, http.StatusBadGateway, false, err.Error(), nil, err.Error())
}
