package api

import (
	"net/http"

	"github.com/campus-community/gateway/internal/session"
	"github.com/campus-community/gateway/internal/utils"
)

type adminCard struct {
	Title string `json:"title"`
	Desc  string `json:"desc"`
	Link  string `json:"link"`
}

// AdminDashboard lists what the admin section can do. The guard in front
// of it already rejected anyone who is not administrative.
func (a *API) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	s := session.FromCtx(r.Context())
	cards := []adminCard{
		{Title: "Create Event", Desc: "Add and manage events", Link: "/admin/events"},
		{Title: "Create Hackathon", Desc: "Launch new hackathons", Link: "/admin/hackathons"},
		{Title: "Create Notice", Desc: "Post important notices", Link: "/admin/notices"},
		{Title: "Create Lost & Found", Desc: "Add lost/found items", Link: "/admin/lostfound"},
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "", map[string]interface{}{
		"user":  s.User,
		"cards": cards,
	}, nil)
}
