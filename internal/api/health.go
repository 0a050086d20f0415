package api

import (
	"net/http"
	"time"

	"github.com/campus-community/gateway/internal/utils"
)

func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, true, "ok", map[string]interface{}{
		"backend": a.cfg.BackendURL,
		"time":    time.Now(),
	}, nil)
}
