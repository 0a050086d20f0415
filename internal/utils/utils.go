package utils

import (
	"encoding/json"
	"net/http"

	"github.com/campus-community/gateway/internal/models"
)

func WriteJSONResponse(w http.ResponseWriter, status int, success bool, message string, data interface{}, errDetail interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(models.APIResponse{
		Success: success,
		Message: message,
		Data:    data,
		Error:   errDetail,
	})
}
