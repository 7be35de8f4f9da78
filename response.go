package railbook

import (
	"encoding/json"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	b, _ := json.Marshal(v)
	_, _ = w.Write(b)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	type errBody struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	var e errBody
	e.Error.Message = msg
	writeJSON(w, status, e)
}
