package response

import (
	"encoding/json"
	"net/http"
)

// Envelope matches the {success, message, data} shape the platform API uses,
// so widget callbacks see one consistent format on both hops.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := Envelope{
		Success: true,
		Data:    data,
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func Error(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := Envelope{
		Success: false,
		Message: msg,
	}
	_ = json.NewEncoder(w).Encode(resp)
}
