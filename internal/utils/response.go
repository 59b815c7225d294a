package utils

import (
	"encoding/json"
	"net/http"
)

// Response is the standard success envelope. AccessToken stays null on
// every route except login.
type Response struct {
	Message     string      `json:"message"`
	Data        interface{} `json:"data"`
	Status      bool        `json:"status"`
	AccessToken *string     `json:"access_token"`
}

// ListResponse is the success envelope for paginated list endpoints.
type ListResponse struct {
	Message     string      `json:"message"`
	Data        interface{} `json:"data"`
	Status      bool        `json:"status"`
	AccessToken *string     `json:"access_token"`
	Page        int         `json:"page"`
	Limit       int         `json:"limit"`
	Total       int64       `json:"total"`
	TotalPages  int64       `json:"totalPages"`
}

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Message string `json:"message"`
	Status  bool   `json:"status"`
}

func WriteJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

// WriteSuccess writes the standard envelope with a null access token.
func WriteSuccess(w http.ResponseWriter, code int, message string, data interface{}) {
	WriteJSON(w, code, Response{Message: message, Data: data, Status: true})
}

// WriteToken writes the login envelope carrying the issued access token.
func WriteToken(w http.ResponseWriter, message string, token string) {
	WriteJSON(w, http.StatusOK, Response{Message: message, Status: true, AccessToken: &token})
}

// WriteList writes one page of results with the pagination counters.
func WriteList(w http.ResponseWriter, data interface{}, page Page, total int64) {
	WriteJSON(w, http.StatusOK, ListResponse{
		Data:       data,
		Status:     true,
		Page:       page.Number,
		Limit:      page.Limit,
		Total:      total,
		TotalPages: TotalPages(total, page.Limit),
	})
}

func WriteError(w http.ResponseWriter, code int, message string) {
	WriteJSON(w, code, ErrorResponse{Message: message, Status: false})
}
