package server

import "github.com/labstack/echo/v4"

// APIResponse is the JSON envelope of every /api response.
type APIResponse struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ValidationError represents validation error detail.
type ValidationError struct {
	Code    string                 `json:"code,omitempty"`
	Field   string                 `json:"field,omitempty"`
	Message string                 `json:"message,omitempty"`
	Params  map[string]interface{} `json:"params,omitempty"`
}

// Handler registers a group of routes.
type Handler interface {
	RegisterRoutes(e *echo.Echo)
}
