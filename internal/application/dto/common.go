package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Page int `query:"page"`
	Size int `query:"size"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
