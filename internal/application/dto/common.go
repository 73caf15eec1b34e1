package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DetailResponse cuerpo genérico con un mensaje informativo.
type DetailResponse struct {
	Detail string `json:"detail"`
}
