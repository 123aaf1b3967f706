package dto

// FieldErrorResponse описывает ошибку одного поля.
type FieldErrorResponse struct {
	Message string `json:"message"`
	Path    string `json:"path"`
	Kind    string `json:"kind"`
}

// ErrorResponse - тело ответа с ошибкой.
type ErrorResponse struct {
	Message string                        `json:"message"`
	Errors  map[string]FieldErrorResponse `json:"errors,omitempty"`
}
