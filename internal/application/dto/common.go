package dto

// ErrorResponse cuerpo de error HTTP. Para rangos inválidos Param indica el parámetro rechazado.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Param   string `json:"param,omitempty"`
}
