package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrUnknownSede     = errors.New("sede desconocida")
	ErrInvalidRange    = errors.New("rango de análisis inválido")
	ErrInvalidFacts    = errors.New("fila de datos sin identificador de producto")
	ErrDataUnavailable = errors.New("datos de la sede no disponibles")
	ErrTimeout         = errors.New("tiempo de espera agotado consultando la sede")
)

// RangeError describe un parámetro de rango rechazado. Se compara con errors.Is(err, ErrInvalidRange).
type RangeError struct {
	Param  string // nombre del parámetro tal como lo envía el cliente (rango, fecha_inicio, ...)
	Reason string
}

func (e *RangeError) Error() string {
	return e.Param + ": " + e.Reason
}

func (e *RangeError) Unwrap() error { return ErrInvalidRange }
