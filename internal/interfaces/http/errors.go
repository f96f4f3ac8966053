package http

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/analitica-sedes/internal/application/dto"
	"github.com/jhoicas/analitica-sedes/internal/domain"
)

// errorStatus traduce errores de dominio a respuesta HTTP. Los 5xx no exponen el detalle.
func errorStatus(err error) (int, dto.ErrorResponse) {
	var rangeErr *domain.RangeError
	switch {
	case errors.As(err, &rangeErr):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_RANGE", Message: rangeErr.Error(), Param: rangeErr.Param}
	case errors.Is(err, domain.ErrInvalidRange):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_RANGE", Message: err.Error()}
	case errors.Is(err, domain.ErrUnknownSede):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "UNKNOWN_SEDE", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_PARAMS", Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, domain.ErrTimeout):
		return fiber.StatusGatewayTimeout, dto.ErrorResponse{Code: "TIMEOUT", Message: "la base de datos de la sede no respondió a tiempo"}
	case errors.Is(err, domain.ErrDataUnavailable):
		return fiber.StatusServiceUnavailable, dto.ErrorResponse{Code: "DATA_UNAVAILABLE", Message: "no fue posible consultar la base de datos de la sede"}
	case errors.Is(err, context.Canceled):
		return fiber.StatusRequestTimeout, dto.ErrorResponse{Code: "CANCELED", Message: "solicitud cancelada"}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"}
}

// respondError escribe el error y registra los 5xx con el logger de la petición.
func respondError(c *fiber.Ctx, err error) error {
	status, body := errorStatus(err)
	if status >= fiber.StatusInternalServerError {
		zerolog.Ctx(c.UserContext()).Error().Err(err).Int("status", status).Msg("error atendiendo reporte")
	}
	return c.Status(status).JSON(body)
}

var errInvalidQuery = fmt.Errorf("%w: parámetros de consulta inválidos", domain.ErrInvalidInput)
