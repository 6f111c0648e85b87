package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/estate-listings/internal/httperr"
	"github.com/BruksfildServices01/estate-listings/internal/logger"
)

// writeError maps the error taxonomy onto HTTP. fallback is the message
// shown for failures whose detail must not reach the client.
func writeError(c *gin.Context, err error, fallback string) {
	if ve, ok := httperr.AsValidation(err); ok {
		httperr.Validation(c, "Invalid fields", ve)
		return
	}

	var be httperr.BusinessError
	if errors.As(err, &be) {
		switch be {
		case httperr.ErrUnauthenticated:
			httperr.Unauthorized(c, be.Code, "You must be signed in.")
		case httperr.ErrInsufficientCredit:
			httperr.PaymentRequired(c, be.Code, "You need at least one credit to add a property.")
		case httperr.ErrNotFound:
			httperr.NotFound(c, be.Code, "Not found.")
		case httperr.ErrConflict:
			httperr.Conflict(c, be.Code, "Already exists.")
		default:
			httperr.BadRequest(c, be.Code, fallback)
		}
		return
	}

	logger.FromContext(c.Request.Context()).Error().Err(err).Msg(fallback)
	httperr.Write(c, http.StatusInternalServerError, "internal_error", fallback)
}
