package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/rdf2graph/internal/httputil"
	"github.com/persistorai/rdf2graph/internal/metrics"
	"github.com/persistorai/rdf2graph/internal/middleware"
	"github.com/persistorai/rdf2graph/internal/models"
	"github.com/persistorai/rdf2graph/internal/rdf"
)

// Error code constants for standardized API responses.
const (
	ErrCodeInvalidRequest     = "invalid_request"
	ErrCodeNotFound           = "not_found"
	ErrCodeAmbiguousReference = "ambiguous_reference"
	ErrCodeStructuralError    = "structural_error"
	ErrCodeParseError         = "parse_error"
	ErrCodeInternalError      = "internal_error"
)

// respondError writes a standardized JSON error response, pulling the request
// ID from the Gin context (set by the request ID middleware).
func respondError(c *gin.Context, status int, code, message string) {
	metrics.ErrorsTotal.WithLabelValues(code).Inc()
	httputil.RespondError(c, status, code, message)
}

// respondServiceError maps a mapping-layer error to its HTTP status. Unknown
// errors are logged and reported as 500 without detail.
func respondServiceError(c *gin.Context, log *logrus.Logger, op string, err error) {
	var (
		structural *models.StructuralError
		parse      *rdf.ParseError
	)

	switch {
	case errors.Is(err, models.ErrAmbiguousReference):
		respondError(c, http.StatusConflict, ErrCodeAmbiguousReference, err.Error())
	case errors.Is(err, models.ErrNodeNotFound):
		respondError(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, models.ErrInvalidReference):
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
	case errors.As(err, &structural):
		respondError(c, http.StatusUnprocessableEntity, ErrCodeStructuralError, structural.Error())
	case errors.As(err, &parse):
		respondError(c, http.StatusBadRequest, ErrCodeParseError, parse.Error())
	default:
		middleware.Entry(c, log).WithError(err).Error(op)
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
	}
}
