// Package httputil contains request and error helpers shared by all
// controllers.
package httputil

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/budget"
	"github.com/pocketledger/backend/internal/models"
	"github.com/rs/zerolog/log"
)

var (
	ErrRequestBodyEmpty = errors.New("the request body must not be empty")
	ErrInvalidBody      = errors.New("the body of your request contains invalid or un-parseable data. Please check and try again")
	ErrInvalidUUID      = errors.New("the specified ID is not a valid UUID")
)

// HTTPError is the JSON body of every error response.
type HTTPError struct {
	Error string `json:"error"`
}

// NewError writes an error response.
func NewError(c *gin.Context, status int, err error) {
	c.JSON(status, HTTPError{Error: err.Error()})
}

// BindData binds the JSON request body to the struct passed in.
func BindData(c *gin.Context, data any) error {
	err := c.ShouldBindJSON(data)
	if err == nil {
		return nil
	}

	if errors.Is(err, io.EOF) {
		NewError(c, http.StatusBadRequest, ErrRequestBodyEmpty)
		return ErrRequestBodyEmpty
	}

	log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
	NewError(c, http.StatusBadRequest, ErrInvalidBody)
	return ErrInvalidBody
}

// OwnerID parses the ownerId query parameter. Authentication is handled
// outside of this backend, callers identify the user explicitly.
func OwnerID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Query("ownerId"))
	if err != nil {
		NewError(c, http.StatusBadRequest, ErrInvalidUUID)
		return uuid.Nil, ErrInvalidUUID
	}

	return id, nil
}

// ParseUUID parses a path parameter as UUID.
func ParseUUID(c *gin.Context, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		NewError(c, http.StatusBadRequest, ErrInvalidUUID)
		return uuid.Nil, ErrInvalidUUID
	}

	return id, nil
}

// ErrorHandler maps engine errors to HTTP responses.
func ErrorHandler(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, budget.ErrBudgetConflict):
		status = http.StatusConflict
	case errors.Is(err, budget.ErrBudgetNotFound),
		errors.Is(err, models.ErrResourceNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrTransactionAmountNegative),
		errors.Is(err, models.ErrTransactionKindInvalid),
		errors.Is(err, models.ErrBudgetCapNegative),
		errors.Is(err, models.ErrBudgetThresholdOutOfRange),
		errors.Is(err, models.ErrBudgetWindowInvalid),
		errors.Is(err, models.ErrBudgetCategoryEmpty),
		errors.Is(err, models.ErrCategoryNameEmpty):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrGeneral):
		status = http.StatusInternalServerError
	}

	if status == http.StatusInternalServerError && !errors.Is(err, models.ErrGeneral) {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		err = models.ErrGeneral
	}

	NewError(c, status, err)
}
