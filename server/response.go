package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/flowsynth/errors"
)

// DataResponse is the envelope for lookup endpoints.
type DataResponse struct {
	Data any `json:"data"`
}

// RespondWithError writes err as an ErrorResponse. Errors that are not an
// AppError become a 500 without their message.
func RespondWithError(c *gin.Context, err error) {
	appErr := apperrors.From(err)
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}

// RespondJSON writes v unwrapped with status 200.
func RespondJSON(c *gin.Context, v any) {
	c.JSON(http.StatusOK, v)
}

// RespondOK writes data inside a DataResponse with status 200.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, DataResponse{Data: data})
}
