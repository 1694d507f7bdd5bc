package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/prepgenius-backend/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondAPIError renders err with the status and code it carries, falling
// back to 500 and fallbackCode for plain errors. Only the error's public
// message reaches the body. It returns the status used.
func RespondAPIError(c *gin.Context, err error, fallbackCode string) int {
	status, code := apierr.StatusOf(err, fallbackCode)
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: apierr.PublicMessage(err),
			Code:    code,
		},
	})
	return status
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
