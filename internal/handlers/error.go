package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"vda5050-bridge/internal/utils"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// CustomHTTPErrorHandler is the central error handler for the Echo application.
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	logger := utils.Component("http").WithFields(logrus.Fields{
		"method": c.Request().Method,
		"path":   c.Path(),
	})

	var appErr *utils.AppError
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &appErr):
		// If there's an underlying original error, log it for debugging purposes.
		if internalErr := appErr.Unwrap(); internalErr != nil {
			entry := logger.WithField("status_code", appErr.Code).WithError(internalErr)
			if appErr.Code >= http.StatusInternalServerError {
				entry.Error(appErr.Message)
			} else {
				entry.Info(appErr.Message)
			}
		}
		resp := utils.ErrorResponse(appErr.Message)
		resp.Details = appErr.Details
		respond(c, appErr.Code, resp)

	case errors.As(err, &httpErr):
		respond(c, httpErr.Code, utils.ErrorResponse(fmt.Sprint(httpErr.Message)))

	default:
		logger.WithField("error_type", fmt.Sprintf("%T", err)).WithError(err).Error("Unhandled error occurred")
		respond(c, http.StatusInternalServerError, utils.ErrorResponse("An unexpected internal error occurred."))
	}
}

func respond(c echo.Context, code int, body utils.StandardResponse) {
	var err error
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, body)
	}
	if err != nil {
		utils.Logger.Errorf("Failed to write error response: %v", err)
	}
}
