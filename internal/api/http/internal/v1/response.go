package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func newErrorResponse(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, gin.H{"error": message})
}

func newMessageResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"message": message})
}

func bindingErrorResponse(c *gin.Context, err error) {
	var verr validator.ValidationErrors
	if errors.As(err, &verr) && len(verr) > 0 {
		ferr := verr[0]
		newErrorResponse(c, http.StatusBadRequest, msgForTag(ferr.Field(), ferr.Tag(), ferr.Param()))
		return
	}

	newErrorResponse(c, http.StatusBadRequest, "invalid request body")
}

func msgForTag(field string, tag string, value string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %v characters", field, value)
	case "max":
		return fmt.Sprintf("%s must be at most %v characters", field, value)
	case "phonenumber":
		return "phone number must be 10 digits"
	}
	return fmt.Sprintf("%s is invalid", field)
}
