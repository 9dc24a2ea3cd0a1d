// Package handlers contains the HTTP handlers for the REST API.
//
// A handler is an adapter: it binds the HTTP request into a Command/Query
// DTO, calls the use case and renders the result. Each handler depends on
// a small use case interface it declares itself.
package handlers

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/mzurek/tripdesk/internal/adapters/http/common"
	"github.com/mzurek/tripdesk/internal/domain/entities"
)

// ============================================
// Custom Validator Setup
// ============================================

var setupOnce sync.Once

// SetupValidator registers custom validators on Gin's validator engine.
func SetupValidator() {
	setupOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			// Report field names from the json tag
			v.RegisterTagNameFunc(func(fld reflect.StructField) string {
				name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
				if name == "-" {
					return ""
				}
				return name
			})

			_ = v.RegisterValidation("pesel", validatePesel)
			_ = v.RegisterValidation("phone", validatePhone)
		}
	})
}

// validatePesel checks the PESEL shape (11 digits).
func validatePesel(fl validator.FieldLevel) bool {
	return entities.ValidPesel(fl.Field().String())
}

// validatePhone checks the telephone shape.
func validatePhone(fl validator.FieldLevel) bool {
	return entities.ValidPhone(fl.Field().String())
}

// ============================================
// Validation Error Handling
// ============================================

// HandleValidationErrors renders binding/validation failures.
func HandleValidationErrors(c *gin.Context, err error) {
	var fieldErrors []common.FieldError

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldErr := range validationErrors {
			fieldErrors = append(fieldErrors, common.FieldError{
				Field:   fieldErr.Field(),
				Message: getValidationMessage(fieldErr),
				Code:    fieldErr.Tag(),
			})
		}
	}

	if len(fieldErrors) == 0 {
		common.BadRequestResponse(c, "Invalid request body: "+err.Error())
		return
	}

	common.ValidationErrorResponse(c, fieldErrors)
}

// getValidationMessage maps a validator tag to a readable message.
func getValidationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		return "Value is too short (minimum: " + fe.Param() + ")"
	case "max":
		return "Value is too long (maximum: " + fe.Param() + ")"
	case "len":
		return "Value must be exactly " + fe.Param() + " characters"
	case "gt":
		return "Value must be greater than " + fe.Param()
	case "pesel":
		return "PESEL must be 11 digits"
	case "phone":
		return "Invalid telephone format"
	default:
		return "Invalid value"
	}
}

// ============================================
// Request Parsing Helpers
// ============================================

// BindJSON binds the JSON body. Returns false when the response has
// already been written.
func BindJSON[T any](c *gin.Context, req *T) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		HandleValidationErrors(c, err)
		return false
	}
	return true
}

// BindURI binds URI parameters.
func BindURI[T any](c *gin.Context, req *T) bool {
	if err := c.ShouldBindUri(req); err != nil {
		HandleValidationErrors(c, err)
		return false
	}
	return true
}
