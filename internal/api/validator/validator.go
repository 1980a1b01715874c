package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/numinix/paypal-rest-api-sub010/internal/api/contract"
	"github.com/numinix/paypal-rest-api-sub010/internal/constants"
)

const sep = " and "

type Error struct {
	FailedField string
	Tag         string
	Value       interface{}
}

type IXValidator interface {
	Validator(data any, message string, c *fiber.Ctx) contract.ResponseError
	Validate(data interface{}) []Error
}

type XValidator struct {
	validator *validator.Validate
}

func NewXValidator() IXValidator {
	return &XValidator{validator: validator.New()}
}

// Validator parses the request body into data and validates it. A missing
// required field is reported here, before any ledger lookup runs.
func (v *XValidator) Validator(data any, message string, c *fiber.Ctx) contract.ResponseError {
	if err := c.BodyParser(data); err != nil {
		return contract.ResponseError{
			Code:    constants.ErrCodeValidationFailed,
			Message: constants.GetErrorMessage(constants.ErrCodeInvalidRequestBody),
			Error:   err.Error(),
		}
	}

	failures := v.Validate(data)
	if len(failures) == 0 {
		return contract.ResponseError{}
	}

	fields := make([]string, 0, len(failures))
	for _, failure := range failures {
		fields = append(fields, failure.FailedField)
	}

	return contract.ResponseError{
		Code:    constants.ErrCodeValidationFailed,
		Message: fmt.Sprintf(message, strings.Join(fields, sep)),
	}
}

func (v *XValidator) Validate(data interface{}) []Error {
	var failures []Error

	err := v.validator.Struct(data)
	if err == nil {
		return nil
	}

	for _, err := range err.(validator.ValidationErrors) {
		failures = append(failures, Error{
			FailedField: err.Field(),
			Tag:         err.Tag(),
			Value:       err.Value(),
		})
	}

	return failures
}
