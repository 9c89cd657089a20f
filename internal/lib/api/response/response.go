package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrResponse is the only failure body any service returns to a caller.
type ErrResponse struct {
	Error string `json:"error"`
}

func Error(msg string) ErrResponse {
	return ErrResponse{Error: msg}
}

func ValidationError(errs validator.ValidationErrors) ErrResponse {
	var errMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "gt":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s must be greater than %s", err.Field(), err.Param()))
		case "email":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s is not a valid email", err.Field()))
		case "url":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s is not a valid URL", err.Field()))
		default:
			errMsgs = append(errMsgs, fmt.Sprintf("field %s is not valid", err.Field()))
		}
	}

	return ErrResponse{Error: strings.Join(errMsgs, ", ")}
}
