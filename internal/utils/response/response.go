package response

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aaravmahajanofficial/grocery-storefront/internal/errors"
)

type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// WriteJson pretty-prints data for --output json.
func WriteJson(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data) //struct to json
}

func NewErrorResponse(err error) *ErrorResponse {

	if appErr, ok := errors.IsAppError(err); ok {
		resp := &ErrorResponse{
			Code:    appErr.Code,
			Message: appErr.Message,
		}

		if appErr.Detail != "" {
			resp.Details = []string{appErr.Detail}
		}

		return resp
	}

	return &ErrorResponse{
		Code:    errors.ErrCodeInternal,
		Message: "An unexpected error occurred",
	}
}

// Error renders err as a single user-facing line.
func Error(w io.Writer, err error) {

	resp := NewErrorResponse(err)

	if len(resp.Details) > 0 {
		fmt.Fprintf(w, "error: %s (%s)\n", resp.Message, resp.Details[0])
		return
	}

	fmt.Fprintf(w, "error: %s\n", resp.Message)
}
