package validation

import "fmt"

// RequireFields checks that every required key exists in the decoded
// request body. Keys are checked in the caller-supplied order and the
// first missing one is reported; presence is key existence only, an
// empty value still counts as present.
func RequireFields(body map[string]any, required []string) *Error {
	for _, field := range required {
		if _, ok := body[field]; !ok {
			return BadRequest(fmt.Sprintf("%s must be provided.", field))
		}
	}
	return nil
}
