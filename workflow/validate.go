package workflow

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Validate checks the three required user inputs before a pipeline run is
// constructed. It returns nil when the inputs are acceptable. It is never
// called inside the pipeline itself.
func Validate(company, objective, attendees string) error {
	if strings.TrimSpace(company) == "" {
		return errors.New("company name is required")
	}
	if strings.TrimSpace(objective) == "" {
		return errors.New("meeting objective is required")
	}
	if strings.TrimSpace(attendees) == "" {
		return errors.New("attendee list is required")
	}
	if utf8.RuneCountInString(company) < 2 {
		return errors.New("company name must be at least 2 characters")
	}
	return nil
}
