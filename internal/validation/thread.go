package validation

import (
	"fmt"
	"strings"
)

const maxThreadTextLength = 2000

// ValidateThreadText checks thread body text before it is persisted.
func ValidateThreadText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("thread text cannot be empty")
	}

	if len(text) > maxThreadTextLength {
		return fmt.Errorf("thread text must not exceed %d characters", maxThreadTextLength)
	}

	return nil
}
