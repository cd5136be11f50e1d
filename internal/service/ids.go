package service

import (
	"strings"

	"github.com/google/uuid"
)

// shortID returns an 8-character random suffix for human-readable entity ids
// like quiz_<course>_week2_main_1a2b3c4d.
func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
