package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewTempUserID mints the opaque identifier handed to unauthenticated clients.
// It has no backing user record; it only scopes tasks and goals created before
// the client registers.
func NewTempUserID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}
