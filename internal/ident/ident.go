// Package ident generates process-unique identifiers for messages.
package ident

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID returns a collision-resistant identifier: a millisecond timestamp
// prefix (base 36) joined with a random suffix. Ids sort roughly by
// creation time, which keeps logs readable.
func NewID() string {
	prefix := strconv.FormatInt(time.Now().UnixMilli(), 36)
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return prefix + "-" + suffix
}
