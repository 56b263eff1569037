package uid

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateGameID returns a random id for a play session
func GenerateGameID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// GenerateClientID identifies one websocket connection
func GenerateClientID() string {
	return "c_" + uuid.NewString()
}

// GenerateRequestID is echoed back in X-Request-ID
func GenerateRequestID() string {
	return uuid.NewString()
}
