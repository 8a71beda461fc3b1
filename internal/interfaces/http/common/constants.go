package common

import "time"

const (
	// MaxRequestBody limits JSON request bodies for store/review endpoints.
	MaxRequestBody = 1 << 20
	// DefaultRequestTimeout bounds the work a single request may do.
	DefaultRequestTimeout = 5 * time.Second
)
