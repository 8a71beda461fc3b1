package server

import (
	"context"
	"net/http"
	"time"

	commonhttp "github.com/sngm3741/store-directory/api/internal/interfaces/http/common"
)

// healthHandler pings every backing service. Any failure answers 503 "degraded".
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := make(map[string]string, len(s.health))
		status, code := "ok", http.StatusOK
		for name, check := range s.health {
			if err := check(ctx); err != nil {
				checks[name] = err.Error()
				status, code = "degraded", http.StatusServiceUnavailable
				continue
			}
			checks[name] = "ok"
		}

		commonhttp.WriteJSON(s.logger, w, code, map[string]any{
			"status": status,
			"checks": checks,
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}
