package server

import (
	"errors"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	commonhttp "github.com/sngm3741/store-directory/api/internal/interfaces/http/common"
)

var errInvalidToken = errors.New("invalid access token")

type authClaims struct {
	jwt.RegisteredClaims
	Name              string `json:"name,omitempty"`
	PreferredUsername string `json:"preferred_username,omitempty"`
}

// authMiddleware verifies the bearer JWT and stores the authenticated user in the request context.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
		if authHeader == "" {
			s.unauthorized(w, "missing Authorization header")
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			s.unauthorized(w, "expected a Bearer token")
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
		if tokenString == "" {
			s.unauthorized(w, "empty access token")
			return
		}

		claims, err := s.parseAuthToken(tokenString)
		if err != nil {
			s.logger.Debug("token rejected", zap.Error(err))
			s.unauthorized(w, err.Error())
			return
		}

		user := commonhttp.AuthenticatedUser{
			ID:       claims.Subject,
			Name:     claims.Name,
			Username: claims.PreferredUsername,
		}
		next.ServeHTTP(w, r.WithContext(commonhttp.ContextWithUser(r.Context(), user)))
	})
}

func (s *Server) unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="store-directory"`)
	commonhttp.WriteJSON(s.logger, w, http.StatusUnauthorized, commonhttp.ErrorResponse{Error: msg})
}

// parseAuthToken tries each configured issuer in turn. Only HS256 is accepted.
func (s *Server) parseAuthToken(tokenString string) (*authClaims, error) {
	if len(s.cfg.JWTConfigs) == 0 {
		return nil, errors.New("authentication is not configured")
	}

	for _, cfg := range s.cfg.JWTConfigs {
		opts := []jwt.ParserOption{
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithLeeway(30 * time.Second),
		}
		if cfg.Issuer != "" {
			opts = append(opts, jwt.WithIssuer(cfg.Issuer))
		}
		claims := &authClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
			return cfg.Secret, nil
		}, opts...)
		if err != nil || !token.Valid {
			continue
		}
		if claims.Subject == "" {
			continue
		}
		if s.cfg.JWTAudience != "" && !slices.Contains(claims.Audience, s.cfg.JWTAudience) {
			continue
		}
		return claims, nil
	}

	return nil, errInvalidToken
}
