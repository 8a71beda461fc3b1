package server

import (
	"net/http"
	"slices"

	"github.com/rs/cors"
)

func newCORS(origins []string) *cors.Cors {
	opts := cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Location"},
		AllowCredentials: !slices.Contains(origins, "*"),
		MaxAge:           300,
	}
	return cors.New(opts)
}
