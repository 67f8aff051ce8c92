package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iota-uz/orgchart/pkg/composables"
)

// WithPool makes pool available to handlers through composables.UsePool.
func WithPool(pool *pgxpool.Pool) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if pool != nil {
				r = r.WithContext(composables.WithPool(r.Context(), pool))
			}
			next.ServeHTTP(w, r)
		})
	}
}
