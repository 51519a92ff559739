package middleware

import (
	"fmt"
	"net/http"

	"github.com/velureshop/velure-backend/api/responses"
	pkgerrors "github.com/velureshop/velure-backend/pkg/errors"
	"github.com/velureshop/velure-backend/pkg/logger"
)

// Recoverer converts handler panics into INTERNAL_ERROR responses, logging
// the panic value with the method and path that triggered it.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					err := fmt.Errorf("panic: %v", rec)
					ctx := r.Context()
					if logg != nil {
						ctx = logg.WithFields(ctx, map[string]any{
							"panic":  rec,
							"method": r.Method,
							"path":   r.URL.Path,
						})
						logg.Error(ctx, "panic.recovered", err)
					}
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "panic"))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
