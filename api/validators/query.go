package validators

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/velureshop/velure-backend/pkg/errors"
)

// ParseQueryInt reads an integer query parameter, applying the default when
// absent and rejecting values outside [min, max]. The error message names the
// parameter so storefront clients can surface it directly.
func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		msg := fmt.Sprintf("%s must be an integer", key)
		return 0, pkgerrors.New(pkgerrors.CodeValidation, msg).WithDetails(map[string]any{"field": key, "value": raw})
	}
	if value < min || value > max {
		msg := fmt.Sprintf("%s must be between %d and %d", key, min, max)
		return 0, pkgerrors.New(pkgerrors.CodeValidation, msg).WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}
