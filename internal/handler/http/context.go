package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
)

// enterpriseIDFromContext reads the caller's enterprise from the JWT claims.
// AuthRequired has already rejected tokens without one.
func enterpriseIDFromContext(r *http.Request) (string, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}

	enterpriseID, ok := claims["enterprise_id"].(string)
	return enterpriseID, ok && enterpriseID != ""
}

// userIDFromContext reads the acting user from the JWT claims.
func userIDFromContext(r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}

	userID, _ := claims["user_id"].(string)
	return userID
}
