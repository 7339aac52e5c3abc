package middlewares

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dohee12/Back-GENIE/utils"
)

type contextKey string

const subjectKey contextKey = "subject"

// SubjectFromContext returns the token subject stored by
// IsAccessTokenAuthorized, or "" when the request was not authenticated.
func SubjectFromContext(ctx context.Context) string {
	subject, _ := ctx.Value(subjectKey).(string)
	return subject
}

func GetTokenFromAuthorizationHeader(authHeader string) (string, error) {
	if len(authHeader) == 0 {
		return "", errors.New(utils.MISSING_REQUEST_DATA)
	}
	bearerToken := strings.Split(authHeader, " ")
	if len(bearerToken) < 2 {
		return "", errors.New(utils.MISSING_REQUEST_DATA)
	}
	return bearerToken[1], nil
}

func IsAccessTokenAuthorized(f http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authorization := r.Header.Get("Authorization")
		tokenString, err := GetTokenFromAuthorizationHeader(authorization)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		subject, err := utils.VerifyToken(tokenString)
		if err != nil {
			slog.Info("rejected access token", "error", err)
			http.Error(w, utils.INVALID_TOKEN_ERROR, http.StatusUnauthorized)
			return
		}
		f(w, r.WithContext(context.WithValue(r.Context(), subjectKey, subject)))
	}
}
