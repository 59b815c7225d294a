package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/abhijith3110/Learning-Management-System/internal/auth"
	"github.com/abhijith3110/Learning-Management-System/internal/models"
	"github.com/abhijith3110/Learning-Management-System/internal/utils"
)

type contextKey string

const authAdminKey contextKey = "authAdmin"

// AuthAdmin is the caller identity the access gate attaches to the request
// context. Handlers read it from here and never re-derive it from the token.
type AuthAdmin struct {
	ID   primitive.ObjectID
	Role models.AdminRole
}

// AccountSource resolves a token subject to a live, active admin account.
type AccountSource interface {
	FindActiveAdmin(ctx context.Context, id primitive.ObjectID) (*models.Admin, error)
}

// AdminAuth is the access gate guarding every route except login. It
// validates the bearer token, then re-resolves the subject from storage so a
// token for a since-deleted or deactivated account stops working immediately.
func AdminAuth(tokens *auth.TokenManager, accounts AccountSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				utils.WriteError(w, http.StatusUnauthorized, "Authentication token required")
				return
			}

			claims, err := tokens.Validate(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				utils.WriteError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			id, err := primitive.ObjectIDFromHex(claims.ID)
			if err != nil {
				utils.WriteError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			admin, err := accounts.FindActiveAdmin(r.Context(), id)
			if err != nil {
				if errors.Is(err, mongo.ErrNoDocuments) {
					utils.WriteError(w, http.StatusNotFound, "Unauthorized — account not found or inactive")
					return
				}
				utils.WriteError(w, http.StatusInternalServerError, "Failed to authenticate. Please try again later")
				return
			}

			ctx := context.WithValue(r.Context(), authAdminKey, AuthAdmin{ID: admin.ID, Role: admin.Role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminFromContext returns the identity the access gate attached.
func AdminFromContext(ctx context.Context) (AuthAdmin, bool) {
	admin, ok := ctx.Value(authAdminKey).(AuthAdmin)
	return admin, ok
}

// RequireSuperadmin rejects non-superadmin callers with the route's own 403
// message. It runs after AdminAuth and before any body parsing.
func RequireSuperadmin(message string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			admin, ok := AdminFromContext(r.Context())
			if !ok {
				utils.WriteError(w, http.StatusUnauthorized, "Authentication token required")
				return
			}

			if admin.Role != models.RoleSuperAdmin {
				utils.WriteError(w, http.StatusForbidden, message)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
