package middleware

import (
	"net/http"

	"github.com/rmaia/contaflux/internal/domain"
)

const (
	// TenantHeader carries the tenant identifier on API requests.
	TenantHeader = "X-Tenant-ID"
	// UserHeader carries the acting user, forwarded by the auth gateway.
	UserHeader = "X-User-ID"
)

// TenantMiddleware extracts the tenant and acting user from request headers
// and stores them as the request actor. Requests without a tenant are
// rejected; every query and audit entry downstream is tenant scoped.
func TenantMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenant := r.Header.Get(TenantHeader)
		if tenant == "" {
			http.Error(w, "missing tenant header", http.StatusBadRequest)
			return
		}

		actor := domain.Actor{
			TenantID: tenant,
			UserID:   r.Header.Get(UserHeader),
		}

		next.ServeHTTP(w, r.WithContext(domain.ActorToContext(r.Context(), actor)))
	})
}
