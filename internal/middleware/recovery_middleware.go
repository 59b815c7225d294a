package middleware

import (
	"log"
	"net/http"

	"github.com/abhijith3110/Learning-Management-System/internal/utils"
)

// Recovery converts panics into the generic 500 envelope. The raw error is
// logged server-side only.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic recovered: %v", rec)
				utils.WriteError(w, http.StatusInternalServerError, "Something went wrong. Please try again later")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
