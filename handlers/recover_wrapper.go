package handlers

import (
	"fmt"
	"net/http"
	"runtime"
)

// RecoverWrapper wraps an http.Handler with panic recovery so one bad
// request cannot take the server down.
func RecoverWrapper(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				stack := make([]byte, 8*1024)
				stack = stack[:runtime.Stack(stack, false)]
				fmt.Printf("\n=== PANIC RECOVERED ===\nError: %v\nStacktrace:\n%s\n===================================\n", rec, string(stack))
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
