package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const CorrelationHeader = "X-Correlation-ID"

type ctxKey string

const correlationKey ctxKey = "correlation_id"

// CorrelationID respeta el X-Correlation-ID entrante o genera uno nuevo,
// lo deja en el contexto y lo devuelve en la respuesta.
func CorrelationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(CorrelationHeader))
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}

		w.Header().Set(CorrelationHeader, id)
		ctx := context.WithValue(r.Context(), correlationKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetCorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey).(string)
	return id
}
