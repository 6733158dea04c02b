package middleware

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Telemetry applies the otelhttp server instrumentation, which handles
// trace propagation from incoming headers along with the standard
// request metrics.
func Telemetry(next http.Handler) http.Handler {
	return otelhttp.NewMiddleware("kharcha-api")(next)
}
