package observability

import (
	"net/http"
	"time"

	sentryhttpclient "github.com/getsentry/sentry-go/httpclient"
)

// NewHTTPClient returns a client whose requests become Sentry spans. Trace
// headers are only sent to the hosts in propagateTo.
func NewHTTPClient(timeout time.Duration, propagateTo ...string) *http.Client {
	transport := sentryhttpclient.NewSentryRoundTripper(
		http.DefaultTransport,
		sentryhttpclient.WithTracePropagationTargets(propagateTo),
	)
	return &http.Client{Transport: transport, Timeout: timeout}
}
