package observability

import (
	"net/http"

	"github.com/aws/aws-xray-sdk-go/xray"
)

// InstrumentedHTTPClient wraps an http.Client with X-Ray subsegments
// for each outbound call. Base may be nil for http.DefaultClient.
func InstrumentedHTTPClient(base *http.Client) *http.Client {
	return xray.Client(base)
}
