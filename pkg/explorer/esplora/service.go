package esplora

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/satswatch/walletd/pkg/circuitbreaker"
	"github.com/satswatch/walletd/pkg/explorer"
	"github.com/satswatch/walletd/pkg/httputil"
)

type esplora struct {
	apiURL  string
	client  *httputil.Client
	cb      *gobreaker.CircuitBreaker
	limiter *rate.Limiter
}

// NewService returns a new esplora service as an explorer.Service interface.
// Requests time out after reqTimeout milliseconds and are paced at rateLimit
// requests per second. The service is usable even when the upstream explorer
// is unreachable, read queries degrade to safe defaults.
func NewService(apiURL string, reqTimeout, rateLimit int) (explorer.Service, error) {
	if _, err := url.Parse(apiURL); err != nil {
		return nil, fmt.Errorf("invalid api url: %w", err)
	}
	if rateLimit <= 0 {
		rateLimit = 10
	}

	return &esplora{
		apiURL:  apiURL,
		client:  httputil.NewClient(reqTimeout),
		cb:      circuitbreaker.NewCircuitBreaker("esplora"),
		limiter: rate.NewLimiter(rate.Limit(rateLimit), 1),
	}, nil
}

func (e *esplora) get(url string) (string, error) {
	if err := e.limiter.Wait(context.Background()); err != nil {
		return "", err
	}

	iResp, err := e.cb.Execute(func() (interface{}, error) {
		status, resp, err := e.client.NewHTTPRequest("GET", url, "", nil)
		if err != nil {
			return nil, err
		}
		if status != http.StatusOK {
			return nil, fmt.Errorf(resp)
		}
		return resp, nil
	})
	if err != nil {
		return "", err
	}

	return iResp.(string), nil
}
