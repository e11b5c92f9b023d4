package external

import "net/http"

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=external_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// baseClient holds what every upstream client in this package shares.
type baseClient struct {
	// source names the upstream in errors and logs.
	source string
	// baseURL is the base URL for the API.
	baseURL string
	// httpClient performs the requests.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
}

// Option configures an upstream client.
type Option func(*baseClient)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) Option {
	return func(c *baseClient) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *baseClient) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) Option {
	return func(c *baseClient) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

func newBaseClient(source, baseURL string, options []Option) baseClient {
	c := baseClient{
		source:     source,
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
	}
	for _, option := range options {
		option(&c)
	}
	return c
}

// do sends req with the shared headers and returns the response only
// for a 2xx status. The caller closes the body.
func (c *baseClient) do(req *http.Request) (*http.Response, error) {
	for key, values := range c.header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Source: c.source, Err: err}
	}
	if res.StatusCode/100 != 2 {
		res.Body.Close()
		return nil, &FetchError{Source: c.source, StatusCode: res.StatusCode}
	}
	return res, nil
}
