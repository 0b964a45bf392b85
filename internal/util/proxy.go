package util

import (
	"net/http"
	"net/url"

	"golang.org/x/net/http/httpproxy"
)

// NewProxyFunc returns a transport proxy selector. Explicit settings take
// precedence; with none, the HTTP_PROXY/HTTPS_PROXY/NO_PROXY environment is used.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	cfg := &httpproxy.Config{
		HTTPProxy:  httpProxy,
		HTTPSProxy: httpsProxy,
		NoProxy:    noProxy,
	}
	if cfg.HTTPSProxy == "" {
		cfg.HTTPSProxy = httpProxy
	}
	selector := cfg.ProxyFunc()

	return func(req *http.Request) (*url.URL, error) {
		return selector(req.URL)
	}
}
