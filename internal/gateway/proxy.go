package gateway

import (
	"errors"
	"net/http"
	"net/http/httputil"
	"net/url"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"MiniCart/pkg/kit"
)

var errBadUpstream = errors.New("upstream url must be absolute")

// NewReverseProxy forwards to target and answers 502 in the shared JSON error
// shape when the upstream cannot be reached.
func NewReverseProxy(target string, log *zap.Logger) (*httputil.ReverseProxy, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errBadUpstream
	}

	p := httputil.NewSingleHostReverseProxy(u)
	base := p.Director
	p.Director = func(r *http.Request) {
		base(r)
		r.Host = u.Host
		if id := chimw.GetReqID(r.Context()); id != "" {
			r.Header.Set(chimw.RequestIDHeader, id)
		}
	}
	p.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		if log != nil {
			log.Warn("upstream error", zap.String("upstream", u.Host), zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusBadGateway, "upstream unavailable", nil)
	}
	return p, nil
}
