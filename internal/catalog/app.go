package catalog

import (
	"net/http"

	"MiniCart/pkg/kit"
)

func NewHandler(s *Server, deps kit.HTTPDeps) http.Handler {
	r := kit.NewRouter(deps)
	s.Routes(r)
	return r
}
