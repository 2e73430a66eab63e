package cart

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"MiniCart/internal/session"
	"MiniCart/pkg/kit"
)

type Deps struct {
	Cart     *Server
	Sessions *session.Server
	HTTP     kit.HTTPDeps
}

func NewHandler(deps Deps) http.Handler {
	r := kit.NewRouter(deps.HTTP)

	r.Get("/healthz", kit.Healthz)
	r.Get("/readyz", deps.Cart.ready)

	r.Post("/sessions", deps.Sessions.CreateHandler())

	r.Group(func(pr chi.Router) {
		pr.Use(session.Require(deps.Sessions.JWT))
		pr.Get("/cart", deps.Cart.GetHandler())
		pr.Delete("/cart", deps.Cart.EndHandler())
		pr.Post("/cart/items", deps.Cart.AddItemHandler())
		pr.Patch("/cart/items/{id}", deps.Cart.AdjustHandler())
	})

	return r
}
