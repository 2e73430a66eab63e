package cart

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"MiniCart/internal/session"
	"MiniCart/pkg/kit"
)

const readyTimeout = 1 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	Sessions SessionStore
	Catalog  Catalog
	Log      *zap.Logger
	Metrics  *Metrics
}

type addItemReq struct {
	ProductID string `json:"product_id"`
}

type adjustReq struct {
	Delta *int `json:"delta"`
}

type ItemView struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	PriceCents    int64  `json:"price_cents"`
	Price         string `json:"price"`
	Quantity      int    `json:"quantity"`
	SubtotalCents int64  `json:"subtotal_cents"`
	Subtotal      string `json:"subtotal"`
}

type View struct {
	Items      []ItemView `json:"items"`
	Count      int        `json:"count"`
	Quantity   int        `json:"quantity"`
	TotalCents int64      `json:"total_cents"`
	Total      string     `json:"total"`
	Empty      bool       `json:"empty"`
}

func NewView(s State) View {
	items := s.Items()
	out := View{
		Items:      make([]ItemView, 0, len(items)),
		Count:      len(items),
		Quantity:   s.Quantity(),
		TotalCents: s.TotalCents(),
		Total:      s.TotalPrice(),
		Empty:      s.IsEmpty(),
	}
	for _, it := range items {
		sub := it.SubtotalCents()
		out.Items = append(out.Items, ItemView{
			ID:            it.ID,
			Name:          it.Name,
			PriceCents:    it.PriceCents,
			Price:         FormatCents(it.PriceCents),
			Quantity:      it.Quantity,
			SubtotalCents: sub,
			Subtotal:      FormatCents(sub),
		})
	}
	return out
}

func (s *Server) GetHandler() http.HandlerFunc     { return s.get }
func (s *Server) AddItemHandler() http.HandlerFunc { return s.addItem }
func (s *Server) AdjustHandler() http.HandlerFunc  { return s.adjust }
func (s *Server) EndHandler() http.HandlerFunc     { return s.end }

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	sid, ok := session.IDFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no session", nil)
		return
	}

	st, err := s.Sessions.Get(r.Context(), sid)
	if err != nil {
		s.logError("get cart failed", err, sid)
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, NewView(st))
}

func (s *Server) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}
	s.apply(w, r, AddItem{ProductID: req.ProductID})
}

func (s *Server) adjust(w http.ResponseWriter, r *http.Request) {
	var req adjustReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}
	if req.Delta == nil {
		kit.WriteError(w, r, http.StatusBadRequest, "delta required", nil)
		return
	}
	s.apply(w, r, AdjustQuantity{ProductID: chi.URLParam(r, "id"), Delta: *req.Delta})
}

func (s *Server) end(w http.ResponseWriter, r *http.Request) {
	sid, ok := session.IDFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no session", nil)
		return
	}
	if err := s.Sessions.Delete(r.Context(), sid); err != nil {
		s.logError("end session failed", err, sid)
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) apply(w http.ResponseWriter, r *http.Request, cmd Command) {
	sid, ok := session.IDFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no session", nil)
		return
	}

	ctx := r.Context()
	st, err := s.Sessions.Update(ctx, sid, func(cur State) (State, error) {
		return Reduce(ctx, cur, s.Catalog, cmd)
	})
	s.Metrics.observe(cmd, err)
	if err != nil {
		s.writeCommandError(w, r, cmd, err, sid)
		return
	}

	kit.WriteJSON(w, http.StatusOK, NewView(st))
}

func (s *Server) writeCommandError(w http.ResponseWriter, r *http.Request, cmd Command, err error, sid string) {
	switch {
	case errors.Is(err, ErrInvalidProductID):
		kit.WriteError(w, r, http.StatusBadRequest, "product_id required", nil)
	case errors.Is(err, ErrProductNotFound):
		kit.WriteError(w, r, http.StatusNotFound, "product not found", commandDetails(cmd))
	case errors.Is(err, ErrLineItemNotFound):
		kit.WriteError(w, r, http.StatusNotFound, "line item not found", commandDetails(cmd))
	case errors.Is(err, ErrTotalOverflow):
		kit.WriteError(w, r, http.StatusBadRequest, "total overflow", nil)
	case errors.Is(err, ErrCatalogUnavailable):
		s.logWarn("catalog unavailable", err, sid)
		kit.WriteError(w, r, http.StatusServiceUnavailable, "catalog unavailable", nil)
	case errors.Is(err, ErrCatalogBadStatus):
		s.logWarn("catalog error", err, sid)
		kit.WriteError(w, r, http.StatusBadGateway, "catalog error", nil)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		kit.WriteError(w, r, http.StatusGatewayTimeout, "timeout", nil)
	default:
		s.logError("cart command failed", err, sid)
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
	}
}

func commandDetails(cmd Command) map[string]any {
	switch c := cmd.(type) {
	case AddItem:
		return map[string]any{"product_id": c.ProductID}
	case AdjustQuantity:
		return map[string]any{"product_id": c.ProductID}
	}
	return nil
}

func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	p, ok := s.Catalog.(Pinger)
	if !ok {
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := p.Ping(ctx); err != nil {
		if s.Log != nil {
			s.Log.Warn("readyz failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusServiceUnavailable, "catalog not ready", nil)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) logError(msg string, err error, sid string) {
	if s.Log != nil {
		s.Log.Error(msg, zap.Error(err), zap.String("session_id", sid))
	}
}

func (s *Server) logWarn(msg string, err error, sid string) {
	if s.Log != nil {
		s.Log.Warn(msg, zap.Error(err), zap.String("session_id", sid))
	}
}
