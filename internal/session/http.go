package session

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"MiniCart/pkg/kit"
)

const DefaultTTL = 2 * time.Hour

type Server struct {
	Log *zap.Logger
	JWT *TokenMaker
	TTL time.Duration
}

type createResp struct {
	SessionID   string    `json:"session_id"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func NewID() string {
	return "s_" + uuid.NewString()
}

func (s *Server) CreateHandler() http.HandlerFunc { return s.create }

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	id := NewID()
	tok, exp, err := s.JWT.New(id, ttl)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("token issue", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	if s.Log != nil {
		s.Log.Debug("session created", zap.String("session_id", id))
	}
	kit.WriteJSON(w, http.StatusCreated, createResp{
		SessionID:   id,
		AccessToken: tok,
		ExpiresAt:   exp.UTC(),
	})
}
