package common

import (
	"context"

	"github.com/pixeldock/pixeldock/pkg/session"
)

// CommonResponse is a lightweight response wrapper used by HTTP handlers.
type CommonResponse struct {
	Code  int         `json:"code"`
	Msg   string      `json:"msg,omitempty"`
	Error string      `json:"error,omitempty"`
	Data  interface{} `json:"data,omitempty"`
}

type contextKey string

const sessionKey contextKey = "session"

// ContextWithSession stores the resolved session into context.
func ContextWithSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// SessionFromContext retrieves the session from context. Returns nil for an
// unauthenticated request.
func SessionFromContext(ctx context.Context) *session.Session {
	v := ctx.Value(sessionKey)
	if v == nil {
		return nil
	}
	if sess, ok := v.(*session.Session); ok {
		return sess
	}
	return nil
}
