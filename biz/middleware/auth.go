package middleware

import (
	"context"
	"errors"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/pixeldock/pixeldock/pkg/common"
	"github.com/pixeldock/pixeldock/pkg/session"
)

// Session returns a middleware that resolves the auth provider's session
// cookie once per request and stores the result in the context. It does NOT
// enforce authentication: anonymous requests pass through with no session,
// and each operation applies its own session.Require guard.
func Session(client *session.Client) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		cookie := string(c.Cookie(client.CookieName()))
		if cookie != "" {
			sess, err := client.Resolve(ctx, cookie)
			switch {
			case err == nil:
				ctx = common.ContextWithSession(ctx, sess)
			case errors.Is(err, session.ErrNotAuthenticated):
				// Invalid or expired cookie reads as anonymous
			default:
				hlog.CtxWarnf(ctx, "session resolve: %v", err)
			}
		}
		c.Next(ctx)
	}
}

// RequireAuth returns a middleware that rejects anonymous requests before
// the handler runs.
func RequireAuth() app.HandlerFunc {
	return requireRole("")
}

// RequireAdmin returns a middleware that rejects requests without an admin
// session.
func RequireAdmin() app.HandlerFunc {
	return requireRole(session.RoleAdmin)
}

func requireRole(role string) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		sess := common.SessionFromContext(ctx)
		if _, err := session.Require(sess, role); err != nil {
			code := consts.StatusUnauthorized
			if errors.Is(err, session.ErrForbidden) {
				code = consts.StatusForbidden
			}
			c.JSON(consts.StatusOK, common.CommonResponse{
				Code:  code,
				Msg:   err.Error(),
				Error: err.Error(),
			})
			c.Abort()
			return
		}
		c.Next(ctx)
	}
}
