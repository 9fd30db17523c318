package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/pixeldock/pixeldock/biz/service"
	"github.com/pixeldock/pixeldock/pkg/common"
	"github.com/pixeldock/pixeldock/pkg/session"
	"github.com/pixeldock/pixeldock/pkg/storage"
)

// Handler exposes the marketplace HTTP endpoints.
type Handler struct {
	service *service.Service
	store   storage.Storage
}

func NewHandler(svc *service.Service, store storage.Storage) *Handler {
	return &Handler{service: svc, store: store}
}

// Ping is a health check endpoint.
func Ping(ctx context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, map[string]string{"message": "pong"})
}

func respondData(c *app.RequestContext, data any) {
	c.JSON(consts.StatusOK, common.CommonResponse{
		Code: consts.StatusOK,
		Msg:  http.StatusText(consts.StatusOK),
		Data: data,
	})
}

func respondOK(c *app.RequestContext) {
	c.JSON(consts.StatusOK, common.CommonResponse{
		Code: consts.StatusOK,
		Msg:  http.StatusText(consts.StatusOK),
	})
}

func writeBadRequest(c *app.RequestContext, err error) {
	writeCode(c, consts.StatusBadRequest, err)
}

// writeServiceError maps service sentinels onto response codes. Anything
// unrecognized is a persistence failure and reported generically so storage
// details never leak to clients.
func writeServiceError(c *app.RequestContext, err error) {
	switch {
	case errors.Is(err, session.ErrNotAuthenticated):
		writeCode(c, consts.StatusUnauthorized, err)
	case errors.Is(err, session.ErrForbidden):
		writeCode(c, consts.StatusForbidden, err)
	case errors.Is(err, service.ErrValidation):
		writeCode(c, consts.StatusBadRequest, err)
	case errors.Is(err, service.ErrDuplicate):
		writeCode(c, consts.StatusConflict, err)
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrContentMissing):
		writeCode(c, consts.StatusNotFound, err)
	case errors.Is(err, service.ErrPaymentGateway):
		writeCode(c, consts.StatusBadGateway, err)
	default:
		c.JSON(consts.StatusOK, common.CommonResponse{
			Code:  consts.StatusInternalServerError,
			Msg:   "internal error",
			Error: "internal error",
		})
	}
}

func writeCode(c *app.RequestContext, code int, err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	c.JSON(consts.StatusOK, common.CommonResponse{
		Code:  code,
		Msg:   msg,
		Error: msg,
	})
}
