package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime"
	"path"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// GetFile streams a stored object back to the client. Serves the download
// endpoint in local storage mode and the proxy-URL mode of S3.
func (h *Handler) GetFile(ctx context.Context, c *app.RequestContext) {
	key := strings.TrimPrefix(c.Param("objectKey"), "/")
	if key == "" || strings.Contains(key, "..") {
		writeBadRequest(c, errors.New("invalid object key"))
		return
	}

	obj, err := h.store.GetObject(ctx, key)
	if err != nil {
		writeCode(c, consts.StatusNotFound, errors.New("object not found"))
		return
	}
	defer obj.Close()

	content, err := io.ReadAll(obj)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = consts.MIMEApplicationOctetStream
	}
	c.Data(consts.StatusOK, contentType, content)
}

// PutFile accepts the binary a signed local-mode upload points at. S3 mode
// never reaches this endpoint: clients PUT to the presigned S3 URL instead.
func (h *Handler) PutFile(ctx context.Context, c *app.RequestContext) {
	key := strings.TrimPrefix(c.Param("objectKey"), "/")
	if key == "" || strings.Contains(key, "..") {
		writeBadRequest(c, errors.New("invalid object key"))
		return
	}

	body := c.Request.Body()
	if len(body) == 0 {
		writeBadRequest(c, errors.New("empty body"))
		return
	}
	contentType := string(c.ContentType())

	if err := h.store.PutObject(ctx, key, bytes.NewReader(body), contentType, int64(len(body))); err != nil {
		writeServiceError(c, err)
		return
	}
	respondOK(c)
}
