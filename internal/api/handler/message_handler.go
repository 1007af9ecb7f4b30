package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/quickmsg/messaging-system/internal/api/metrics"
	"github.com/quickmsg/messaging-system/internal/core/domain"
	"github.com/quickmsg/messaging-system/internal/core/ports"
)

// MessageHandler handles upload, pagination and delete requests.
type MessageHandler struct {
	service ports.MessageService
}

func NewMessageHandler(service ports.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

// statusResponse is the {status, msg} success envelope.
type statusResponse struct {
	Status int    `json:"status"`
	Msg    string `json:"msg"`
}

// pageResponse is the envelope of both pagination endpoints. Offset is the
// cursor to resubmit for the next page.
type pageResponse struct {
	Status  int              `json:"status"`
	Results []domain.Message `json:"results"`
	Offset  int64            `json:"offset"`
}

// Upload handles POST /upload. The body may carry a text field
// ("textField") and/or a multipart file part ("fileUpload"); each produces
// one independent message row. The file is written to storage before its row
// is inserted, and the response is sent only after both rows are committed.
func (h *MessageHandler) Upload(c echo.Context) error {
	client, err := ctxClient(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	if text := c.FormValue("textField"); text != "" {
		if _, err := h.service.UploadText(ctx, *client, text); err != nil {
			return err
		}
		metrics.MessagesStoredTotal.WithLabelValues("text").Inc()
	}

	file, ferr := c.FormFile("fileUpload")
	if ferr != nil {
		// No file attached; the text row (if any) already committed.
		return c.JSON(http.StatusOK, statusResponse{Status: http.StatusOK, Msg: "message uploaded"})
	}

	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}
	defer src.Close()

	if _, err := h.service.UploadFile(ctx, *client, file.Filename, src); err != nil {
		return err
	}
	metrics.MessagesStoredTotal.WithLabelValues("file").Inc()

	return c.JSON(http.StatusOK, statusResponse{Status: http.StatusOK, Msg: "message uploaded"})
}

// ListOlder handles GET /messages — history backfill ("scroll up"). Query
// params: limit (default 10, cap 100) and offset (message ID boundary,
// default = newest).
func (h *MessageHandler) ListOlder(c echo.Context) error {
	client, err := ctxClient(c)
	if err != nil {
		return err
	}

	page, err := h.service.ListOlder(c.Request().Context(), ports.PageInput{
		UserID: client.UserID,
		Limit:  queryInt(c, "limit"),
		Offset: queryInt64(c, "offset"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, pageResponse{Status: http.StatusOK, Results: page.Messages, Offset: page.NextOffset})
}

// ListNewer handles GET /messages/new — poll for messages newer than the
// offset (default 0), oldest first.
func (h *MessageHandler) ListNewer(c echo.Context) error {
	client, err := ctxClient(c)
	if err != nil {
		return err
	}

	page, err := h.service.ListNewer(c.Request().Context(), ports.PageInput{
		UserID: client.UserID,
		Limit:  queryInt(c, "limit"),
		Offset: queryInt64(c, "offset"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, pageResponse{Status: http.StatusOK, Results: page.Messages, Offset: page.NextOffset})
}

// Delete handles DELETE /messages/delete/:messageID. The message must belong
// to the authenticated client's user; its attachment directory (if any) is
// removed before the row.
func (h *MessageHandler) Delete(c echo.Context) error {
	client, err := ctxClient(c)
	if err != nil {
		return err
	}

	raw := c.Param("messageID")
	id, perr := strconv.ParseInt(raw, 10, 64)
	if perr != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Could not find or delete: "+raw)
	}

	if err := h.service.Delete(c.Request().Context(), client.UserID, id); err != nil {
		if errors.Is(err, domain.ErrMessageNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest, "Could not find or delete: "+raw)
		}
		return err
	}
	metrics.MessagesDeletedTotal.Inc()

	return c.JSON(http.StatusOK, statusResponse{Status: http.StatusOK, Msg: "Deleted: " + raw})
}

// queryInt parses an integer query param; absent or malformed values yield 0
// so the service applies its documented default.
func queryInt(c echo.Context, name string) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return v
}

func queryInt64(c echo.Context, name string) int64 {
	v, err := strconv.ParseInt(c.QueryParam(name), 10, 64)
	if err != nil {
		return 0
	}
	return v
}
