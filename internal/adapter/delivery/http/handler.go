package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/shortlink/internal/entity"
	"github.com/vadimbarashkov/shortlink/pkg/response"
)

const welcomeMessage = "Welcome to the URL shortener API"

func handleRoot(w http.ResponseWriter, r *http.Request) {
	render.PlainText(w, r, welcomeMessage)
}

type urlUseCase interface {
	CreateURL(ctx context.Context, targetURL string) (*entity.URL, error)
	ForwardToTargetURL(ctx context.Context, key string) (*entity.URL, error)
	GetAdminInfo(ctx context.Context, secretKey string) (*entity.URL, error)
	DeactivateURL(ctx context.Context, secretKey string) (*entity.URL, error)
}

type urlHandler struct {
	baseURL  string
	useCase  urlUseCase
	validate *validator.Validate
}

func newURLHandler(baseURL string, useCase urlUseCase, validate *validator.Validate) *urlHandler {
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &urlHandler{
		baseURL:  baseURL,
		useCase:  useCase,
		validate: validate,
	}
}

// notFound renders the 404 response naming the URL that was requested.
func (h *urlHandler) notFound(w http.ResponseWriter, r *http.Request) {
	requested := strings.TrimSuffix(h.baseURL, "/") + r.URL.RequestURI()

	render.Status(r, http.StatusNotFound)
	render.JSON(w, r, response.ErrorResponse(fmt.Sprintf("URL '%s' doesn't exist", requested)))
}

// serverError logs err on the request log entry and renders the matching 5xx response.
func (h *urlHandler) serverError(w http.ResponseWriter, r *http.Request, op string, err error) {
	httplog.LogEntrySetField(r.Context(), "op", slog.StringValue(op))
	httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))

	if errors.Is(err, entity.ErrMaxRetriesExceeded) {
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, response.ServiceUnavailableResponse)
		return
	}

	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, response.ServerErrorResponse)
}

func (h *urlHandler) createURL(w http.ResponseWriter, r *http.Request) {
	const op = "adapter.delivery.http.urlHandler.createURL"

	var req urlRequest

	if err := render.DecodeJSON(r.Body, &req); err != nil {
		if errors.Is(err, io.EOF) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.EmptyRequestBodyResponse)
			return
		}

		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.InvalidRequestBodyResponse)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationErrorResponse(err))
		return
	}

	url, err := h.useCase.CreateURL(r.Context(), req.TargetURL)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidURL) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationErrorResponse(err))
			return
		}

		h.serverError(w, r, op, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toURLInfoResponse(h.baseURL, url))
}

func (h *urlHandler) forwardToTargetURL(w http.ResponseWriter, r *http.Request) {
	const op = "adapter.delivery.http.urlHandler.forwardToTargetURL"

	key := chi.URLParam(r, "key")

	url, err := h.useCase.ForwardToTargetURL(r.Context(), key)
	if err != nil {
		if errors.Is(err, entity.ErrURLNotFound) {
			h.notFound(w, r)
			return
		}

		h.serverError(w, r, op, err)
		return
	}

	http.Redirect(w, r, url.TargetURL, http.StatusTemporaryRedirect)
}

func (h *urlHandler) getAdminInfo(w http.ResponseWriter, r *http.Request) {
	const op = "adapter.delivery.http.urlHandler.getAdminInfo"

	secretKey := chi.URLParam(r, "secretKey")

	url, err := h.useCase.GetAdminInfo(r.Context(), secretKey)
	if err != nil {
		if errors.Is(err, entity.ErrURLNotFound) {
			h.notFound(w, r)
			return
		}

		h.serverError(w, r, op, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toURLInfoResponse(h.baseURL, url))
}

func (h *urlHandler) deactivateURL(w http.ResponseWriter, r *http.Request) {
	const op = "adapter.delivery.http.urlHandler.deactivateURL"

	secretKey := chi.URLParam(r, "secretKey")

	url, err := h.useCase.DeactivateURL(r.Context(), secretKey)
	if err != nil {
		if errors.Is(err, entity.ErrURLNotFound) {
			h.notFound(w, r)
			return
		}

		h.serverError(w, r, op, err)
		return
	}

	msg := fmt.Sprintf("Successfully deleted shortened URL for '%s'", url.TargetURL)

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response.SuccessResponse(msg))
}
