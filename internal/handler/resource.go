package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/sakif/blog-api/internal/apperror"
)

// crudService is the slice of a service that the shared handlers drive.
type crudService[In, Out any] interface {
	Get(ctx context.Context, id int64) (Out, error)
	Create(ctx context.Context, in In) (Out, error)
	Update(ctx context.Context, id int64, in In) (Out, error)
	Delete(ctx context.Context, id int64) error
}

// resource implements get, create, update and delete once for every
// entity. A concrete handler embeds it and adds its own list endpoints.
//
// Type parameters:
//   - In:  the service input built from the request body
//   - Out: what the service returns and the handler renders
//   - P:   the request body type, decoded with render.Bind
type resource[In, Out any, P payload[In]] struct {
	name       string // "User", "Article": used in "<name> not found"
	svc        crudService[In, Out]
	newPayload func() P
	logger     *slog.Logger
}

// HandleGet → 200 with the entity, or 404.
func (h *resource[In, Out, P]) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, h.logger, apperror.NotFound(h.name))
		return
	}

	out, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

// HandleCreate → 201 with the stored entity.
func (h *resource[In, Out, P]) HandleCreate(w http.ResponseWriter, r *http.Request) {
	body := h.newPayload()
	if err := bind(r, body); err != nil {
		writeErr(w, r, errInvalidJSON)
		return
	}

	out, err := h.svc.Create(r.Context(), body.Input())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, out)
}

// HandleUpdate → 200 with the updated entity.
//
// A non-numeric id cannot name an existing row, so it is a 404 straight
// away, before the body is even read.
func (h *resource[In, Out, P]) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, h.logger, apperror.NotFound(h.name))
		return
	}

	body := h.newPayload()
	if err := bind(r, body); err != nil {
		writeErr(w, r, errInvalidJSON)
		return
	}

	out, err := h.svc.Update(r.Context(), id, body.Input())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

// HandleDelete → 204 with no body.
func (h *resource[In, Out, P]) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, h.logger, apperror.NotFound(h.name))
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	render.NoContent(w, r)
}
