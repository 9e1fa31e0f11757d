package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/sakif/blog-api/internal/model"
	"github.com/sakif/blog-api/internal/service"
)

// payload is a request body that can be turned into a service input.
type payload[In any] interface {
	render.Binder
	Input() In
}

// UserRequest is the body of POST /users and PUT /users/{id}.
type UserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *UserRequest) Bind(r *http.Request) error { return nil }

func (u *UserRequest) Input() service.UserInput {
	return service.UserInput{Name: u.Name, Email: u.Email}
}

// ArticleRequest is the body of POST /articles and PUT /articles/{id}.
//
// Clients send user_id as a number or as a numeric string. It is decoded
// raw and normalised in Bind, so a wrong type reaches the service as text
// it can reject with a precise message instead of failing JSON decoding.
// The falsy values null, false, 0 and "" all mean the field is missing.
type ArticleRequest struct {
	Title   string          `json:"title"`
	Content string          `json:"content"`
	RawUser json.RawMessage `json:"user_id"`

	userID string
}

func (a *ArticleRequest) Bind(r *http.Request) error {
	raw := bytes.TrimSpace(a.RawUser)
	switch {
	case len(raw) == 0, bytes.Equal(raw, []byte("null")), bytes.Equal(raw, []byte("false")):
		a.userID = ""
	case isZeroNumber(raw):
		a.userID = ""
	case raw[0] == '"':
		if err := json.Unmarshal(raw, &a.userID); err != nil {
			return err
		}
	default:
		a.userID = string(raw)
	}
	return nil
}

// isZeroNumber reports whether raw is a JSON number equal to zero,
// such as 0, -0 or 0.0.
func isZeroNumber(raw []byte) bool {
	f, err := strconv.ParseFloat(string(raw), 64)
	return err == nil && f == 0
}

func (a *ArticleRequest) Input() service.ArticleInput {
	return service.ArticleInput{Title: a.Title, Content: a.Content, UserID: a.userID}
}

// bind decodes the JSON body into p.
//
// An empty body is not an error: it decodes to the zero payload, and the
// service then reports the first missing field. Only malformed JSON is
// rejected here.
func bind(r *http.Request, p render.Binder) error {
	err := render.Bind(r, p)
	if errors.Is(err, io.EOF) {
		return p.Bind(r)
	}
	return err
}

// pathID reads the {id} URL parameter. Non-numeric ids report false.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// queryInt reads an integer query parameter. Absent or non-numeric values
// read as 0, which NewPagination replaces with the default.
func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return n
}

// pagination reads ?limit= and the page number from the first of pageKeys
// that is present.
func pagination(r *http.Request, pageKeys ...string) model.Pagination {
	page := 0
	for _, key := range pageKeys {
		if r.URL.Query().Has(key) {
			page = queryInt(r, key)
			break
		}
	}
	return model.NewPagination(page, queryInt(r, "limit"))
}
