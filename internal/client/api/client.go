// Package api is the typed HTTP client for the places service.
package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/sabrinaansede/apphib/internal/domain/entity"
)

// ErrTransport covers network failures and bodies that aren't JSON.
var ErrTransport = errors.New("api: transport error")

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
}

// TokenSource returns the bearer token to send, or "" for anonymous calls.
type TokenSource func() string

type Client struct {
	baseURL string
	http    *http.Client
	token   TokenSource
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithToken(src TokenSource) Option {
	return func(c *Client) { c.token = src }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type RegisterRequest struct {
	Nombre      string `json:"nombre"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Telefono    string `json:"telefono,omitempty"`
	TipoUsuario string `json:"tipoUsuario,omitempty"`
}

type AuthResponse struct {
	User  entity.User `json:"user"`
	Token string      `json:"token"`
}

type NewPlace struct {
	Nombre               string   `json:"nombre"`
	Direccion            string   `json:"direccion"`
	Latitud              float64  `json:"latitud"`
	Longitud             float64  `json:"longitud"`
	Tipo                 string   `json:"tipo,omitempty"`
	Provincia            string   `json:"provincia,omitempty"`
	Descripcion          string   `json:"descripcion,omitempty"`
	EtiquetasSensoriales []string `json:"etiquetasSensoriales"`
	Certificacion        string   `json:"certificacion,omitempty"`
}

type NewReview struct {
	Lugar      string `json:"lugar"`
	Usuario    string `json:"usuario"`
	Puntuacion int    `json:"puntuacion"`
	Comentario string `json:"comentario,omitempty"`
}

// Photo is an image attached to a review.
type Photo struct {
	Name string
	Body io.Reader
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	var out AuthResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/usuarios/register", req, &out)
	return out, err
}

func (c *Client) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	var out AuthResponse
	body := map[string]string{"email": email, "password": password}
	err := c.doJSON(ctx, http.MethodPost, "/api/usuarios/login", body, &out)
	return out, err
}

func (c *Client) ListPlaces(ctx context.Context) ([]entity.Place, error) {
	var out []entity.Place
	err := c.doList(ctx, "/api/lugares", &out)
	return out, err
}

func (c *Client) CreatePlace(ctx context.Context, p NewPlace) (entity.Place, error) {
	var out entity.Place
	err := c.doJSON(ctx, http.MethodPost, "/api/lugares", p, &out)
	return out, err
}

// VotePlace returns the place with its new vote count.
func (c *Client) VotePlace(ctx context.Context, id string) (entity.Place, error) {
	var out entity.Place
	err := c.doJSON(ctx, http.MethodPut, "/api/lugares/"+url.PathEscape(id)+"/votar", nil, &out)
	return out, err
}

// ListReviews filters by place or author when the ids are non-empty.
func (c *Client) ListReviews(ctx context.Context, lugar, usuario string) ([]entity.Review, error) {
	q := url.Values{}
	if lugar != "" {
		q.Set("lugar", lugar)
	}
	if usuario != "" {
		q.Set("usuario", usuario)
	}
	path := "/api/resenas"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out []entity.Review
	err := c.doList(ctx, path, &out)
	return out, err
}

// CreateReview sends JSON, or a multipart form when photo is set.
func (c *Client) CreateReview(ctx context.Context, r NewReview, photo *Photo) (entity.Review, error) {
	if photo == nil {
		var env dataEnvelope
		if err := c.doJSON(ctx, http.MethodPost, "/api/resenas", r, &env); err != nil {
			return entity.Review{}, err
		}
		return decodeReview(env)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := [][2]string{
		{"lugar", r.Lugar},
		{"usuario", r.Usuario},
		{"puntuacion", fmt.Sprint(r.Puntuacion)},
	}
	if r.Comentario != "" {
		fields = append(fields, [2]string{"comentario", r.Comentario})
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return entity.Review{}, err
		}
	}
	part, err := w.CreateFormFile("foto", photo.Name)
	if err != nil {
		return entity.Review{}, err
	}
	if _, err := io.Copy(part, photo.Body); err != nil {
		return entity.Review{}, err
	}
	if err := w.Close(); err != nil {
		return entity.Review{}, err
	}

	var env dataEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/resenas", w.FormDataContentType(), &buf, &env); err != nil {
		return entity.Review{}, err
	}
	return decodeReview(env)
}

type dataEnvelope struct {
	Data json.RawMessage `json:"data"`
}

func decodeReview(env dataEnvelope) (entity.Review, error) {
	var r entity.Review
	if err := json.Unmarshal(env.Data, &r); err != nil {
		return r, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return r, nil
}

// doList accepts both a bare array and a {data: [...]} envelope.
func (c *Client) doList(ctx context.Context, path string, out interface{}) error {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, "", nil, &raw); err != nil {
		return err
	}

	body := bytes.TrimSpace(raw)
	if len(body) > 0 && body[0] == '{' {
		var env dataEnvelope
		if err := json.Unmarshal(body, &env); err != nil {
			return fmt.Errorf("%w: %v", ErrTransport, err)
		}
		body = env.Data
	}
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, contentType, body, out)
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(raw)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return nil
}

// errorMessage picks the first of message, error or msg from an error body.
func errorMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Msg     string `json:"msg"`
	}
	if json.Unmarshal(raw, &body) != nil {
		return ""
	}
	for _, m := range []string{body.Message, body.Error, body.Msg} {
		if m != "" {
			return m
		}
	}
	return ""
}

// Message returns the server-provided text of err, or fallback.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
