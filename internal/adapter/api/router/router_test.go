package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sabrinaansede/apphib/internal/adapter/api"
	"github.com/sabrinaansede/apphib/internal/adapter/api/handler"
	"github.com/sabrinaansede/apphib/internal/adapter/api/middleware"
	"github.com/sabrinaansede/apphib/internal/adapter/api/router"
	"github.com/sabrinaansede/apphib/internal/domain/entity"
	"github.com/sabrinaansede/apphib/internal/infrastructure/identity"
	"github.com/sabrinaansede/apphib/internal/infrastructure/storage"
	"github.com/sabrinaansede/apphib/internal/mocks"
	"github.com/sabrinaansede/apphib/internal/usecase"
	"github.com/sabrinaansede/apphib/pkg/errors"
)

type okStore struct{}

func (okStore) Name() string                   { return "mongo" }
func (okStore) Ping(ctx context.Context) error { return nil }

type testServer struct {
	e       *echo.Echo
	users   *mocks.MockUserRepository
	places  *mocks.MockPlaceRepository
	reviews *mocks.MockReviewRepository
	tokens  *identity.TokenManager
	hasher  *identity.BcryptHasher
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	s := &testServer{
		e:       echo.New(),
		users:   new(mocks.MockUserRepository),
		places:  new(mocks.MockPlaceRepository),
		reviews: new(mocks.MockReviewRepository),
		hasher:  identity.NewBcryptHasher(bcrypt.MinCost),
	}
	var err error
	s.tokens, err = identity.NewTokenManager("test-secret", 0)
	require.NoError(t, err)

	photos, err := storage.NewLocalStore(afero.NewMemMapFs(), "uploads", "http://localhost:5000")
	require.NoError(t, err)

	s.e.Validator = api.NewValidator()
	handler.Setup(
		usecase.NewAuthUseCase(s.users, s.hasher, s.tokens),
		usecase.NewUserUseCase(s.users, s.hasher),
		usecase.NewPlaceUseCase(s.places),
		usecase.NewReviewUseCase(s.reviews, s.places, s.users, photos),
	)
	handler.SetupHealthHandler(okStore{})
	router.Setup(s.e, middleware.NewAuthMiddleware(s.tokens), nil, nil)
	return s
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestBannerAndHealth(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "API 📍")

	rec = s.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestRegisterReturnsUserAndToken(t *testing.T) {
	s := newTestServer(t)

	s.users.On("GetByEmail", mock.Anything, "a@x.com").Return(nil, errors.NotFound("Usuario", nil))
	s.users.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) { args.Get(1).(*entity.User).ID = "u1" }).
		Return(nil)

	rec := s.do(jsonRequest(http.MethodPost, "/api/usuarios/register",
		`{"nombre":"Ana","email":"a@x.com","password":"secreto","telefono":"","tipoUsuario":"padre"}`))
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		User  map[string]interface{} `json:"user"`
		Token string                 `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "u1", body.User["_id"])
	assert.NotContains(t, body.User, "password")

	uid, err := s.tokens.Verify(body.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", uid)
}

func TestRegisterValidationMessage(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(jsonRequest(http.MethodPost, "/api/usuarios/register", `{"email":"a@x.com","password":"x"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"VALIDATION_ERROR","message":"nombre es obligatorio"}`, rec.Body.String())
}

func TestLoginWrongPassword(t *testing.T) {
	s := newTestServer(t)

	hash, _ := s.hasher.Hash("secreto")
	s.users.On("GetByEmail", mock.Anything, "a@x.com").Return(&entity.User{ID: "u1", Email: "a@x.com", Password: hash}, nil)

	rec := s.do(jsonRequest(http.MethodPost, "/api/usuarios/login", `{"email":"a@x.com","password":"mal"}`))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"UNAUTHORIZED","message":"Credenciales inválidas"}`, rec.Body.String())
}

func TestUserRoutesKeepLegacyEnvelopes(t *testing.T) {
	s := newTestServer(t)

	s.users.On("GetByID", mock.Anything, "nope").Return(nil, errors.NotFound("Usuario", nil))
	s.users.On("GetByEmail", mock.Anything, "b@x.com").Return(nil, errors.NotFound("Usuario", nil))
	s.users.On("Create", mock.Anything, mock.Anything).Return(nil)

	rec := s.do(httptest.NewRequest(http.MethodGet, "/api/usuarios/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"msg":"Usuario no encontrado"}`, rec.Body.String())

	rec = s.do(jsonRequest(http.MethodPost, "/api/usuarios", `{"nombre":"Beto","email":"b@x.com","password":"x"}`))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"msg":"Usuario creado"`)
	assert.Contains(t, rec.Body.String(), `"data":{`)
}

func TestPlacesListIsBareArray(t *testing.T) {
	s := newTestServer(t)

	s.places.On("List", mock.Anything).Return([]*entity.Place{{ID: "p1", Nombre: "Plaza", EtiquetasSensoriales: []string{}}}, nil)

	rec := s.do(httptest.NewRequest(http.MethodGet, "/api/lugares", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "["))
}

func TestCreatePlaceRecordsBearerIdentity(t *testing.T) {
	s := newTestServer(t)

	var stored *entity.Place
	s.places.On("Create", mock.Anything, mock.AnythingOfType("*entity.Place")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*entity.Place)
			stored.ID = "p1"
		}).
		Return(nil)

	token, _ := s.tokens.Issue("u1", "a@x.com")
	req := jsonRequest(http.MethodPost, "/api/lugares",
		`{"nombre":"Plaza X","direccion":"Calle 1","latitud":-34.6,"longitud":-58.4,"tipo":"plaza","provincia":"Buenos Aires"}`)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)

	rec := s.do(req)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "u1", stored.CreadoPor)
	assert.Equal(t, entity.CertificationCommunity, stored.Certificacion)
	assert.Contains(t, rec.Body.String(), `"votos":0`)
}

func TestCreatePlaceRequiresName(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(jsonRequest(http.MethodPost, "/api/lugares", `{"direccion":"Calle 1"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	s.places.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreatePlaceWithoutAddressThenList(t *testing.T) {
	s := newTestServer(t)

	var stored []*entity.Place
	s.places.On("Create", mock.Anything, mock.AnythingOfType("*entity.Place")).
		Run(func(args mock.Arguments) {
			p := args.Get(1).(*entity.Place)
			p.ID = "p1"
			stored = append(stored, p)
		}).
		Return(nil)

	rec := s.do(jsonRequest(http.MethodPost, "/api/lugares", `{"nombre":"Plaza X","latitud":-34.6,"longitud":-58.4}`))
	require.Equal(t, http.StatusCreated, rec.Code)

	s.places.On("List", mock.Anything).Return(stored, nil)

	rec = s.do(httptest.NewRequest(http.MethodGet, "/api/lugares", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"etiquetasSensoriales":[]`)

	var places []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &places))
	require.Len(t, places, 1)
	assert.Equal(t, "Plaza X", places[0]["nombre"])
	assert.Equal(t, "", places[0]["direccion"])
	assert.Equal(t, -34.6, places[0]["latitud"])
	assert.Equal(t, -58.4, places[0]["longitud"])
	assert.Equal(t, entity.CertificationCommunity, places[0]["certificacion"])
	assert.Equal(t, float64(0), places[0]["votos"])
	assert.Equal(t, []interface{}{}, places[0]["etiquetasSensoriales"])
}

func TestVoteReturnsUpdatedPlace(t *testing.T) {
	s := newTestServer(t)

	s.places.On("IncrementVotes", mock.Anything, "p1").Return(&entity.Place{ID: "p1", Votos: 3}, nil)
	s.places.On("IncrementVotes", mock.Anything, "p404").Return(nil, errors.NotFound("Lugar", nil))

	rec := s.do(httptest.NewRequest(http.MethodPut, "/api/lugares/p1/votar", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"votos":3`)

	rec = s.do(httptest.NewRequest(http.MethodPut, "/api/lugares/p404/votar", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Lugar no encontrado")
}

func TestListReviewsPassesFilter(t *testing.T) {
	s := newTestServer(t)

	s.reviews.On("List", mock.Anything, entity.ReviewFilter{Usuario: "u1"}).
		Return([]*entity.Review{{ID: "r1", Lugar: "p1", Usuario: "u1", Puntuacion: 4}}, nil)

	rec := s.do(httptest.NewRequest(http.MethodGet, "/api/resenas?usuario=u1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[`)
	assert.Contains(t, rec.Body.String(), `"_id":"r1"`)
}

func TestCreateReviewJSONRejectsZeroRating(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(jsonRequest(http.MethodPost, "/api/resenas", `{"lugar":"p1","usuario":"u1","puntuacion":0}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"VALIDATION_ERROR","message":"puntuacion debe ser al menos 1"}`, rec.Body.String())
}

func TestCreateReviewMultipartWithPhoto(t *testing.T) {
	s := newTestServer(t)

	s.places.On("GetByID", mock.Anything, "p1").Return(&entity.Place{ID: "p1"}, nil)
	s.users.On("GetByID", mock.Anything, "u1").Return(&entity.User{ID: "u1"}, nil)
	s.reviews.On("Create", mock.Anything, mock.AnythingOfType("*entity.Review")).
		Run(func(args mock.Arguments) { args.Get(1).(*entity.Review).ID = "r1" }).
		Return(nil)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("lugar", "p1")
	_ = w.WriteField("usuario", "u1")
	_ = w.WriteField("puntuacion", "5")
	_ = w.WriteField("comentario", "Muy tranquilo")
	fw, err := w.CreateFormFile(handler.PhotoField, "foto.png")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/resenas", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())

	rec := s.do(req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body struct {
		Data entity.Review `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 5, body.Data.Puntuacion)
	assert.True(t, strings.HasPrefix(body.Data.FotoURL, "http://localhost:5000/uploads/resenas/"))
}
