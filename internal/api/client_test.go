package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/odonto-flow/internal/common"
	"github.com/Veraticus/odonto-flow/internal/model"
	"github.com/Veraticus/odonto-flow/internal/testutil"
)

type staticToken struct {
	err   error
	token string
}

func (s staticToken) GetToken(context.Context) (string, error) {
	return s.token, s.err
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL+"/", opts...)
	require.NoError(t, err)
	return c
}

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := NewClient("")
	assert.ErrorIs(t, err, common.ErrMissingConfig)

	_, err = NewClient("not a url")
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestClient_ListConsultas(t *testing.T) {
	var gotAuth, gotRequestID string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/consultas", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 1, "status": "CONCLUIDA", "valorCobrado": 150, "paciente": {"nome": "Ana"}},
			{"id": 2, "status": "CANCELADA", "tipoConsulta": {"nome": "Limpeza", "preco": 90}}
		]`))
	}, WithTokenSource(staticToken{token: "abc.def.ghi"}))

	consultas, err := c.ListConsultas(context.Background())
	require.NoError(t, err)
	require.Len(t, consultas, 2)

	assert.Equal(t, "Bearer abc.def.ghi", gotAuth)
	_, err = uuid.Parse(gotRequestID)
	assert.NoError(t, err)

	assert.Equal(t, "Ana", consultas[0].PatientName())
	assert.Equal(t, "90", consultas[1].Amount().String())
}

func TestClient_NoTokenSendsNoAuthorization(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	}, WithTokenSource(staticToken{err: common.ErrNotFound}))

	slots, err := c.ListAvailableSlots(context.Background())
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestClient_UsesStoredToken(t *testing.T) {
	store := testutil.SetupTokenStore(t, "")

	var auths []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auths = append(auths, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	}, WithTokenSource(store))

	ctx := context.Background()
	_, err := c.ListConsultas(ctx)
	require.NoError(t, err)

	require.NoError(t, store.SaveToken(ctx, "stored.jwt.token"))
	_, err = c.ListConsultas(ctx)
	require.NoError(t, err)

	require.NoError(t, store.DeleteToken(ctx))
	_, err = c.ListConsultas(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"", "Bearer stored.jwt.token", ""}, auths)
}

func TestClient_TokenStoreFailure(t *testing.T) {
	c := newTestClient(t, func(http.ResponseWriter, *http.Request) {
		t.Error("request should not be sent")
	}, WithTokenSource(staticToken{err: errors.New("disk gone")}))

	_, err := c.ListConsultas(context.Background())
	assert.ErrorContains(t, err, "disk gone")
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		sentinel error
		message  string
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, sentinel: common.ErrUnauthorized},
		{name: "forbidden", status: http.StatusForbidden, sentinel: common.ErrUnauthorized},
		{name: "server error", status: http.StatusInternalServerError, body: `{"message":"banco indisponível"}`, sentinel: common.ErrFetchFailed, message: "banco indisponível"},
		{name: "not found", status: http.StatusNotFound, body: `{"erro":"rota"}`, sentinel: common.ErrFetchFailed, message: "rota"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.ListConsultas(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)

			var statusErr *StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, tt.status, statusErr.StatusCode)
			assert.Equal(t, tt.message, statusErr.Message)
			assert.Equal(t, "/consultas", statusErr.Path)
		})
	}
}

func TestClient_MalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"not": "a list"}`))
	})

	_, err := c.ListConsultas(context.Background())
	assert.ErrorIs(t, err, common.ErrFetchFailed)
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewClient(url)
	require.NoError(t, err)

	_, err = c.ListAvailableSlots(context.Background())
	assert.ErrorIs(t, err, common.ErrFetchFailed)
}

func TestClient_Login(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "dra@clinica.com", body["email"])
		assert.Equal(t, "segredo", body["senha"])

		_, _ = w.Write([]byte(`{"token":"jwt-token"}`))
	})

	token, err := c.Login(context.Background(), "dra@clinica.com", "segredo")
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", token)
}

func TestClient_LoginWithoutToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := c.Login(context.Background(), "a@b.c", "x")
	assert.ErrorIs(t, err, common.ErrFetchFailed)
}

func TestClient_AgendaMutations(t *testing.T) {
	var calls []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "2024-01-01", body["dataInicio"])
		assert.Equal(t, "2024-01-31", body["dataFim"])
		calls = append(calls, r.Method+" "+r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	r := model.AgendaRange{DataInicio: model.NewDate(2024, 1, 1), DataFim: model.NewDate(2024, 1, 31)}
	require.NoError(t, c.GenerateAgenda(context.Background(), r))
	require.NoError(t, c.DeleteAgenda(context.Background(), r))
	assert.Equal(t, []string{"POST /agenda/gerar", "DELETE /agenda"}, calls)

	err := c.GenerateAgenda(context.Background(), model.AgendaRange{})
	assert.ErrorIs(t, err, model.ErrIncompleteRange)
}
