package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ampliar/clinic-data-gateway/internal/adapters/out/logger"
	"github.com/ampliar/clinic-data-gateway/internal/config"
	"github.com/ampliar/clinic-data-gateway/internal/core/ports/out"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(t *testing.T, handler http.Handler, token string) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.Remote.URL = srv.URL
	cfg.Remote.RequestTimeout = 5 * time.Second

	log, err := logger.NewConsoleLogger("UTC")
	require.NoError(t, err)

	return NewClient(cfg, staticToken(token), log.WithModule("RemoteClient")), srv
}

func TestCallAttachesBearerAndContentType(t *testing.T) {
	var gotAuth, gotContentType string

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}), "secret-token")

	_, err := client.ListAppointments(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
}

func TestCallOmitsBearerWithoutSession(t *testing.T) {
	var gotAuth string

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}), "")

	_, err := client.ListPatients(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestNormalizeErrorValidationArray(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"errors": []map[string]string{
				{"defaultMessage": "type is required"},
				{"code": "NotNull"},
			},
		})
	}), "tok")

	_, err := client.CreateAppointment(context.Background(), out.Body{})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "type is required, NotNull", apiErr.Message)
}

func TestNormalizeErrorFieldErrors(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"fieldErrors":[{"defaultMessage":"cpf is invalid"},{"defaultMessage":"phone is required"}]}`))
	}), "tok")

	_, err := client.CreatePatient(context.Background(), out.Body{})
	require.Error(t, err)
	assert.Equal(t, "cpf is invalid, phone is required", err.Error())
}

func TestNormalizeErrorMessageField(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid credentials"}`))
	}), "")

	_, err := client.Login(context.Background(), "doc@clinic.test", "wrong")
	require.Error(t, err)
	assert.Equal(t, "invalid credentials", err.Error())
}

func TestNormalizeErrorRawTextFallback(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream unavailable"))
	}), "tok")

	err := client.DeletePayer(context.Background(), "7")
	require.Error(t, err)
	assert.Equal(t, "upstream unavailable", err.Error())
}

func TestNormalizeErrorEmptyBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}), "tok")

	err := client.DeleteAppointment(context.Background(), "3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "empty")
}

func TestTransportFailureIsNormalized(t *testing.T) {
	client, srv := newTestClient(t, http.NewServeMux(), "tok")
	srv.Close()

	_, err := client.ListAppointments(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
}

func TestSuccessDecodesJSON(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":4,"fullName":"Ana Souza","cpf":"111.222.333-44","phoneNumber":"+55 11 98888-0000"}`))
	}), "tok")

	payer, err := client.CreatePayer(context.Background(), out.Body{"fullName": "Ana Souza"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), payer.ID)
	assert.Equal(t, "Ana Souza", payer.FullName)
}

func TestMoneyToleratesStringAmounts(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"valor":"150.50","paymentDate":"2024-03-01","payerId":2},{"id":2,"valor":"banana","paymentDate":"2024-03-02","payerId":2}]`))
	}), "tok")

	payments, err := client.ListPayments(context.Background())
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, "150.5", payments[0].Valor.String())
	assert.True(t, payments[1].Valor.IsZero())
}
