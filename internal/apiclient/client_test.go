package apiclient

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"absencehub/internal/overlap"
	"absencehub/internal/validation"
)

func serverPort(t *testing.T, srv *httptest.Server) int {
	t.Helper()
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	_, p, err := net.SplitHostPort(u.Host)
	require.NoError(t, err)
	port, err := strconv.Atoi(p)
	require.NoError(t, err)
	return port
}

// closedPort returns a local port nothing listens on.
func closedPort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}

func newAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	})
	mux.HandleFunc("/api/absences", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`{"success":true,"data":[{"id":1,"service_account":"s.john.doe","start_date":"2025-01-06","end_date":"2025-01-10"}]}`))
		case http.MethodPost:
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"success":false,"error":"OVERLAP_ERROR|Urlaub|1|2025-01-06|2025-01-10|2025-01-08|2025-01-09"}`))
		}
	})
	mux.HandleFunc("/api/absences/validate", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"valid":false,"fields":{"service_account":{"kind":"format","key":"error.serviceAccountFormat","message":"x"}}}}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestCandidates(t *testing.T) {
	c := New("http://localhost:5000", []int{5000, 5001, 8080})
	assert.Equal(t, []string{"http://localhost:5000", "http://localhost:5001", "http://localhost:8080"}, c.Candidates())

	c = New("::bad", []int{5001})
	assert.Equal(t, []string{"::bad"}, c.Candidates())
}

func TestLocateFallsBackToNextPort(t *testing.T) {
	srv := newAPI(t)
	dead := closedPort(t)

	c := New("http://127.0.0.1:"+strconv.Itoa(dead), []int{closedPort(t), serverPort(t, srv)})
	got, err := c.Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, srv.URL, got)

	// remembered without probing again
	srv.Close()
	again, err := c.Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestLocateUnavailable(t *testing.T) {
	c := New("http://127.0.0.1:"+strconv.Itoa(closedPort(t)), nil)
	_, err := c.Locate(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestListAbsences(t *testing.T) {
	srv := newAPI(t)
	c := New(srv.URL, nil)

	list, err := c.ListAbsences(context.Background(), url.Values{"month": {"2025-01"}})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "s.john.doe", list[0].ServiceAccount)
}

func TestCreateAbsenceDecodesConflict(t *testing.T) {
	srv := newAPI(t)
	c := New(srv.URL, nil)

	_, err := c.CreateAbsence(context.Background(), validation.Draft{ServiceAccount: "s.john.doe"})
	var conflict *overlap.Conflict
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "Urlaub", conflict.AbsenceType)
	assert.Equal(t, "2025-01-09", conflict.RequestedEnd)
}

func TestValidateAbsence(t *testing.T) {
	srv := newAPI(t)
	c := New(srv.URL, nil)

	valid, fields, err := c.ValidateAbsence(context.Background(), validation.Draft{})
	require.NoError(t, err)
	assert.False(t, valid)
	assert.Equal(t, "format", fields["service_account"].Kind)
}

func TestAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"error":"OVERLAP_ERROR|broken","fields":{"end_date":{"kind":"order"}}}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil).ListAbsences(context.Background(), nil)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "OVERLAP_ERROR|broken", apiErr.Message)
	assert.Equal(t, "order", apiErr.Fields["end_date"].Kind)
}
