package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/usdt-payout-verifier/pkg/app/errors"
	"github.com/chainsafe/usdt-payout-verifier/pkg/config"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"service error", apperrors.ConflictError(errors.New("dup"), "transaction already used"), http.StatusConflict, "transaction already used"},
		{"plain error", errors.New("db exploded"), http.StatusInternalServerError, "Unexpected Service Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := HandleError(func(http.ResponseWriter, *http.Request) error { return tt.err })
			rec := httptest.NewRecorder()
			h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			require.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.message, body.ErrMsg)
			assert.Equal(t, tt.status, body.ErrMsgCode)
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		TxHash string `json:"tx_hash"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"tx_hash":"0xabc"}`))
	require.NoError(t, DecodeJSON(req, &v))
	assert.Equal(t, "0xabc", v.TxHash)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"tx_hash":`))
	err := DecodeJSON(req, &v)
	assert.True(t, apperrors.Is(err, apperrors.CategoryDataError))
}

func TestServeAndWait_GracefulShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, srv, ln, zap.NewNop(), time.Second) }()

	resp, err := http.Get("http://" + ln.Addr().String())
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServeAndWait_BindFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	port := ln.Addr().(*net.TCPAddr).Port
	err = ServeAndWait(context.Background(), http.NotFoundHandler(), nil,
		&config.ServerConfig{Host: "127.0.0.1", Port: port})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen")
}

func TestServeAndWait_InvalidArgs(t *testing.T) {
	assert.Error(t, ServeAndWait(context.Background(), nil, nil, &config.ServerConfig{}))
	assert.Error(t, ServeAndWait(context.Background(), http.NotFoundHandler(), nil, nil))
}
