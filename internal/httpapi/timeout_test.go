package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "demo/marketplace/internal/errors"
	"demo/marketplace/internal/model"
	"demo/marketplace/internal/server"
	"demo/marketplace/internal/service"
	"demo/marketplace/internal/store/storemock"
)

func TestRouter_StalledStoreAnswersServerError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := storemock.NewMockRepository(ctrl)
	repo.EXPECT().ListActiveOrders(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ int) ([]model.Order, error) {
			<-ctx.Done()
			return nil, apperrors.NewStoreError("list active orders", ctx.Err())
		})

	log := zap.NewNop()
	h := NewHandler(service.New(repo, log), log, Options{})
	srv := server.New("127.0.0.1:0", NewRouter(h, log, 100*time.Millisecond), server.Timeouts{
		Read:  time.Second,
		Write: 500 * time.Millisecond,
		Idle:  time.Second,
	}, log)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ln) }()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
		<-done
	})

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/orders")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "Server error", out["error"])
}
