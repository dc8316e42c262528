package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/identity-merge/internal/metrics"
	"github.com/dtroode/identity-merge/internal/mocks"
)

func TestMetricsServer_ServesRegistry(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	sec := mocks.NewSecurityLayer(t)
	sec.On("Listen", "tcp", ":9090").Return(ln, nil)

	metrics.MergeHookFailures.Add(0)

	s := NewMetricsServer(":9090")
	assert.Equal(t, ":9090", s.Address())

	errCh := make(chan error, 1)
	go func() { errCh <- s.Start(sec) }()

	var body []byte
	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/metrics")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, err = io.ReadAll(resp.Body)
		return err == nil && resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)
	assert.Contains(t, string(body), "identity_merge_hook_failures_total")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
	assert.NoError(t, <-errCh)
}

func TestMetricsServer_ListenFailure(t *testing.T) {
	sec := mocks.NewSecurityLayer(t)
	sec.On("Listen", "tcp", mock.Anything).Return(nil, assert.AnError)

	err := NewMetricsServer(":0").Start(sec)
	assert.ErrorIs(t, err, assert.AnError)
}
