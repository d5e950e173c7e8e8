package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"envmanager/internal/api"
	"envmanager/internal/logging"
)

type backend struct {
	runtimeStatus int
	runtimeBody   string
	envsStatus    int
	envsBody      string

	mu         sync.Mutex
	requestIDs []string
}

func (b *backend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(api.RuntimePath, func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		w.WriteHeader(b.runtimeStatus)
		_, _ = w.Write([]byte(b.runtimeBody))
	})
	mux.HandleFunc(api.EnvironmentsPath, func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		w.WriteHeader(b.envsStatus)
		_, _ = w.Write([]byte(b.envsBody))
	})
	mux.HandleFunc(api.VersionPath, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("0.1.0\n"))
	})
	return mux
}

func (b *backend) record(r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requestIDs = append(b.requestIDs, r.Header.Get(RequestIDHeader))
}

func (b *backend) ids() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requestIDs...)
}

func newTestClient(t *testing.T, b *backend) *Client {
	t.Helper()
	srv := httptest.NewServer(b.handler())
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, logging.Discard())
	require.NoError(t, err)
	return c
}

const okRuntime = `{"runtime":{"python_version":"3.11.9"},"gpu_environment":{"gpus":[]},"comfy_env_version":"0.1.0"}`
const okEnvs = `{"node_environments":[{"node_name":"a","has_config":true}],"cache_dir":"/c","cache_envs":[]}`

func TestFetchStatus_BothSucceed(t *testing.T) {
	b := &backend{runtimeStatus: 200, runtimeBody: okRuntime, envsStatus: 200, envsBody: okEnvs}
	c := newTestClient(t, b)

	status, err := c.FetchStatus(context.Background(), "req-1")
	require.NoError(t, err)

	require.True(t, status.Runtime.OK())
	assert.Equal(t, "3.11.9", status.Runtime.Data.Runtime.PythonVersion)
	require.True(t, status.Environments.OK())
	assert.Len(t, status.Environments.Data.NodeEnvironments, 1)

	assert.ElementsMatch(t, []string{"req-1", "req-1"}, b.ids())
}

func TestFetchStatus_RuntimeErrorIsSectionScoped(t *testing.T) {
	b := &backend{
		runtimeStatus: http.StatusServiceUnavailable,
		runtimeBody:   `{"error":"comfy_env not installed. Install with: pip install comfy-env"}`,
		envsStatus:    200,
		envsBody:      okEnvs,
	}
	c := newTestClient(t, b)

	status, err := c.FetchStatus(context.Background(), "")
	require.NoError(t, err)

	assert.False(t, status.Runtime.OK())
	require.NotNil(t, status.Runtime.Failure)
	assert.Equal(t, http.StatusServiceUnavailable, status.Runtime.StatusCode)
	assert.Contains(t, status.Runtime.Failure.Error, "comfy_env not installed")
	assert.True(t, status.Environments.OK())
}

func TestFetchStatus_UnstructuredErrorBody(t *testing.T) {
	b := &backend{runtimeStatus: 500, runtimeBody: "<html>Internal Server Error</html>", envsStatus: 502, envsBody: ""}
	c := newTestClient(t, b)

	status, err := c.FetchStatus(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "Failed to fetch", status.Runtime.Failure.Error)
	assert.Equal(t, "Failed to fetch", status.Environments.Failure.Error)
}

func TestFetchStatus_UndecodableSuccessIsTransportError(t *testing.T) {
	b := &backend{runtimeStatus: 200, runtimeBody: "not json", envsStatus: 200, envsBody: okEnvs}
	c := newTestClient(t, b)

	_, err := c.FetchStatus(context.Background(), "")
	require.Error(t, err)
	assert.True(t, IsTransport(err))

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, api.RuntimePath, te.Path)
}

func TestFetchStatus_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(url, logging.Discard())
	require.NoError(t, err)

	_, err = c.FetchStatus(context.Background(), "")
	require.Error(t, err)
	assert.True(t, IsTransport(err))
}

func TestFetchStatus_RequestsRunConcurrently(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(2)
	release := make(chan struct{})

	mux := http.NewServeMux()
	slow := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, _ *http.Request) {
			wg.Done()
			<-release
			_, _ = w.Write([]byte(body))
		}
	}
	mux.HandleFunc(api.RuntimePath, slow(okRuntime))
	mux.HandleFunc(api.EnvironmentsPath, slow(okEnvs))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	// Both handlers must be entered before either may finish.
	go func() {
		wg.Wait()
		close(release)
	}()

	c, err := New(srv.URL, logging.Discard(), WithTimeout(5*time.Second))
	require.NoError(t, err)

	status, err := c.FetchStatus(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, status.Runtime.OK())
	assert.True(t, status.Environments.OK())
}

func TestVersion(t *testing.T) {
	c := newTestClient(t, &backend{})

	v, err := c.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0.1.0", v)
}

func TestNew_InvalidBaseURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:8188", "://bad"} {
		_, err := New(raw, logging.Discard())
		assert.Error(t, err, raw)
	}
}

func TestNew_BasePathIsKept(t *testing.T) {
	c, err := New("http://host:8188/comfy/", logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, "http://host:8188/comfy", c.BaseURL())
}
