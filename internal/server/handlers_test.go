package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ytbatch/internal/model"
	"ytbatch/internal/queue"
)

type fakeLister struct {
	page model.ChannelPage
	err  error

	gotURL   string
	gotToken string
}

func (f *fakeLister) ListChannelPage(_ context.Context, url, token string) (model.ChannelPage, error) {
	f.gotURL = url
	f.gotToken = token
	return f.page, f.err
}

type fakeDownloader struct {
	err error
}

func (f *fakeDownloader) Download(_ context.Context, url string, _ model.FormatSpec, _ string) (model.Downloaded, error) {
	if f.err != nil {
		return model.Downloaded{}, f.err
	}
	return model.Downloaded{Path: "/out/" + url, ID: url}, nil
}

func newTestServer(t *testing.T, lister ChannelLister, dl queue.Downloader) (*Server, *queue.Manager) {
	t.Helper()
	if lister == nil {
		lister = &fakeLister{}
	}
	if dl == nil {
		dl = &fakeDownloader{}
	}
	m := queue.NewManager(dl, t.TempDir())
	return New(lister, m, log.New(io.Discard, "", 0), "*"), m
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestChannelEndpoint(t *testing.T) {
	lister := &fakeLister{page: model.ChannelPage{
		Entries: []model.ChannelEntry{
			{URL: "https://www.youtube.com/watch?v=a", Title: "A"},
			{URL: "https://www.youtube.com/watch?v=b", Title: "B"},
		},
		NextPage: "10",
	}}
	s, _ := newTestServer(t, lister, nil)
	h := s.Handler()

	w := doJSON(t, h, http.MethodGet, "/api/channel?url=%40maker&page=10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "@maker", lister.gotURL)
	assert.Equal(t, "10", lister.gotToken)

	var page model.ChannelPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(t, page.Entries, 2)
	assert.Equal(t, "10", page.NextPage)
}

func TestChannelEndpointErrors(t *testing.T) {
	s, _ := newTestServer(t, &fakeLister{err: errors.New("channel does not exist")}, nil)
	h := s.Handler()

	w := doJSON(t, h, http.MethodGet, "/api/channel", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, h, http.MethodGet, "/api/channel?url=x", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "does not exist")
}

func TestQueueAddDeduplicatesAndValidates(t *testing.T) {
	s, m := newTestServer(t, nil, nil)
	h := s.Handler()

	w := doJSON(t, h, http.MethodPost, "/api/queue", queueAddRequest{
		URLs:   []string{"https://youtu.be/a\nhttps://youtu.be/b", "https://youtu.be/a", "not a url"},
		Format: "audio_mp3",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]int
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp["added"])
	assert.Equal(t, 2, resp["queued"])
	assert.Len(t, m.Snapshot(), 2)
}

func TestQueueAddRejectsBadInput(t *testing.T) {
	s, _ := newTestServer(t, nil, nil)
	h := s.Handler()

	w := doJSON(t, h, http.MethodPost, "/api/queue", queueAddRequest{URLs: nil, Format: "audio_mp3"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, h, http.MethodPost, "/api/queue", queueAddRequest{
		URLs: []string{"https://youtu.be/a"}, Format: "flac",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/queue", strings.NewReader("{nope"))
	w2 := httptest.NewRecorder()
	h.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusBadRequest, w2.Code)
}

func TestQueueRemoveAndClear(t *testing.T) {
	s, m := newTestServer(t, nil, nil)
	h := s.Handler()
	m.Enqueue([]string{"https://youtu.be/a", "https://youtu.be/b"}, model.FormatVideoBest)

	w := doJSON(t, h, http.MethodPost, "/api/queue/remove", queueRemoveRequest{URL: "https://youtu.be/a"})
	require.Equal(t, http.StatusOK, w.Code)
	var rm map[string]bool
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rm))
	assert.True(t, rm["removed"])

	w = doJSON(t, h, http.MethodPost, "/api/queue/clear", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cl map[string]int
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cl))
	assert.Equal(t, 1, cl["removed"])
	assert.Empty(t, m.Snapshot())
}

func TestRunEndpoint(t *testing.T) {
	s, m := newTestServer(t, nil, nil)
	h := s.Handler()
	m.Enqueue([]string{"https://youtu.be/a"}, model.FormatVideoBest)

	w := doJSON(t, h, http.MethodPost, "/api/run", runRequest{Workers: 2})
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["run_id"])

	require.NoError(t, m.Wait(context.Background()))

	items := m.Snapshot()
	require.Len(t, items, 1)
	assert.Equal(t, model.StatusDone, items[0].Status)
}

func TestRunWhileActiveConflicts(t *testing.T) {
	gate := make(chan struct{})
	dl := &gatedDownloader{gate: gate}
	s, m := newTestServer(t, nil, dl)
	h := s.Handler()
	m.Enqueue([]string{"https://youtu.be/a"}, model.FormatVideoBest)

	w := doJSON(t, h, http.MethodPost, "/api/run", runRequest{Workers: 1})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, h, http.MethodPost, "/api/run", runRequest{Workers: 1})
	assert.Equal(t, http.StatusConflict, w.Code)

	close(gate)
	require.NoError(t, m.Wait(context.Background()))
}

type gatedDownloader struct {
	gate chan struct{}
}

func (g *gatedDownloader) Download(ctx context.Context, url string, _ model.FormatSpec, _ string) (model.Downloaded, error) {
	select {
	case <-g.gate:
	case <-ctx.Done():
		return model.Downloaded{}, ctx.Err()
	}
	return model.Downloaded{Path: "/out/" + url}, nil
}

func TestStatusEndpoint(t *testing.T) {
	s, m := newTestServer(t, nil, nil)
	h := s.Handler()

	w := doJSON(t, h, http.MethodGet, "/api/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var empty struct {
		Active bool              `json:"active"`
		Items  []model.QueueItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &empty))
	assert.False(t, empty.Active)
	assert.NotNil(t, empty.Items)
	assert.Empty(t, empty.Items)

	m.Enqueue([]string{"https://youtu.be/a"}, model.FormatAudioOpus)
	w = doJSON(t, h, http.MethodGet, "/api/status", nil)
	var st struct {
		Items []model.QueueItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	require.Len(t, st.Items, 1)
	assert.Equal(t, model.StatusPending, st.Items[0].Status)
	assert.Equal(t, model.FormatAudioOpus, st.Items[0].Format)
}

func TestIndexServed(t *testing.T) {
	s, _ := newTestServer(t, nil, nil)
	h := s.Handler()

	w := doJSON(t, h, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "/api/status")

	w = doJSON(t, h, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORS(t *testing.T) {
	s, _ := newTestServer(t, nil, nil)
	h := s.Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	req.Header.Set("Origin", "https://example.com")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/queue", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	restricted := New(&fakeLister{}, queue.NewManager(&fakeDownloader{}, t.TempDir()),
		log.New(io.Discard, "", 0), "https://allowed.example")
	rh := restricted.Handler()

	req = httptest.NewRequest(http.MethodGet, "/api/status", nil)
	req.Header.Set("Origin", "https://denied.example")
	w = httptest.NewRecorder()
	rh.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
