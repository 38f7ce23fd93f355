package service_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"csaweb/internal/api/api"
	"csaweb/internal/backend"
	"csaweb/internal/dto"
	"csaweb/internal/model"
	"csaweb/internal/service"
	"csaweb/internal/session"
)

// fakeBackend stands in for the external REST API. Each handler records how
// often it was hit and the last request body it saw, so tests can assert
// that client-side validation really prevented a backend call.
type fakeBackend struct {
	t   *testing.T
	mux *http.ServeMux
	srv *httptest.Server

	mu       sync.Mutex
	hits     map[string]int
	lastBody map[string][]byte
	lastAuth map[string]string
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{
		t:        t,
		mux:      http.NewServeMux(),
		hits:     map[string]int{},
		lastBody: map[string][]byte{},
		lastAuth: map[string]string{},
	}
	fb.srv = httptest.NewServer(fb.mux)
	t.Cleanup(fb.srv.Close)
	return fb
}

// handle registers a canned JSON response for a method+path pattern.
func (f *fakeBackend) handle(pattern string, status int, body any) {
	f.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := json.Marshal(body)
		f.record(pattern, r)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write(raw)
	})
}

// handleFunc registers a dynamic handler that still records hits.
func (f *fakeBackend) handleFunc(pattern string, fn http.HandlerFunc) {
	f.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		f.record(pattern, r)
		fn(w, r)
	})
}

func (f *fakeBackend) record(pattern string, r *http.Request) {
	body := make([]byte, 0)
	if r.Body != nil {
		buf := make([]byte, 1<<16)
		n, _ := r.Body.Read(buf)
		body = buf[:n]
	}
	f.mu.Lock()
	f.hits[pattern]++
	f.lastBody[pattern] = body
	f.lastAuth[pattern] = r.Header.Get("Authorization")
	f.mu.Unlock()
}

func (f *fakeBackend) count(pattern string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[pattern]
}

func (f *fakeBackend) body(pattern string) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastBody[pattern]
}

func (f *fakeBackend) auth(pattern string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastAuth[pattern]
}

type testApp struct {
	router   http.Handler
	sessions *session.Store
	backend  *fakeBackend
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	fb := newFakeBackend(t)
	client := backend.NewClient(fb.srv.URL, 5*time.Second)
	store := session.NewStore(time.Hour)
	logger := zerolog.Nop()
	svc := service.NewService(client, store, &logger, nil)
	router := api.NewRouters(&api.Routers{Service: svc})
	return &testApp{router: router, sessions: store, backend: fb}
}

// loginAs seeds a session and returns the cookie to attach to requests.
func (a *testApp) loginAs(token string, user model.User) *http.Cookie {
	sid := a.sessions.Create(token, user)
	return &http.Cookie{Name: service.SessionCookie, Value: sid}
}

func (a *testApp) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// decode unwraps the response envelope.
func decode(t *testing.T, rec *httptest.ResponseRecorder) (dto.Response, json.RawMessage) {
	t.Helper()
	var resp struct {
		Status string          `json:"status"`
		Error  *dto.Error      `json:"error,omitempty"`
		Data   json.RawMessage `json:"data,omitempty"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response envelope: %v (body=%s)", err, rec.Body.String())
	}
	return dto.Response{Status: resp.Status, Error: resp.Error}, resp.Data
}

func openEvent(id string) model.Event {
	return model.Event{
		ID:                 id,
		Title:              "کارگاه برنامه‌نویسی",
		Date:               time.Now().Add(72 * time.Hour),
		Capacity:           50,
		RegisteredCount:    10,
		IsFree:             true,
		RegistrationStatus: model.WindowOpen,
	}
}
