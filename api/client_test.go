package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/trezcool/skillshare/core"
	"github.com/trezcool/skillshare/core/auth"
	"github.com/trezcool/skillshare/core/session"
)

type noopLogger struct{}

func (noopLogger) Enable(bool)                        {}
func (noopLogger) Debug(string, ...interface{})       {}
func (noopLogger) Info(string, ...interface{})        {}
func (noopLogger) Warn(string, ...interface{})        {}
func (noopLogger) Error(string, ...interface{})       {}
func (noopLogger) Fatal(msg string, _ ...interface{}) { panic(msg) }

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	conf := &core.Config{APIBaseURL: srv.URL, RequestTimeout: 5 * time.Second}
	return NewClient(conf, noopLogger{})
}

func TestClientLogin(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		var form auth.LoginForm
		_ = json.NewDecoder(r.Body).Decode(&form)
		if form.Username != "amina" || form.Password != "s3cret" {
			t.Errorf("unexpected form %+v", form)
		}
		_ = json.NewEncoder(w).Encode(auth.AuthResult{Token: "tok", UserID: 7, Username: "amina"})
	}))

	res, err := client.Login(context.Background(), "amina", "s3cret")
	if err != nil {
		t.Fatal(err)
	}
	if res.Token != "tok" || res.UserID != 7 {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestClientErrors(t *testing.T) {
	t.Run("json message", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"message": "username taken"}`))
		}))
		err := client.CheckUsername(context.Background(), "amina")
		if err == nil {
			t.Fatal("expected error")
		}
		if !IsStatus(err, http.StatusConflict) {
			t.Errorf("expected 409; got %v", err)
		}
		if err.Error() != "api: username taken" {
			t.Errorf("unexpected message %q", err.Error())
		}
	})

	t.Run("plain text message", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "internal error", http.StatusInternalServerError)
		}))
		err := client.CheckUsername(context.Background(), "amina")
		if !IsStatus(err, http.StatusInternalServerError) {
			t.Errorf("expected 500; got %v", err)
		}
		if err.Error() != "api: internal error" {
			t.Errorf("unexpected message %q", err.Error())
		}
	})

	t.Run("transport failure carries no status", func(t *testing.T) {
		conf := &core.Config{APIBaseURL: "http://127.0.0.1:1", RequestTimeout: time.Second}
		client := NewClient(conf, noopLogger{})
		err := client.CheckUsername(context.Background(), "amina")
		if err == nil {
			t.Fatal("expected error")
		}
		if code := core.ErrStatusCode(err); code != 0 {
			t.Errorf("expected no status; got %d", code)
		}
	})
}

func TestClientWithToken(t *testing.T) {
	var gotAuth []string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = append(gotAuth, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	}))

	authed := client.WithToken("tok123")
	if _, err := authed.Users(context.Background()); err != nil {
		t.Fatal(err)
	}
	// the base client stays anonymous
	if _, err := client.Users(context.Background()); err != nil {
		t.Fatal(err)
	}
	if gotAuth[0] != "Bearer tok123" {
		t.Errorf("expected bearer header; got %q", gotAuth[0])
	}
	if gotAuth[1] != "" {
		t.Errorf("expected anonymous request; got %q", gotAuth[1])
	}
}

func TestClientRequests(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/session-requests/teacher/7" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode([]session.Request{{ID: 1, Status: session.StatusPending}})
	}))

	reqs, err := client.IncomingRequests(context.Background(), 7)
	if err != nil {
		t.Fatal(err)
	}
	if len(reqs) != 1 || reqs[0].ID != 1 {
		t.Errorf("unexpected requests %+v", reqs)
	}
}

func TestClientRespondToRequest(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/session-requests/5/approve" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.URL.Query().Get("message"); got != "see you then" {
			t.Errorf("unexpected message %q", got)
		}
		_ = json.NewEncoder(w).Encode(session.Request{ID: 5, Status: session.StatusApproved})
	}))

	req, err := client.RespondToRequest(context.Background(), 5, session.StatusApproved, "see you then")
	if err != nil {
		t.Fatal(err)
	}
	if req.Status != session.StatusApproved {
		t.Errorf("unexpected request %+v", req)
	}

	if _, err = client.RespondToRequest(context.Background(), 5, "lol", ""); err == nil {
		t.Error("expected an error for an unsupported status")
	}
}
