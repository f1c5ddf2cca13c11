package app

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"astro/pkg/config"
	"astro/pkg/logger"
	"astro/pkg/middleware"

	"github.com/julienschmidt/httprouter"
)

type routes func(*httprouter.Router)

func (r routes) RegisterRoutes(router *httprouter.Router) { r(router) }

func newTestApplication(t *testing.T) *Application {
	t.Helper()
	cfg := config.FromEnv("test")
	cfg.Log = logger.Discard()
	cfg.CORSAllowedOrigins = []string{"https://astro.mv"}
	cfg.RequestTimeout = time.Second

	health := routes(func(r *httprouter.Router) {
		r.GET("/health", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	})
	api := routes(func(r *httprouter.Router) {
		r.GET("/api/reservations", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("[" + strings.Repeat(`{"id":1},`, 200) + `{"id":1}]`))
		})
		r.GET("/panic", func(http.ResponseWriter, *http.Request, httprouter.Params) {
			panic("boom")
		})
	})

	a := NewApplication(cfg)
	a.SetApp(health, api)
	return a
}

func TestApplication_Routes(t *testing.T) {
	srv := httptest.NewServer(newTestApplication(t).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected health 200, got %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/unknown")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
	if resp.Header.Get(middleware.RequestIDHeader) == "" {
		t.Error("expected request id on every app response")
	}

	resp, err = http.Get(srv.URL + "/panic")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected 500 after panic, got %d", resp.StatusCode)
	}
}

func TestApplication_CompressesResponses(t *testing.T) {
	srv := httptest.NewServer(newTestApplication(t).Handler())
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/reservations", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	// A transport that does not decompress transparently.
	client := &http.Client{Transport: &http.Transport{DisableCompression: true}}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.Header.Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected gzip response, got %q", resp.Header.Get("Content-Encoding"))
	}
	zr, err := gzip.NewReader(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	body, err := io.ReadAll(zr)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(body), `[{"id":1}`) {
		t.Errorf("unexpected body %q", string(body[:20]))
	}
}

func TestApplication_CORS(t *testing.T) {
	srv := httptest.NewServer(newTestApplication(t).Handler())
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/reservations", nil)
	req.Header.Set("Origin", "https://astro.mv")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "https://astro.mv" {
		t.Errorf("expected CORS header, got %q", got)
	}
}

func TestApplication_RunClosersInReverse(t *testing.T) {
	a := newTestApplication(t)

	var order []string
	a.OnShutdown("storage", func() error { order = append(order, "storage"); return nil })
	a.OnShutdown("events", func() error { order = append(order, "events"); return io.ErrClosedPipe })

	a.runClosers()
	a.runClosers()

	if strings.Join(order, ",") != "events,storage" {
		t.Errorf("unexpected close order %v", order)
	}
}
