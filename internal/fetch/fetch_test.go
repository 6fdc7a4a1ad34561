package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rmcnab/motorsales/internal/cache"
)

const fixturePage = "<html><body>search results</body></html>"

func newClient(t *testing.T, baseURL string, now time.Time) *Client {
	t.Helper()
	return New(cache.New(t.TempDir()), now, Config{
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
	})
}

func TestClient_Page_FetchesAndCaches(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		hits.Add(1)
		_, _ = w.Write([]byte(fixturePage))
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, time.Now())
	q := Query{Make: "Ford", Model: "Fiesta", Postcode: "SW1A1AA", Page: "2"}

	first, err := c.Page(context.Background(), q)
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}
	if first != fixturePage {
		t.Errorf("unexpected body %q", first)
	}
	if hits.Load() != 1 {
		t.Fatalf("expected 1 request, got %d", hits.Load())
	}

	// Same query within the hour bucket: served from cache, byte
	// identical, no second request.
	second, err := c.Page(context.Background(), q)
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}
	if second != first {
		t.Error("cached content not byte-identical")
	}
	if hits.Load() != 1 {
		t.Errorf("expected cached response, server saw %d requests", hits.Load())
	}
}

func TestClient_Page_QueryParamsAndHeaders(t *testing.T) {
	var gotQuery string
	var gotAccept, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.RawQuery
		gotAccept = r.Header.Get("Accept")
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(fixturePage))
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, time.Now())
	_, err := c.Page(context.Background(), Query{
		Make: "Ford", Model: "Fiesta", Postcode: "SW1A1AA", Page: "3",
	})
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}

	for _, want := range []string{"make=Ford", "model=Fiesta", "postcode=SW1A1AA", "page=3"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("query %q missing %q", gotQuery, want)
		}
	}
	if gotAccept != "text/html" {
		t.Errorf("Accept = %q, want text/html", gotAccept)
	}
	if !strings.Contains(gotUA, "Chrome") {
		t.Errorf("User-Agent %q should identify as a browser", gotUA)
	}
}

func TestClient_Page_OmitsEmptyPageParam(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(fixturePage))
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, time.Now())
	_, err := c.Page(context.Background(), Query{Make: "Ford", Model: "Fiesta", Postcode: "SW1A1AA"})
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}

	if strings.Contains(gotQuery, "page=") {
		t.Errorf("unpaginated request should omit page param, got %q", gotQuery)
	}
}

func TestClient_Page_NonSuccessIsFatal(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		hits.Add(1)
		http.Error(w, "blocked", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, time.Now())
	q := Query{Make: "Ford", Model: "Fiesta", Postcode: "SW1A1AA"}

	_, err := c.Page(context.Background(), q)

	var failure *FetchFailureError
	if !errors.As(err, &failure) {
		t.Fatalf("expected *FetchFailureError, got %v", err)
	}
	if failure.Status != http.StatusServiceUnavailable {
		t.Errorf("Status = %d, want %d", failure.Status, http.StatusServiceUnavailable)
	}

	// Failed responses are never cached: a retry goes back to the
	// server.
	_, _ = c.Page(context.Background(), q)
	if hits.Load() != 2 {
		t.Errorf("expected failed fetch to bypass cache, server saw %d requests", hits.Load())
	}
}
