package fetch_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pricewatch/internal/fetch"
)

const trailingLD = `<script type="application/ld+json">{"@type":"Product","sku":"BIG-1"}</script></body></html>`

// 11 MiB of filler puts the JSON-LD block past colly's default body cap.
var bigPage = "<html><body><p>" + strings.Repeat("x", 11<<20) + "</p>" + trailingLD

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>ua=" + r.Header.Get("User-Agent") + "</html>"))
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/accepted", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte("later"))
	})
	mux.HandleFunc("/big", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(bigPage))
	})
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte("too late"))
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func TestFetchOK(t *testing.T) {
	ts := newTestServer(t)
	f := fetch.New("")

	body, ok := f.Fetch(ts.URL + "/ok")
	if !ok {
		t.Fatal("want ok for 200")
	}
	if string(body) != "<html>ua=Mozilla/5.0</html>" {
		t.Fatalf("unexpected body %q", body)
	}

	// same URL again: the fetcher must not dedupe visits
	if _, ok := f.Fetch(ts.URL + "/ok"); !ok {
		t.Fatal("revisit should fetch again")
	}
}

func TestFetchNon200IsAbsent(t *testing.T) {
	ts := newTestServer(t)
	f := fetch.New(fetch.DefaultUserAgent)

	for _, path := range []string{"/missing", "/accepted"} {
		body, ok := f.Fetch(ts.URL + path)
		if ok || body != nil {
			t.Fatalf("%s: want absent result, got ok=%v body=%q", path, ok, body)
		}
	}
}

func TestFetchNetworkErrorIsAbsent(t *testing.T) {
	ts := newTestServer(t)
	url := ts.URL + "/ok"
	ts.Close()

	if _, ok := fetch.New("").Fetch(url); ok {
		t.Fatal("closed server should give no data")
	}
	if _, ok := fetch.New("").Fetch("not a url"); ok {
		t.Fatal("bad url should give no data")
	}
}

func TestFetchLargePageIsComplete(t *testing.T) {
	ts := newTestServer(t)

	body, ok := fetch.New("").Fetch(ts.URL + "/big")
	if !ok {
		t.Fatal("want ok for 200")
	}
	if len(body) != len(bigPage) {
		t.Fatalf("body truncated: got %d bytes, want %d", len(body), len(bigPage))
	}
	if !bytes.HasSuffix(body, []byte(trailingLD)) {
		t.Fatal("trailing JSON-LD block missing")
	}
}

func TestFetchTimeoutIsAbsent(t *testing.T) {
	ts := newTestServer(t)

	f := fetch.New("").WithTimeout(50 * time.Millisecond)
	if body, ok := f.Fetch(ts.URL + "/slow"); ok || body != nil {
		t.Fatalf("slow response should time out, got ok=%v body=%q", ok, body)
	}
	if _, ok := f.Fetch(ts.URL + "/ok"); !ok {
		t.Fatal("fast response should still succeed")
	}
}
