package listings

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"exitlens/pkg/models"
)

func pageServer(t *testing.T, total int, requests *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*requests++
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

		n := limit
		if offset+n > total {
			n = total - offset
		}
		if n < 0 {
			n = 0
		}
		page := models.ListingsPage{
			Results:   make([]models.ListingRecord, n),
			Remaining: total - offset - n,
		}
		for i := range page.Results {
			page.Results[i] = models.ListingRecord{ID: fmt.Sprintf("l-%d", offset+i), Price: 1000}
		}
		json.NewEncoder(w).Encode(page)
	}))
}

func testClient(ts *httptest.Server) *Client {
	c := NewClient(ts.URL, "key", nil)
	c.HTTP = ts.Client()
	return c
}

func TestFetchAllPaginates(t *testing.T) {
	requests := 0
	ts := pageServer(t, 250, &requests)
	defer ts.Close()

	got, err := testClient(ts).FetchAll(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 250 {
		t.Errorf("records: got %d, want 250", len(got))
	}
	if requests != 3 {
		t.Errorf("requests: got %d, want 3 (stop on short page)", requests)
	}
}

func TestFetchAllStopsOnRemainingZero(t *testing.T) {
	requests := 0
	ts := pageServer(t, 100, &requests)
	defer ts.Close()

	got, err := testClient(ts).FetchAll(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 100 {
		t.Errorf("records: got %d, want 100", len(got))
	}
	if requests != 1 {
		t.Errorf("requests: got %d, want 1 (remaining==0 on first page)", requests)
	}
}

func TestFetchAllRespectsPageCap(t *testing.T) {
	// upstream that never signals completion
	requests := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		page := models.ListingsPage{
			Results:   make([]models.ListingRecord, 100),
			Remaining: 99999,
		}
		json.NewEncoder(w).Encode(page)
	}))
	defer ts.Close()

	c := testClient(ts)
	c.MaxPages = 5

	got, err := c.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if requests != 5 {
		t.Errorf("requests: got %d, want 5 (page cap)", requests)
	}
	if len(got) != 500 {
		t.Errorf("records: got %d, want 500", len(got))
	}
}

func TestFetchAllErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	if _, err := testClient(ts).FetchAll(context.Background()); err == nil {
		t.Error("non-200 status should error")
	}
}

func TestFetchAllSendsAuth(t *testing.T) {
	var auth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(models.ListingsPage{})
	}))
	defer ts.Close()

	if _, err := testClient(ts).FetchAll(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if auth != "Bearer key" {
		t.Errorf("auth header: got %q", auth)
	}
}
