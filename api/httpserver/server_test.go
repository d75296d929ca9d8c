package httpserver

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"arbor/bstree"
	"arbor/infra/sequence"
	"arbor/service"
)

func newTestServer() *httptest.Server {
	tree := bstree.New[string, string](bstree.Ordered[string]())
	svc := service.NewStoreService(tree, sequence.New(0), nil, nil)
	return httptest.NewServer(NewServer(svc).Router())
}

func doInsert(t *testing.T, ts *httptest.Server, key, payload string) *http.Response {
	t.Helper()
	body := strings.NewReader(`{"key":"` + key + `","payload":"` + payload + `"}`)
	resp, err := http.Post(ts.URL+"/insert", "application/json", body)
	if err != nil {
		t.Fatalf("insert %s: %v", key, err)
	}
	return resp
}

func TestInsertAndSearch(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp := doInsert(t, ts, "alpha", "one")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("insert status = %d", resp.StatusCode)
	}
	var created map[string]uint64
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode insert response: %v", err)
	}
	resp.Body.Close()
	if created["seq"] != 1 {
		t.Errorf("seq = %d, want 1", created["seq"])
	}

	resp, err := http.Get(ts.URL + "/search/alpha")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("search status = %d", resp.StatusCode)
	}
	var got map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got["payload"] != "one" {
		t.Errorf("payload = %q", got["payload"])
	}
}

func TestSearchMissIs404(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/search/nope")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestDelete(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()
	doInsert(t, ts, "alpha", "one").Body.Close()

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/delete/alpha", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}
	var got map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got["payload"] != "one" {
		t.Errorf("payload = %q", got["payload"])
	}

	resp2, _ := http.DefaultClient.Do(req)
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", resp2.StatusCode)
	}
}

func TestLenAndDump(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()
	doInsert(t, ts, "b", "two").Body.Close()
	doInsert(t, ts, "a", "one").Body.Close()

	resp, err := http.Get(ts.URL + "/len")
	if err != nil {
		t.Fatal(err)
	}
	var ln map[string]int
	json.NewDecoder(resp.Body).Decode(&ln)
	resp.Body.Close()
	if ln["len"] != 2 {
		t.Errorf("len = %d, want 2", ln["len"])
	}

	resp, err = http.Get(ts.URL + "/dump?order=inorder")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	want := "Key: a\nPayload: one\nKey: b\nPayload: two\n"
	if string(body) != want {
		t.Errorf("dump = %q, want %q", body, want)
	}
}

func TestDumpRejectsBadOrder(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/dump?order=sideways")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
