package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"genfs/internal/genfs"
	"genfs/internal/httpapi"
	"genfs/internal/testutil"
)

func do(t *testing.T, srv *httptest.Server, method, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRouter_EndToEnd(t *testing.T) {
	svc, _ := testutil.NewTestService(t, genfs.Options{})
	srv := httptest.NewServer(httpapi.NewRouter(&httpapi.Deps{Files: svc}))
	defer srv.Close()

	for _, p := range []string{"src/button.tsx", "src/page.tsx"} {
		resp := do(t, srv, http.MethodPut, "/api/apps/demo/files/"+p, httpapi.WriteFileRequest{Content: "// " + p})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("PUT %s status = %d", p, resp.StatusCode)
		}
	}

	if resp := do(t, srv, http.MethodPost, "/api/apps/demo/references", httpapi.ReferenceRequest{Src: "src/page.tsx", Dest: "src/button.tsx"}); resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST references status = %d", resp.StatusCode)
	}

	resp := do(t, srv, http.MethodPut, "/api/apps/demo/files/src/button.tsx", httpapi.WriteFileRequest{Content: "// v2"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT status = %d", resp.StatusCode)
	}
	var written httpapi.WriteResponse
	if err := json.NewDecoder(resp.Body).Decode(&written); err != nil {
		t.Fatal(err)
	}
	if written.Version.Version != 2 {
		t.Errorf("version = %d, want 2", written.Version.Version)
	}
	if len(written.ImpactedFileIDs) != 1 {
		t.Errorf("impacted = %v, want the page", written.ImpactedFileIDs)
	}

	resp = do(t, srv, http.MethodGet, "/api/apps/demo/files/src/button.tsx", nil)
	var read httpapi.ReadFileResponse
	if err := json.NewDecoder(resp.Body).Decode(&read); err != nil {
		t.Fatal(err)
	}
	if read.Content != "// v2" || read.Encoding != "text" {
		t.Errorf("read = %+v", read)
	}

	resp = do(t, srv, http.MethodGet, "/api/apps/demo/tree", nil)
	var tree []*genfs.TreeNode
	if err := json.NewDecoder(resp.Body).Decode(&tree); err != nil {
		t.Fatal(err)
	}
	if len(tree) != 1 || tree[0].Name != "src" || len(tree[0].Children) != 2 {
		t.Errorf("tree = %+v", tree)
	}

	if resp := do(t, srv, http.MethodDelete, "/api/apps/demo/files/src/page.tsx", nil); resp.StatusCode != http.StatusNoContent {
		t.Errorf("DELETE status = %d", resp.StatusCode)
	}
	if resp := do(t, srv, http.MethodGet, "/api/apps/demo/files/src/page.tsx", nil); resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET after delete status = %d, want 404", resp.StatusCode)
	}
}

func TestRouter_PathsAreDecodedOnce(t *testing.T) {
	svc, _ := testutil.NewTestService(t, genfs.Options{})
	srv := httptest.NewServer(httpapi.NewRouter(&httpapi.Deps{Files: svc}))
	defer srv.Close()

	tests := []struct {
		name    string
		urlPath string // as sent, after /files/
		stored  string
	}{
		{"literal percent", url.PathEscape("100%.txt"), "100%.txt"},
		{"percent that looks like an escape", url.PathEscape("a%41.txt"), "a%41.txt"},
		{"space", url.PathEscape("my file.txt"), "my file.txt"},
		{"escaped slash", "dir%2Fx.txt", "dir/x.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/api/apps/demo/files/" + tt.urlPath

			resp := do(t, srv, http.MethodPut, target, httpapi.WriteFileRequest{Content: tt.stored})
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("PUT %s status = %d, want 200", target, resp.StatusCode)
			}
			var written httpapi.WriteResponse
			if err := json.NewDecoder(resp.Body).Decode(&written); err != nil {
				t.Fatal(err)
			}
			if written.File.Path != tt.stored {
				t.Errorf("stored path = %q, want %q", written.File.Path, tt.stored)
			}

			resp = do(t, srv, http.MethodGet, target, nil)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("GET %s status = %d, want 200", target, resp.StatusCode)
			}
			var read httpapi.ReadFileResponse
			if err := json.NewDecoder(resp.Body).Decode(&read); err != nil {
				t.Fatal(err)
			}
			if read.File.Path != tt.stored || read.Content != tt.stored {
				t.Errorf("read path = %q content = %q, want %q", read.File.Path, read.Content, tt.stored)
			}
		})
	}

	if _, err := svc.Read(context.Background(), "demo", "aA.txt"); !errors.Is(err, genfs.ErrNotFound) {
		t.Errorf("Read(aA.txt) error = %v, want ErrNotFound", err)
	}
}
