package platform

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MuckRock/textract-table-extractor-add-on/internal/models"
)

func TestGetDocumentsPreservesOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("missing auth header, got %q", got)
		}
		switch r.URL.Path {
		case "/api/documents/7/":
			json.NewEncoder(w).Encode(map[string]any{
				"id": 7, "slug": "seven", "title": "Seven", "page_count": 3, "asset_url": "https://assets.example/",
			})
		case "/api/documents/3/":
			json.NewEncoder(w).Encode(map[string]any{
				"id": 3, "slug": "three", "title": "Three", "page_count": 9, "asset_url": "https://assets.example/",
			})
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api", "tok", 0)
	docs, err := c.GetDocuments(context.Background(), []int64{7, 3})
	if err != nil {
		t.Fatalf("get documents: %v", err)
	}
	if len(docs) != 2 || docs[0].ID != 7 || docs[1].ID != 3 {
		t.Fatalf("order not preserved: %+v", docs)
	}
	if docs[0].Slug != "seven" || docs[0].PageCount != 3 {
		t.Fatalf("unexpected document: %+v", docs[0])
	}
}

func TestGetDocumentsMissingDocIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok", 0)
	if _, err := c.GetDocuments(context.Background(), []int64{12}); err == nil {
		t.Fatal("expected error for missing document")
	}
}

func TestGetPageImage(t *testing.T) {
	raster := []byte("GIF89a fake raster")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/files/documents/42/pages/the-slug-p2-large.gif" {
			t.Errorf("unexpected asset path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		// Asset host requests carry no credentials.
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("unexpected auth header on asset fetch: %q", got)
		}
		w.Write(raster)
	}))
	defer srv.Close()

	c := NewClient("https://api.example", "tok", 0)
	doc := models.Document{ID: 42, Slug: "the-slug", PageCount: 5, AssetURL: srv.URL + "/files/"}
	got, err := c.GetPageImage(context.Background(), doc, 2)
	if err != nil {
		t.Fatalf("get page image: %v", err)
	}
	if string(got) != string(raster) {
		t.Fatalf("raster bytes mismatch: %q", got)
	}
}

func TestChargeCredits(t *testing.T) {
	var charged struct {
		AICredits int    `json:"ai_credits"`
		Note      string `json:"note"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/organizations/425/ai_credits/" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&charged); err != nil {
			t.Errorf("decode charge: %v", err)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok", 0)
	if err := c.ChargeCredits(context.Background(), 425, 20, "table extraction"); err != nil {
		t.Fatalf("charge: %v", err)
	}
	if charged.AICredits != 20 || charged.Note != "table extraction" {
		t.Fatalf("unexpected charge payload: %+v", charged)
	}
}

func TestChargeCreditsFailureIsOpaque(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"insufficient credits"}`, http.StatusPaymentRequired)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok", 0)
	err := c.ChargeCredits(context.Background(), 425, 1000, "table extraction")
	if err == nil {
		t.Fatal("expected charge error")
	}
	if !strings.Contains(err.Error(), "402") {
		t.Fatalf("expected status in error, got: %v", err)
	}
}

func TestSetMessage(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/addon_runs/run-uuid-1/" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode message: %v", err)
		}
		got = body.Message
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok", 0)
	if err := c.SetMessage(context.Background(), "run-uuid-1", "No organization to charge."); err != nil {
		t.Fatalf("set message: %v", err)
	}
	if got != "No organization to charge." {
		t.Fatalf("message not delivered: %q", got)
	}
}

func TestUploadFile(t *testing.T) {
	var (
		stored   []byte
		recorded string
	)
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/addon_runs/run-uuid-1/":
			if got := r.URL.Query().Get("upload_file"); got != "all_tables.zip" {
				t.Errorf("unexpected upload_file param: %q", got)
			}
			json.NewEncoder(w).Encode(map[string]string{
				"presigned_url": srv.URL + "/bucket/all_tables.zip",
			})
		case r.Method == http.MethodPut && r.URL.Path == "/bucket/all_tables.zip":
			var err error
			stored, err = io.ReadAll(r.Body)
			if err != nil {
				t.Errorf("read upload: %v", err)
			}
		case r.Method == http.MethodPatch && r.URL.Path == "/addon_runs/run-uuid-1/":
			var body struct {
				FileName string `json:"file_name"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("decode patch: %v", err)
			}
			recorded = body.FileName
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok", 0)
	payload := "PK zip bytes"
	err := c.UploadFile(context.Background(), "run-uuid-1", "all_tables.zip", strings.NewReader(payload), int64(len(payload)))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if string(stored) != payload {
		t.Fatalf("bucket got %q", stored)
	}
	if recorded != "all_tables.zip" {
		t.Fatalf("file name not recorded: %q", recorded)
	}
}
