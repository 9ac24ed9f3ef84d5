package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/MuckRock/textract-table-extractor-add-on/internal/models"
)

// Client talks to the DocumentCloud API and implements DocumentStore,
// CreditLedger and RunReporter. Page rasters come from the asset host
// named by each document's asset_url, not the API host, and are fetched
// with a shorter timeout.
type Client struct {
	baseURL     string
	token       string
	client      *http.Client
	assetClient *http.Client
}

func NewClient(baseURL, token string, imageTimeout time.Duration) *Client {
	if imageTimeout <= 0 {
		imageTimeout = 20 * time.Second
	}
	return &Client{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		token:       token,
		client:      &http.Client{Timeout: 60 * time.Second},
		assetClient: &http.Client{Timeout: imageTimeout},
	}
}

func (c *Client) GetDocuments(ctx context.Context, ids []int64) ([]models.Document, error) {
	docs := make([]models.Document, 0, len(ids))
	for _, id := range ids {
		doc, err := c.getDocument(ctx, id)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (c *Client) getDocument(ctx context.Context, id int64) (models.Document, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/documents/%d/", c.baseURL, id))
	if err != nil {
		return models.Document{}, fmt.Errorf("fetch document %d: %w", id, err)
	}
	var parsed struct {
		ID        int64  `json:"id"`
		Slug      string `json:"slug"`
		Title     string `json:"title"`
		PageCount int    `json:"page_count"`
		AssetURL  string `json:"asset_url"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return models.Document{}, fmt.Errorf("decode document %d: %w", id, err)
	}
	return models.Document{
		ID:        parsed.ID,
		Slug:      parsed.Slug,
		Title:     parsed.Title,
		PageCount: parsed.PageCount,
		AssetURL:  parsed.AssetURL,
	}, nil
}

// GetPageImage fetches "{asset_url}documents/{id}/pages/{slug}-p{page}-large.gif".
// The asset host serves public buckets without auth, so no token goes out.
func (c *Client) GetPageImage(ctx context.Context, doc models.Document, page int) ([]byte, error) {
	url := fmt.Sprintf("%sdocuments/%d/pages/%s-p%d-large.gif", doc.AssetURL, doc.ID, doc.Slug, page)
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	resp, err := c.assetClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page image %d of document %d: %w", page, doc.ID, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("page image %d of document %d error %d", page, doc.ID, resp.StatusCode)
	}
	return body, nil
}

func (c *Client) ChargeCredits(ctx context.Context, organization int64, amount int, note string) error {
	payload, _ := json.Marshal(map[string]any{
		"ai_credits": amount,
		"note":       note,
	})
	url := fmt.Sprintf("%s/organizations/%d/ai_credits/", c.baseURL, organization)
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("charge credits request failed: %w", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return fmt.Errorf("charge credits error %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

func (c *Client) SetMessage(ctx context.Context, runUUID, message string) error {
	payload, _ := json.Marshal(map[string]string{"message": message})
	url := fmt.Sprintf("%s/addon_runs/%s/", c.baseURL, runUUID)
	req, _ := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(payload))
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("set run message: %w", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return fmt.Errorf("set run message error %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// UploadFile is the platform's three step result upload: ask the run
// endpoint for a presigned URL, PUT the bytes there, then record the
// file name on the run.
func (c *Client) UploadFile(ctx context.Context, runUUID, name string, r io.Reader, size int64) error {
	body, err := c.get(ctx, fmt.Sprintf("%s/addon_runs/%s/?upload_file=%s", c.baseURL, runUUID, name))
	if err != nil {
		return fmt.Errorf("request upload url: %w", err)
	}
	var parsed struct {
		PresignedURL string `json:"presigned_url"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fmt.Errorf("decode upload url: %w", err)
	}
	if parsed.PresignedURL == "" {
		return fmt.Errorf("platform returned no upload url for %s", name)
	}

	putReq, err := http.NewRequestWithContext(ctx, http.MethodPut, parsed.PresignedURL, r)
	if err != nil {
		return fmt.Errorf("build upload request: %w", err)
	}
	putReq.ContentLength = size
	resp, err := c.client.Do(putReq)
	if err != nil {
		return fmt.Errorf("upload %s: %w", name, err)
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return fmt.Errorf("upload %s error %d: %s", name, resp.StatusCode, string(respBody))
	}

	payload, _ := json.Marshal(map[string]string{"file_name": name})
	patchReq, _ := http.NewRequestWithContext(ctx, http.MethodPatch, fmt.Sprintf("%s/addon_runs/%s/", c.baseURL, runUUID), bytes.NewReader(payload))
	c.authorize(patchReq)
	patchReq.Header.Set("Content-Type", "application/json")
	patchResp, err := c.client.Do(patchReq)
	if err != nil {
		return fmt.Errorf("record upload: %w", err)
	}
	defer patchResp.Body.Close()
	patchBody, _ := io.ReadAll(patchResp.Body)
	if patchResp.StatusCode >= 400 {
		return fmt.Errorf("record upload error %d: %s", patchResp.StatusCode, string(patchBody))
	}
	return nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	c.authorize(req)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("error %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
