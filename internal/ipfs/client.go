// Package ipfs uploads token images and metadata documents to an IPFS
// pinning service, producing the URI the on-chain metadata points at.
package ipfs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"solana-token-forge/internal/domain"
)

const (
	DefaultBaseURL = "https://api.pinata.cloud"
	DefaultGateway = "https://gateway.pinata.cloud/ipfs"

	defaultTimeout = 60 * time.Second
)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the pinning API endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithGateway overrides the gateway prefix used in returned URIs.
func WithGateway(u string) Option {
	return func(c *Client) { c.gateway = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// Client talks to a Pinata-compatible pinning API.
type Client struct {
	baseURL string
	gateway string
	jwt     string
	http    *http.Client
}

// NewClient creates a Client authenticating with the given JWT.
func NewClient(jwt string, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		gateway: DefaultGateway,
		jwt:     jwt,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UploadResult is a pinned object: its content hash and gateway URI.
type UploadResult struct {
	Hash string
	URI  string
}

type pinResponse struct {
	IpfsHash string `json:"IpfsHash"`
}

// UploadFile pins raw file bytes (typically the token image) and returns
// its gateway URI.
func (c *Client) UploadFile(ctx context.Context, name string, data []byte) (*UploadResult, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", name)
	if err != nil {
		return nil, fmt.Errorf("build multipart: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("build multipart: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("build multipart: %w", err)
	}

	return c.pin(ctx, "/pinning/pinFileToIPFS", &body, w.FormDataContentType())
}

// Document is the off-chain metadata JSON the on-chain URI points at.
type Document struct {
	Name        string            `json:"name"`
	Symbol      string            `json:"symbol"`
	Description string            `json:"description,omitempty"`
	Image       string            `json:"image,omitempty"`
	Attributes  []Attribute       `json:"attributes,omitempty"`
	Extensions  map[string]string `json:"extensions,omitempty"` // websites, socials
}

// Attribute is one display trait of the document.
type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// BuildDocument assembles the off-chain document for a request, wiring the
// already-pinned image URI in.
func BuildDocument(req *domain.MintRequest, imageURI string) Document {
	return Document{
		Name:        req.Name,
		Symbol:      req.Symbol,
		Description: req.Description,
		Image:       imageURI,
	}
}

// UploadDocument pins the metadata document as JSON and returns its
// gateway URI for the on-chain metadata.
func (c *Client) UploadDocument(ctx context.Context, doc Document) (*UploadResult, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"pinataContent": doc,
		"pinataMetadata": map[string]string{
			"name": doc.Symbol + "-metadata.json",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}

	return c.pin(ctx, "/pinning/pinJSONToIPFS", bytes.NewReader(payload), "application/json")
}

func (c *Client) pin(ctx context.Context, path string, body io.Reader, contentType string) (*UploadResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+c.jwt)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pin request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("pin request: status %d: %s", resp.StatusCode, raw)
	}

	var pr pinResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("decode pin response: %w", err)
	}
	if pr.IpfsHash == "" {
		return nil, fmt.Errorf("pin response missing hash")
	}

	return &UploadResult{
		Hash: pr.IpfsHash,
		URI:  c.gateway + "/" + pr.IpfsHash,
	}, nil
}
