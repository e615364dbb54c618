// Package httpapi exposes the transaction builder over JSON HTTP.
// Handlers stay thin: decode, delegate to the service, map the error
// taxonomy to a status code.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"

	"github.com/shopspring/decimal"

	"solana-token-forge/internal/domain"
	"solana-token-forge/internal/ipfs"
	"solana-token-forge/internal/observability"
	"solana-token-forge/internal/service"
)

// maxUploadBytes caps the multipart form size, image included.
const maxUploadBytes = 10 << 20

// Handler holds the HTTP surface of the service.
type Handler struct {
	svc    *service.Service
	pins   *ipfs.Client
	logger *log.Logger
}

// NewHandler creates a Handler. A nil pins client disables multipart
// image uploads on the create endpoints.
func NewHandler(svc *service.Service, pins *ipfs.Client, logger *log.Logger) *Handler {
	return &Handler{svc: svc, pins: pins, logger: logger}
}

// Register mounts all routes on the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/token/create-transaction", h.handleCreate(domain.TokenProgramClassic))
	mux.HandleFunc("/api/token/create-token2022-transaction", h.handleCreate(domain.TokenProgram2022))
	mux.HandleFunc("/api/token/preview-address", h.handlePreviewAddress)
	mux.HandleFunc("/api/token/token2022-extensions", h.handleExtensions)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", observability.Handler())
}

// distributionInput is the wire form of one distribution entry.
type distributionInput struct {
	Recipient  string          `json:"recipient"`
	Percentage decimal.Decimal `json:"percentage"`
}

// createTransactionRequest is the wire form of a build request.
type createTransactionRequest struct {
	Payer         string              `json:"payer"`
	Recipient     string              `json:"recipient,omitempty"`
	Distributions []distributionInput `json:"distributions,omitempty"`

	Amount   decimal.Decimal `json:"amount"`
	Decimals uint8           `json:"decimals"`

	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Description string `json:"description,omitempty"`
	MetadataURI string `json:"metadataUri,omitempty"`

	RoyaltyBasisPoints uint16 `json:"royaltyBasisPoints,omitempty"`
	MintAuthority      string `json:"mintAuthority,omitempty"`

	Extensions []string `json:"extensions,omitempty"`
	Priority   string   `json:"priority,omitempty"`

	AddressPrefix string `json:"addressPrefix,omitempty"`
	AddressSuffix string `json:"addressSuffix,omitempty"`

	RevokeFreezeAuthority bool `json:"revokeFreezeAuthority,omitempty"`
	RevokeMintAuthority   bool `json:"revokeMintAuthority,omitempty"`
	RevokeUpdateAuthority bool `json:"revokeUpdateAuthority,omitempty"`
}

func (r *createTransactionRequest) toDomain(program domain.TokenProgram) domain.MintRequest {
	dists := make([]domain.DistributionInput, len(r.Distributions))
	for i, d := range r.Distributions {
		dists[i] = domain.DistributionInput{Recipient: d.Recipient, Percentage: d.Percentage}
	}
	return domain.MintRequest{
		Payer:                 r.Payer,
		Recipient:             r.Recipient,
		Distributions:         dists,
		Amount:                r.Amount,
		Decimals:              r.Decimals,
		Name:                  r.Name,
		Symbol:                r.Symbol,
		Description:           r.Description,
		MetadataURI:           r.MetadataURI,
		RoyaltyBasisPoints:    r.RoyaltyBasisPoints,
		MintAuthority:         r.MintAuthority,
		TokenProgram:          program,
		Extensions:            r.Extensions,
		Priority:              domain.PriorityLevel(r.Priority),
		AddressPrefix:         r.AddressPrefix,
		AddressSuffix:         r.AddressSuffix,
		RevokeFreezeAuthority: r.RevokeFreezeAuthority,
		RevokeMintAuthority:   r.RevokeMintAuthority,
		RevokeUpdateAuthority: r.RevokeUpdateAuthority,
	}
}

func (h *Handler) handleCreate(program domain.TokenProgram) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "POST required")
			return
		}

		var req createTransactionRequest
		ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if ct == "multipart/form-data" {
			if !h.decodeMultipart(w, r, &req) {
				return
			}
		} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
			return
		}

		env, err := h.svc.CreateTransaction(r.Context(), req.toDomain(program))
		if err != nil {
			h.logger.Printf("create-transaction failed: %v", err)
			writeError(w, statusFor(err), err.Error())
			return
		}
		writeJSON(w, http.StatusOK, env)
	}
}

// decodeMultipart handles the multipart form of a create request: a
// "request" field carrying the JSON payload plus an optional "image" file.
// The image and the off-chain metadata document are pinned to IPFS and the
// document URI replaces the request's metadataUri. Reports false after
// writing an error response.
func (h *Handler) decodeMultipart(w http.ResponseWriter, r *http.Request, req *createTransactionRequest) bool {
	if h.pins == nil {
		writeError(w, http.StatusNotImplemented, "image uploads are not configured")
		return false
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return false
	}
	if err := json.Unmarshal([]byte(r.FormValue("request")), req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request field: "+err.Error())
		return false
	}

	uri, err := h.pinMetadata(r, req)
	if err != nil {
		h.logger.Printf("metadata upload failed: %v", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return false
	}
	req.MetadataURI = uri
	return true
}

// pinMetadata pins the uploaded image (when present) and the metadata
// document pointing at it, returning the document's gateway URI.
func (h *Handler) pinMetadata(r *http.Request, req *createTransactionRequest) (string, error) {
	imageURI := ""
	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		defer file.Close()
		data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
		if err != nil {
			return "", fmt.Errorf("read image: %w", err)
		}
		pinned, err := h.pins.UploadFile(r.Context(), header.Filename, data)
		if err != nil {
			return "", fmt.Errorf("pin image: %w", err)
		}
		imageURI = pinned.URI
	case !errors.Is(err, http.ErrMissingFile):
		return "", fmt.Errorf("read image: %w", err)
	}

	doc := ipfs.BuildDocument(&domain.MintRequest{
		Name:        req.Name,
		Symbol:      req.Symbol,
		Description: req.Description,
	}, imageURI)
	pinned, err := h.pins.UploadDocument(r.Context(), doc)
	if err != nil {
		return "", fmt.Errorf("pin metadata document: %w", err)
	}
	return pinned.URI, nil
}

// previewAddressResponse reports a sample vanity match. The keypair behind
// it is discarded server-side.
type previewAddressResponse struct {
	Address  string `json:"address"`
	Attempts uint64 `json:"attempts"`
}

func (h *Handler) handlePreviewAddress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}

	prefix := r.URL.Query().Get("prefix")
	suffix := r.URL.Query().Get("suffix")
	if prefix == "" && suffix == "" {
		writeError(w, http.StatusBadRequest, "prefix or suffix required")
		return
	}

	addr, attempts, err := h.svc.PreviewAddress(r.Context(), prefix, suffix)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, previewAddressResponse{Address: addr, Attempts: attempts})
}

func (h *Handler) handleExtensions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"extensions": h.svc.Extensions()})
}

// statusFor maps taxonomy sentinels to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrEmptyDistribution),
		errors.Is(err, domain.ErrDistributionPercentage):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, domain.ErrAddressGenerationTimeout):
		return http.StatusRequestTimeout
	case errors.Is(err, domain.ErrNetworkUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
