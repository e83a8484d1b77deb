// Package extraction talks to the external OCR/LLM webhook that turns a
// scanned invoice PDF into a structured line-item document, and cleans up
// the webhook's permissive JSON before the core ever sees it.
package extraction

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/raxj06/Sales-Report-Generator/internal/common"
	"github.com/raxj06/Sales-Report-Generator/internal/entity"
)

// Client posts invoice documents to the extraction webhook and decodes the
// response. It is safe for concurrent use.
type Client struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &Client{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// wireResult mirrors Result but keeps quantity as a float so the decode
// tolerates "120.0" style numbers that already passed schema validation.
type wireResult struct {
	InvoiceNumber string     `json:"invoice_number"`
	InvoiceDate   string     `json:"invoice_date"`
	PartyName     string     `json:"party_name"`
	LineItems     []wireItem `json:"line_items"`
}

type wireItem struct {
	SKU          string  `json:"sku"`
	Description  string  `json:"description"`
	HSNCode      string  `json:"hsn_code"`
	Quantity     float64 `json:"quantity"`
	Rate         float64 `json:"rate"`
	TaxableValue float64 `json:"taxable_value"`
	TaxAmount    float64 `json:"tax_amount"`
}

// Extract sends the document to the webhook, then sanitizes, validates,
// and decodes the returned JSON. The raw response body is returned even on
// failure so callers can persist it for debugging.
func (c *Client) Extract(ctx context.Context, doc Document) (*Result, []byte, error) {
	if c.url == "" {
		return nil, nil, common.NewAppError("EXTRACTION_CONFIG", "webhook URL is not configured", common.ErrInvalidInput)
	}

	reqID := uuid.New().String()
	start := time.Now()

	body := map[string]any{
		"filename":       doc.Filename,
		"content_base64": base64.StdEncoding.EncodeToString(doc.Content),
	}
	bs, err := json.Marshal(body)
	if err != nil {
		return nil, nil, fmt.Errorf("encode json: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(bs))
	if err != nil {
		return nil, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Info("extraction.http.request",
		"req_id", reqID,
		"url", c.url,
		"filename", doc.Filename,
		"content_length", len(bs),
	)

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("extraction.http.send_error", "req_id", reqID, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		// an unreachable webhook is an upstream failure, same as a non-2xx
		return nil, nil, common.NewAppError("EXTRACTION_UNREACHABLE", "webhook request failed",
			fmt.Errorf("%v: %w", err, common.ErrExternal))
	}
	defer func(Body io.ReadCloser) {
		if cerr := Body.Close(); cerr != nil {
			c.logger.Warn("extraction.http.response_body_close_error", "req_id", reqID, "error", cerr)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)

	c.logger.Info("extraction.http.response",
		"req_id", reqID,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode/100 != 2 {
		return nil, raw, common.NewAppError("EXTRACTION_STATUS",
			fmt.Sprintf("webhook returned status %d", resp.StatusCode), common.ErrExternal)
	}

	result, err := DecodeResult(raw, c.logger)
	if err != nil {
		return nil, raw, err
	}
	return result, raw, nil
}

// DecodeResult sanitizes, validates, and decodes an extraction payload.
// Shared by the webhook client and the CLI path that reads a saved payload
// from disk.
func DecodeResult(raw []byte, logger *slog.Logger) (*Result, error) {
	clean, warnings, err := NormalizeAndSanitizeJSON(raw, logger)
	if err != nil {
		return nil, common.NewAppError("EXTRACTION_PAYLOAD", "undecodable webhook payload",
			fmt.Errorf("%v: %w", err, common.ErrExternal))
	}
	if err := ValidateJSONAgainstSchema(BuildInvoiceJSONSchema(), clean); err != nil {
		return nil, common.NewAppError("EXTRACTION_SCHEMA", "webhook payload failed validation",
			fmt.Errorf("%v: %w", err, common.ErrExternal))
	}

	var wire wireResult
	if err := json.Unmarshal(clean, &wire); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}

	res := &Result{
		InvoiceNumber: wire.InvoiceNumber,
		InvoiceDate:   wire.InvoiceDate,
		PartyName:     wire.PartyName,
		LineItems:     make([]entity.LineItem, 0, len(wire.LineItems)),
		Warnings:      warnings,
	}
	for _, it := range wire.LineItems {
		res.LineItems = append(res.LineItems, entity.LineItem{
			SKU:          it.SKU,
			Description:  it.Description,
			HSNCode:      it.HSNCode,
			Quantity:     int(it.Quantity),
			Rate:         it.Rate,
			TaxableValue: it.TaxableValue,
			TaxAmount:    it.TaxAmount,
		})
	}
	return res, nil
}
