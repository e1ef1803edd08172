package quote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/nirajd/backend-pasal/internal/obs"
)

// Exporter delivers quotation export documents to the external renderer.
// Rendering itself (PDF, WhatsApp) happens on the other side of the URL;
// this side only guarantees delivery, with asynq handling retries.
type Exporter struct {
	Store       store
	RendererURL string
	HTTP        *http.Client
	Logger      *zerolog.Logger
}

// HandleExport processes one quote:export task.
func (e *Exporter) HandleExport(ctx context.Context, task *asynq.Task) error {
	var payload ExportPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decode export payload: %w", err)
	}
	q, err := e.Store.GetByID(ctx, payload.QuoteID)
	if err != nil {
		return fmt.Errorf("load quotation %s: %w", payload.QuoteID, err)
	}

	doc := ExportDocument{Quotation: q, Document: "quotation-pdf"}
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode export document: %w", err)
	}

	start := time.Now()
	err = e.deliver(ctx, body)
	result := "ok"
	if err != nil {
		result = "error"
	}
	if obs.QuoteExportsTotal != nil {
		obs.QuoteExportsTotal.WithLabelValues(result).Inc()
	}
	if obs.QuoteExportLatency != nil {
		obs.QuoteExportLatency.WithLabelValues(result).Observe(obs.DurationMillis(time.Since(start)))
	}
	if err != nil {
		if e.Logger != nil {
			e.Logger.Error().Err(err).Str("quote_id", q.ID).Msg("export delivery failed")
		}
		return err
	}
	if e.Logger != nil {
		e.Logger.Info().Str("quote_id", q.ID).Msg("export delivered")
	}
	return nil
}

func (e *Exporter) deliver(ctx context.Context, body []byte) error {
	if e.RendererURL == "" {
		return fmt.Errorf("renderer url not configured")
	}
	client := e.HTTP
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.RendererURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build renderer request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("post to renderer: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("renderer responded %d", resp.StatusCode)
	}
	return nil
}
