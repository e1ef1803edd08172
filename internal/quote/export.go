package quote

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// TaskTypeExport is the asynq task type for quotation export delivery.
const TaskTypeExport = "quote:export"

// ExportPayload is the asynq task payload: the worker reloads the quotation
// from storage so the task stays small and replayable.
type ExportPayload struct {
	QuoteID string `json:"quoteId"`
}

// NewExportTask builds the asynq task for a quotation export.
func NewExportTask(quoteID string) (*asynq.Task, error) {
	payload, err := json.Marshal(ExportPayload{QuoteID: quoteID})
	if err != nil {
		return nil, fmt.Errorf("encode export payload: %w", err)
	}
	return asynq.NewTask(TaskTypeExport, payload, asynq.MaxRetry(5)), nil
}

// ExportDocument is the payload POSTed to the external renderer: everything
// it needs to lay out a quotation PDF or WhatsApp message.
type ExportDocument struct {
	Quotation Quotation `json:"quotation"`
	Document  string    `json:"document"`
}
