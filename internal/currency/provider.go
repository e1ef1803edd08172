package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// RateProvider fetches a USD-based exchange rate table from an upstream
// source.
type RateProvider interface {
	Rates(ctx context.Context) (Table, error)
}

// HTTPProvider pulls rates from a JSON endpoint shaped like the open.er-api
// responses: {"result":"success","rates":{"USD":1,"NPR":132.5,...}}.
type HTTPProvider struct {
	BaseURL string
	Client  *http.Client
}

type ratesResponse struct {
	Result string             `json:"result"`
	Rates  map[string]float64 `json:"rates"`
}

// Rates fetches and filters the upstream table down to the supported set.
func (p HTTPProvider) Rates(ctx context.Context) (Table, error) {
	client := p.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build rates request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch rates: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch rates: unexpected status %d", resp.StatusCode)
	}
	var payload ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode rates: %w", err)
	}
	if len(payload.Rates) == 0 {
		return nil, fmt.Errorf("rates payload empty (result=%q)", payload.Result)
	}
	table := make(Table, len(supported))
	for _, info := range supported {
		if rate, ok := payload.Rates[info.Code]; ok && rate > 0 {
			table[info.Code] = rate
		}
	}
	table["USD"] = 1
	return table, nil
}

// StaticProvider returns a fixed table. Useful for tests and local
// development without network access.
type StaticProvider Table

// Rates returns a copy of the static table.
func (p StaticProvider) Rates(ctx context.Context) (Table, error) {
	_ = ctx
	table := make(Table, len(p))
	for code, rate := range p {
		table[code] = rate
	}
	return table, nil
}
