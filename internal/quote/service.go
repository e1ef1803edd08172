package quote

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/nirajd/backend-pasal/internal/catalog"
	"github.com/nirajd/backend-pasal/internal/common"
	"github.com/nirajd/backend-pasal/internal/currency"
	"github.com/nirajd/backend-pasal/internal/obs"
	"github.com/nirajd/backend-pasal/internal/pricing"
)

// Quotation is a computed, persisted price quote for one item and one
// selection snapshot. TotalUSD keeps the raw figure (negative totals pass
// through); DisplayTotal is the charm-rounded, currency-converted string.
type Quotation struct {
	ID           string         `json:"id"`
	ItemID       string         `json:"itemId"`
	ItemSlug     string         `json:"itemSlug"`
	ItemTitle    string         `json:"itemTitle"`
	Quantity     int            `json:"quantity"`
	Currency     string         `json:"currency"`
	Lines        []pricing.Line `json:"lines"`
	TotalUSD     float64        `json:"totalUsd"`
	DisplayTotal string         `json:"displayTotal"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// Request is the quote computation payload. Selections reference the stable
// category and option keys of the item; anything unknown degrades to zero
// contribution rather than failing.
type Request struct {
	ItemSlug  string              `json:"itemSlug" validate:"required"`
	Quantity  int                 `json:"quantity"`
	Currency  string              `json:"currency"`
	Exclusive map[string]string   `json:"exclusive"`
	Additive  map[string][]string `json:"additive"`
}

// itemSource provides catalog items for quoting.
type itemSource interface {
	Get(ctx context.Context, slug string) (catalog.Item, error)
}

// currencySource resolves rates and the session's display currency.
type currencySource interface {
	Rates(ctx context.Context) currency.Table
	Preference(ctx context.Context, sessionID string) currency.Info
}

// store persists quotations.
type store interface {
	Insert(ctx context.Context, q Quotation) error
	GetByID(ctx context.Context, id string) (Quotation, error)
}

// ErrQuoteNotFound is returned when no quotation matches the lookup.
var ErrQuoteNotFound = errors.New("quotation not found")

// Service computes and persists quotations.
type Service struct {
	Items    itemSource
	Currency currencySource
	Store    store

	validate *validator.Validate
}

// NewService constructs a quote Service.
func NewService(items itemSource, cur currencySource, store store) *Service {
	return &Service{Items: items, Currency: cur, Store: store, validate: validator.New()}
}

// Build computes a quotation for the request and persists it. The sessionID
// is only consulted when the request names no currency.
func (s *Service) Build(ctx context.Context, sessionID string, req Request) (Quotation, error) {
	if err := s.validate.Struct(req); err != nil {
		return Quotation{}, common.BadRequest("invalid quote request", err.Error())
	}
	item, err := s.Items.Get(ctx, strings.TrimSpace(req.ItemSlug))
	if err != nil {
		return Quotation{}, err
	}

	sel := pricing.NewSelection(item.Categories)
	for catKey, optKey := range req.Exclusive {
		sel.SelectExclusive(catKey, optKey)
	}
	for catKey, optKeys := range req.Additive {
		for _, optKey := range optKeys {
			sel.ToggleAdditive(catKey, optKey)
		}
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}
	total := pricing.TotalUSD(item.PricedItem(), sel, quantity)

	info, ok := currency.Lookup(req.Currency)
	if !ok {
		if strings.TrimSpace(req.Currency) != "" {
			return Quotation{}, common.BadRequest("unsupported currency", map[string]string{"currency": req.Currency})
		}
		info = s.Currency.Preference(ctx, sessionID)
	}
	rates := s.Currency.Rates(ctx)

	q := Quotation{
		ID:           uuid.NewString(),
		ItemID:       item.ID,
		ItemSlug:     item.Slug,
		ItemTitle:    item.Title,
		Quantity:     quantity,
		Currency:     info.Code,
		Lines:        sel.Lines(item.Categories),
		TotalUSD:     total,
		DisplayTotal: currency.Display(total, info, rates),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Store.Insert(ctx, q); err != nil {
		if obs.QuotesComputedTotal != nil {
			obs.QuotesComputedTotal.WithLabelValues(info.Code, "error").Inc()
		}
		return Quotation{}, fmt.Errorf("persist quotation: %w", err)
	}
	if obs.QuotesComputedTotal != nil {
		obs.QuotesComputedTotal.WithLabelValues(info.Code, "ok").Inc()
	}
	return q, nil
}

// Get returns a stored quotation by id.
func (s *Service) Get(ctx context.Context, id string) (Quotation, error) {
	q, err := s.Store.GetByID(ctx, id)
	if errors.Is(err, ErrQuoteNotFound) {
		return Quotation{}, common.NotFound("quotation not found")
	}
	if err != nil {
		return Quotation{}, fmt.Errorf("get quotation: %w", err)
	}
	return q, nil
}
