package quote_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nirajd/backend-pasal/internal/catalog"
	"github.com/nirajd/backend-pasal/internal/common"
	"github.com/nirajd/backend-pasal/internal/currency"
	"github.com/nirajd/backend-pasal/internal/pricing"
	"github.com/nirajd/backend-pasal/internal/quote"
)

type fakeItems struct {
	items map[string]catalog.Item
}

func (f fakeItems) Get(_ context.Context, slug string) (catalog.Item, error) {
	item, ok := f.items[slug]
	if !ok {
		return catalog.Item{}, common.NotFound("item not found")
	}
	return item, nil
}

type fakeCurrency struct {
	rates currency.Table
	pref  string
}

func (f fakeCurrency) Rates(_ context.Context) currency.Table {
	if f.rates == nil {
		return currency.Identity()
	}
	return f.rates
}

func (f fakeCurrency) Preference(_ context.Context, _ string) currency.Info {
	code := f.pref
	if code == "" {
		code = "USD"
	}
	info, _ := currency.Lookup(code)
	return info
}

type fakeQuoteStore struct {
	quotes map[string]quote.Quotation
}

func newFakeQuoteStore() *fakeQuoteStore {
	return &fakeQuoteStore{quotes: map[string]quote.Quotation{}}
}

func (f *fakeQuoteStore) Insert(_ context.Context, q quote.Quotation) error {
	f.quotes[q.ID] = q
	return nil
}

func (f *fakeQuoteStore) GetByID(_ context.Context, id string) (quote.Quotation, error) {
	q, ok := f.quotes[id]
	if !ok {
		return quote.Quotation{}, quote.ErrQuoteNotFound
	}
	return q, nil
}

func businessStarter() catalog.Item {
	return catalog.Item{
		ID:        "item-1",
		Slug:      "business-starter",
		Kind:      catalog.KindPackage,
		Title:     "Business Starter",
		BasePrice: "",
		Categories: []pricing.Category{
			{
				Key:   "cat-license",
				Title: "License",
				Mode:  pricing.ModeExclusive,
				Options: []pricing.Option{
					{Key: "opt-single", Name: "Single Site", Price: "150 USD"},
					{Key: "opt-five", Name: "Five Sites", Price: "250 USD"},
					{Key: "opt-unlimited", Name: "Unlimited", Price: "350 USD"},
				},
			},
			{
				Key:   "cat-extras",
				Title: "Additional Services",
				Mode:  pricing.ModeAdditive,
				Options: []pricing.Option{
					{Key: "opt-install", Name: "Installation", Price: "+30 USD"},
					{Key: "opt-seo", Name: "SEO Setup", Price: "+50 USD"},
				},
			},
		},
	}
}

func newTestService(items map[string]catalog.Item, cur fakeCurrency) (*quote.Service, *fakeQuoteStore) {
	store := newFakeQuoteStore()
	svc := quote.NewService(fakeItems{items: items}, cur, store)
	return svc, store
}

func TestBuildExclusivePlusAdditive(t *testing.T) {
	svc, store := newTestService(
		map[string]catalog.Item{"business-starter": businessStarter()},
		fakeCurrency{},
	)

	q, err := svc.Build(context.Background(), "", quote.Request{
		ItemSlug:  "business-starter",
		Quantity:  2,
		Currency:  "USD",
		Exclusive: map[string]string{"cat-license": "opt-five"},
		Additive:  map[string][]string{"cat-extras": {"opt-install"}},
	})
	require.NoError(t, err)
	require.Equal(t, 560.0, q.TotalUSD)
	require.Equal(t, "$559", q.DisplayTotal)
	require.Len(t, q.Lines, 2)
	require.Equal(t, []string{"Five Sites"}, q.Lines[0].Options)

	stored, err := store.GetByID(context.Background(), q.ID)
	require.NoError(t, err)
	require.Equal(t, q.TotalUSD, stored.TotalUSD)
}

func TestBuildDefaultsToFirstExclusiveOption(t *testing.T) {
	svc, _ := newTestService(
		map[string]catalog.Item{"business-starter": businessStarter()},
		fakeCurrency{},
	)

	q, err := svc.Build(context.Background(), "", quote.Request{
		ItemSlug: "business-starter",
		Currency: "USD",
	})
	require.NoError(t, err)
	require.Equal(t, 150.0, q.TotalUSD)
}

func TestBuildUsesPreferenceWhenCurrencyOmitted(t *testing.T) {
	svc, _ := newTestService(
		map[string]catalog.Item{"business-starter": businessStarter()},
		fakeCurrency{pref: "NPR", rates: currency.Table{"NPR": 132.5}},
	)

	q, err := svc.Build(context.Background(), "session-9", quote.Request{
		ItemSlug:  "business-starter",
		Exclusive: map[string]string{"cat-license": "opt-single"},
	})
	require.NoError(t, err)
	require.Equal(t, "NPR", q.Currency)
	// 150 * 132.5 = 19875 → charm rounds to 19879, grouped.
	require.Equal(t, "रू19,879", q.DisplayTotal)
}

func TestBuildNegativeTotalPassthrough(t *testing.T) {
	item := catalog.Item{
		ID:        "item-2",
		Slug:      "promo-package",
		Title:     "Promo",
		BasePrice: "50 USD",
		Categories: []pricing.Category{{
			Key:  "cat-deal",
			Mode: pricing.ModeExclusive,
			Options: []pricing.Option{
				{Key: "opt-rebate", Name: "Promo Rebate", Price: "-100 USD"},
			},
		}},
	}
	svc, _ := newTestService(map[string]catalog.Item{"promo-package": item}, fakeCurrency{})

	q, err := svc.Build(context.Background(), "", quote.Request{ItemSlug: "promo-package", Currency: "USD"})
	require.NoError(t, err)
	require.Equal(t, -50.0, q.TotalUSD)
	require.Equal(t, "$0", q.DisplayTotal)
}

func TestBuildRejectsUnsupportedCurrency(t *testing.T) {
	svc, _ := newTestService(
		map[string]catalog.Item{"business-starter": businessStarter()},
		fakeCurrency{},
	)
	_, err := svc.Build(context.Background(), "", quote.Request{ItemSlug: "business-starter", Currency: "BTC"})
	require.Error(t, err)
	require.True(t, common.IsAppError(err))
}

func TestBuildUnknownItem(t *testing.T) {
	svc, _ := newTestService(map[string]catalog.Item{}, fakeCurrency{})
	_, err := svc.Build(context.Background(), "", quote.Request{ItemSlug: "ghost", Currency: "USD"})
	require.Error(t, err)
}
