package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nirajd/backend-pasal/internal/common"
	"github.com/nirajd/backend-pasal/internal/pricing"
)

// store abstracts the persistence layer so handlers can be tested against a
// fake.
type store interface {
	List(ctx context.Context, p ListParams) ([]Item, error)
	Count(ctx context.Context, p ListParams) (int64, error)
	GetBySlug(ctx context.Context, slug string) (Item, error)
	Insert(ctx context.Context, item Item) error
	Update(ctx context.Context, item Item) error
	Delete(ctx context.Context, slug string) error
}

// Service orchestrates catalog queries, input normalisation, and caching.
type Service struct {
	store        store
	cache        *Cache
	validate     *validator.Validate
	defaultLimit int
	maxLimit     int
	logger       *zerolog.Logger
}

// ServiceConfig groups Service dependencies.
type ServiceConfig struct {
	Store        store
	Cache        *Cache
	DefaultLimit int
	MaxLimit     int
	Logger       *zerolog.Logger
}

// NewService constructs a Service instance.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Store == nil {
		return nil, errors.New("catalog: store is required")
	}
	defaultLimit := cfg.DefaultLimit
	if defaultLimit < 1 {
		defaultLimit = 20
	}
	maxLimit := cfg.MaxLimit
	if maxLimit < 1 {
		maxLimit = 100
	}
	if defaultLimit > maxLimit {
		defaultLimit = maxLimit
	}
	return &Service{
		store:        cfg.Store,
		cache:        cfg.Cache,
		validate:     validator.New(),
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
		logger:       cfg.Logger,
	}, nil
}

// ItemInput captures admin payloads for creating or updating an item.
type ItemInput struct {
	Slug        string          `json:"slug" validate:"required,min=2,max=120"`
	Kind        string          `json:"kind" validate:"required,oneof=package plugin"`
	Title       string          `json:"title" validate:"required,min=2,max=200"`
	Description string          `json:"description" validate:"max=5000"`
	BasePrice   string          `json:"basePrice" validate:"max=64"`
	Categories  []CategoryInput `json:"pricingCategories" validate:"dive"`
}

// CategoryInput is one pricing category in an admin payload.
type CategoryInput struct {
	Key     string        `json:"key"`
	Title   string        `json:"title" validate:"required,max=200"`
	Mode    string        `json:"mode" validate:"omitempty,oneof=exclusive additive"`
	Options []OptionInput `json:"options" validate:"dive"`
}

// OptionInput is one priced option in an admin payload.
type OptionInput struct {
	Key   string `json:"key"`
	Name  string `json:"name" validate:"required,max=200"`
	Price string `json:"price" validate:"max=64"`
}

// ParseListParams normalises raw query values into typed filters.
func (s *Service) ParseListParams(values url.Values) (ListParams, error) {
	params := ListParams{Page: 1, Limit: s.defaultLimit}
	params.Query = strings.TrimSpace(values.Get("q"))
	params.Kind = strings.TrimSpace(values.Get("kind"))
	if params.Kind != "" && params.Kind != KindPackage && params.Kind != KindPlugin {
		return params, common.BadRequest("kind must be package or plugin", map[string]string{"kind": params.Kind})
	}
	if v := strings.TrimSpace(values.Get("page")); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return params, common.BadRequest("page must be a positive integer", nil)
		}
		params.Page = page
	}
	if v := strings.TrimSpace(values.Get("limit")); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			return params, common.BadRequest("limit must be a positive integer", nil)
		}
		params.Limit = limit
	}
	if params.Limit > s.maxLimit {
		params.Limit = s.maxLimit
	}
	return params, nil
}

// List returns items and the total row count.
func (s *Service) List(ctx context.Context, params ListParams) ([]Item, int64, error) {
	items, err := s.store.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	total, err := s.store.Count(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}
	return items, total, nil
}

// Get fetches one item by slug, consulting the cache first.
func (s *Service) Get(ctx context.Context, slug string) (Item, error) {
	var cached Item
	if hit, err := s.cache.GetItem(ctx, slug, &cached); err == nil && hit {
		return cached, nil
	} else if err != nil && s.logger != nil {
		s.logger.Warn().Err(err).Str("slug", slug).Msg("catalog cache read failed")
	}
	item, err := s.store.GetBySlug(ctx, slug)
	if errors.Is(err, ErrItemNotFound) {
		return Item{}, common.NotFound("item not found")
	}
	if err != nil {
		return Item{}, fmt.Errorf("get item: %w", err)
	}
	if err := s.cache.SetItem(ctx, item); err != nil && s.logger != nil {
		s.logger.Warn().Err(err).Str("slug", slug).Msg("catalog cache write failed")
	}
	return item, nil
}

// Create validates, normalises, and stores a new item.
func (s *Service) Create(ctx context.Context, input ItemInput) (Item, error) {
	if err := s.validate.Struct(input); err != nil {
		return Item{}, common.BadRequest("invalid item payload", err.Error())
	}
	item := Item{
		ID:          uuid.NewString(),
		Slug:        strings.TrimSpace(input.Slug),
		Kind:        input.Kind,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		BasePrice:   strings.TrimSpace(input.BasePrice),
		Categories:  normalizeCategories(input.Categories),
	}
	if err := s.store.Insert(ctx, item); err != nil {
		return Item{}, fmt.Errorf("create item: %w", err)
	}
	return item, nil
}

// Update validates and rewrites an existing item.
func (s *Service) Update(ctx context.Context, slug string, input ItemInput) (Item, error) {
	if err := s.validate.Struct(input); err != nil {
		return Item{}, common.BadRequest("invalid item payload", err.Error())
	}
	item := Item{
		Slug:        slug,
		Kind:        input.Kind,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		BasePrice:   strings.TrimSpace(input.BasePrice),
		Categories:  normalizeCategories(input.Categories),
	}
	err := s.store.Update(ctx, item)
	if errors.Is(err, ErrItemNotFound) {
		return Item{}, common.NotFound("item not found")
	}
	if err != nil {
		return Item{}, fmt.Errorf("update item: %w", err)
	}
	if err := s.cache.Invalidate(ctx, slug); err != nil && s.logger != nil {
		s.logger.Warn().Err(err).Str("slug", slug).Msg("catalog cache invalidation failed")
	}
	return s.Get(ctx, slug)
}

// Delete removes an item by slug.
func (s *Service) Delete(ctx context.Context, slug string) error {
	err := s.store.Delete(ctx, slug)
	if errors.Is(err, ErrItemNotFound) {
		return common.NotFound("item not found")
	}
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if err := s.cache.Invalidate(ctx, slug); err != nil && s.logger != nil {
		s.logger.Warn().Err(err).Str("slug", slug).Msg("catalog cache invalidation failed")
	}
	return nil
}

// normalizeCategories converts admin input into stored categories, generating
// stable keys for new entries and backfilling the selection mode from the
// legacy title convention when the payload does not state one.
func normalizeCategories(inputs []CategoryInput) []pricing.Category {
	categories := make([]pricing.Category, 0, len(inputs))
	for _, in := range inputs {
		cat := pricing.Category{
			Key:   strings.TrimSpace(in.Key),
			Title: strings.TrimSpace(in.Title),
			Mode:  pricing.Mode(in.Mode),
		}
		if cat.Key == "" {
			cat.Key = uuid.NewString()
		}
		if cat.Mode != pricing.ModeExclusive && cat.Mode != pricing.ModeAdditive {
			cat.Mode = pricing.ModeFromTitle(cat.Title)
		}
		cat.Options = make([]pricing.Option, 0, len(in.Options))
		for _, opt := range in.Options {
			key := strings.TrimSpace(opt.Key)
			if key == "" {
				key = uuid.NewString()
			}
			cat.Options = append(cat.Options, pricing.Option{
				Key:   key,
				Name:  strings.TrimSpace(opt.Name),
				Price: strings.TrimSpace(opt.Price),
			})
		}
		categories = append(categories, cat)
	}
	return categories
}
