package news

import (
	"context"
	"fmt"

	"github.com/Semior001/newsview/pkg/logx"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

//go:generate moq -out mock_source.go . Source

// Source provides raw response bodies of the news endpoint.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// Service retrieves and normalizes article lists.
type Service struct {
	log        *slog.Logger
	src        Source
	normalizer Normalizer
}

// NewService creates new service.
func NewService(lg *slog.Logger, src Source, normalizer Normalizer) *Service {
	return &Service{log: lg, src: src, normalizer: normalizer}
}

// List fetches the article list once and normalizes it.
// The returned error either is a *FetchError or wraps ErrUnexpectedFormat.
func (s *Service) List(ctx context.Context) (Page, error) {
	if _, ok := logx.RequestIDFromContext(ctx); !ok {
		ctx = logx.ContextWithRequestID(ctx, uuid.New().String())
	}

	body, err := s.src.Fetch(ctx)
	if err != nil {
		return Page{}, err
	}

	page, err := s.normalizer.NormalizePage(body)
	if err != nil {
		return Page{}, fmt.Errorf("normalize response: %w", err)
	}

	s.log.InfoCtx(ctx, "articles retrieved",
		slog.Int("count", len(page.Articles)),
		slog.Int("dropped", page.Dropped),
	)

	return page, nil
}
