package monitor

import (
	"context"
	"log/slog"

	"github.com/henrychenn0702-cmd/alaska-flight-monitor/services/filters"
	"github.com/henrychenn0702-cmd/alaska-flight-monitor/services/recipients"
)

// FilterStore supplies the filter snapshot a cycle matches against.
// An unavailable store degrades to an empty snapshot, never an error:
// a cycle with no filters is a no-op, not a failure.
type FilterStore interface {
	GetActiveFilters(ctx context.Context) []filters.Filter
}

// RecipientStore supplies the addresses deal notifications go to,
// with the same degrade-to-empty contract as FilterStore.
type RecipientStore interface {
	GetActiveRecipients(ctx context.Context) []string
}

type filterStore struct {
	svc filters.Service
}

func NewFilterStore(svc filters.Service) FilterStore {
	return filterStore{svc: svc}
}

func (s filterStore) GetActiveFilters(ctx context.Context) []filters.Filter {
	snapshot, err := s.svc.Active(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "get active filters", "err", err)
		return nil
	}
	return snapshot
}

type recipientStore struct {
	svc recipients.Service
}

func NewRecipientStore(svc recipients.Service) RecipientStore {
	return recipientStore{svc: svc}
}

func (s recipientStore) GetActiveRecipients(ctx context.Context) []string {
	addrs, err := s.svc.Active(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "get active recipients", "err", err)
		return nil
	}
	return addrs
}
