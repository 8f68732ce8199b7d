package services

import (
	"context"

	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	"github.com/finbooks/bookkeeping_app/internal/dto"
)

// JournalReaderSvc defines read operations on journal entries.
type JournalReaderSvc interface {
	GetEntryWithLines(ctx context.Context, companyID, entryID, requestingUserID string) (*domain.JournalEntry, []domain.TransactionLine, error)
	ListEntries(ctx context.Context, companyID string, limit int, nextToken *string, requestingUserID string) ([]domain.JournalEntry, *string, error)
}

// JournalWriterSvc defines write operations on journal entries.
type JournalWriterSvc interface {
	// CreateEntry validates a draft entry through the posting engine and, on
	// success, persists entry, lines and balance changes atomically.
	CreateEntry(ctx context.Context, companyID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// ReverseEntry posts a mirror-image entry and links the pair; the
	// original is marked REVERSED.
	ReverseEntry(ctx context.Context, companyID, entryID, requestingUserID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces.
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
