package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finbooks/bookkeeping_app/internal/apperrors"
	"github.com/finbooks/bookkeeping_app/internal/core/accounting"
	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	"github.com/finbooks/bookkeeping_app/internal/core/ports"
	portsrepo "github.com/finbooks/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/bookkeeping_app/internal/core/ports/services"
	"github.com/finbooks/bookkeeping_app/internal/dto"
)

// journalService posts and reverses journal entries through the double-entry
// validation engine.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	companyRepo portsrepo.CompanyRepositoryFacade
	clock       ports.Clock
}

// NewJournalService creates a new JournalService.
func NewJournalService(
	journalRepo portsrepo.JournalRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	companyRepo portsrepo.CompanyRepositoryFacade,
	authorizer portssvc.CompanyAuthorizerSvc,
	clock ports.Clock,
) portssvc.JournalSvcFacade {
	return &journalService{
		BaseService: BaseService{CompanyAuthorizer: authorizer},
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		companyRepo: companyRepo,
		clock:       clock,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// fiscalYearOf labels the fiscal year containing a date. Companies whose
// fiscal year starts in January get the calendar year; otherwise dates before
// the start month belong to the previous label.
func fiscalYearOf(date time.Time, startMonth int) int {
	if startMonth <= 1 {
		return date.Year()
	}
	if int(date.Month()) >= startMonth {
		return date.Year()
	}
	return date.Year() - 1
}

// CreateEntry validates a draft entry against the double-entry rules and, on
// success, persists the entry, its lines and the net account balance changes
// in one transaction. Nothing is recorded when validation fails.
func (s *journalService) CreateEntry(ctx context.Context, companyID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	entryDate := now
	if req.EntryDate != nil {
		entryDate = *req.EntryDate
	}

	entry := domain.JournalEntry{
		EntryID:     uuid.NewString(),
		CompanyID:   companyID,
		EntryDate:   entryDate,
		Description: req.Description,
		Status:      domain.EntryDraft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	lines := make([]domain.TransactionLine, len(req.Lines))
	accountIDs := make([]string, 0, len(req.Lines))
	for i, lr := range req.Lines {
		lines[i] = domain.TransactionLine{
			LineID:       uuid.NewString(),
			EntryID:      entry.EntryID,
			AccountID:    lr.AccountID,
			DebitAmount:  lr.DebitAmount,
			CreditAmount: lr.CreditAmount,
			Description:  lr.Description,
			LineSeq:      i,
			EntryDate:    entryDate,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
		accountIDs = append(accountIDs, lr.AccountID)
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, companyID, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	if err := accounting.ValidateEntry(entry, lines, accounts); err != nil {
		entry.Status = domain.EntryRejected
		s.LogWarn(ctx, "Journal entry rejected",
			slog.String("company_id", companyID),
			slog.String("reason", err.Error()))
		return nil, err
	}
	entry.Status = domain.EntryValidated

	balanceChanges := make(map[string]decimal.Decimal, len(accounts))
	for _, line := range lines {
		account := accounts[line.AccountID]
		signed, err := accounting.SignedAmount(account.AccountType, line)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
		}
		balanceChanges[line.AccountID] = balanceChanges[line.AccountID].Add(signed)
	}

	entry.Status = domain.EntryPosted
	fiscalYear := fiscalYearOf(entryDate, company.FiscalYearStartMonth)
	entryNumber, err := s.journalRepo.SaveEntry(ctx, entry, lines, balanceChanges, fiscalYear)
	if err != nil {
		s.LogError(ctx, err, "Failed to post journal entry", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to post journal entry: %w", err)
	}
	entry.EntryNumber = entryNumber

	s.LogInfo(ctx, "Journal entry posted",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entryNumber))
	return &entry, nil
}

// ReverseEntry posts a mirror-image entry with debits and credits swapped,
// links the pair and marks the original REVERSED.
func (s *journalService) ReverseEntry(ctx context.Context, companyID, entryID, requestingUserID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	original, err := s.journalRepo.FindEntryByID(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.EntryPosted {
		return nil, fmt.Errorf("%w: only posted entries can be reversed, entry is %s", apperrors.ErrValidation, original.Status)
	}

	originalLines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entry lines: %w", err)
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	reversal := domain.JournalEntry{
		EntryID:         uuid.NewString(),
		CompanyID:       companyID,
		EntryDate:       now,
		Description:     fmt.Sprintf("Reversal of %s", original.EntryNumber),
		Status:          domain.EntryPosted,
		OriginalEntryID: &original.EntryID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	lines := make([]domain.TransactionLine, len(originalLines))
	accountIDs := make([]string, 0, len(originalLines))
	for i, ol := range originalLines {
		lines[i] = domain.TransactionLine{
			LineID:       uuid.NewString(),
			EntryID:      reversal.EntryID,
			AccountID:    ol.AccountID,
			DebitAmount:  ol.CreditAmount,
			CreditAmount: ol.DebitAmount,
			Description:  ol.Description,
			LineSeq:      i,
			EntryDate:    now,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     requestingUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: requestingUserID,
			},
		}
		accountIDs = append(accountIDs, ol.AccountID)
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, companyID, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	if err := accounting.ValidateEntry(reversal, lines, accounts); err != nil {
		return nil, err
	}

	balanceChanges := make(map[string]decimal.Decimal, len(accounts))
	for _, line := range lines {
		account := accounts[line.AccountID]
		signed, err := accounting.SignedAmount(account.AccountType, line)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
		}
		balanceChanges[line.AccountID] = balanceChanges[line.AccountID].Add(signed)
	}

	fiscalYear := fiscalYearOf(now, company.FiscalYearStartMonth)
	entryNumber, err := s.journalRepo.SaveEntry(ctx, reversal, lines, balanceChanges, fiscalYear)
	if err != nil {
		s.LogError(ctx, err, "Failed to post reversal entry", slog.String("original_entry_id", entryID))
		return nil, fmt.Errorf("failed to post reversal entry: %w", err)
	}
	reversal.EntryNumber = entryNumber

	if err := s.journalRepo.UpdateEntryStatusAndLinks(ctx, original.EntryID, domain.EntryReversed, &reversal.EntryID, nil, requestingUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to mark original entry reversed", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to mark original entry reversed: %w", err)
	}

	s.LogInfo(ctx, "Journal entry reversed",
		slog.String("original_entry_id", original.EntryID),
		slog.String("reversal_entry_id", reversal.EntryID))
	return &reversal, nil
}

// GetEntryWithLines returns an entry and its transaction lines.
func (s *journalService) GetEntryWithLines(ctx context.Context, companyID, entryID, requestingUserID string) (*domain.JournalEntry, []domain.TransactionLine, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}
	entry, err := s.journalRepo.FindEntryByID(ctx, companyID, entryID)
	if err != nil {
		return nil, nil, err
	}
	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load entry lines: %w", err)
	}
	return entry, lines, nil
}

// ListEntries returns a page of the company's journal entries.
func (s *journalService) ListEntries(ctx context.Context, companyID string, limit int, nextToken *string, requestingUserID string) ([]domain.JournalEntry, *string, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}
	return s.journalRepo.ListEntriesByCompany(ctx, companyID, limit, nextToken)
}
