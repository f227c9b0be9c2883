package services

import (
	"context"

	"github.com/propbooks/propbooks_backend/internal/core/domain"
	"github.com/propbooks/propbooks_backend/internal/dto"
)

// DocumentSvcFacade defines the document posting adapters: each translates a
// business document into one balanced journal and posts it atomically. A
// failed post leaves the draft journal behind for retry.
type DocumentSvcFacade interface {
	// PostInvoice posts a rent invoice: Dr Accounts Receivable / Cr Deferred
	// Revenue for the invoice amount.
	PostInvoice(ctx context.Context, req dto.PostInvoiceRequest, actorID string) (*domain.Journal, []domain.JournalEntry, error)

	// PostReceipt posts a cash receipt against an income category: cash
	// application, revenue recognition and, when the category carries a
	// commission rate, the commission/VAT split lines.
	PostReceipt(ctx context.Context, req dto.PostReceiptRequest, actorID string) (*domain.Journal, []domain.JournalEntry, error)

	// PostExpense posts an expense payment: Dr expense account / Cr paying
	// account.
	PostExpense(ctx context.Context, req dto.PostExpenseRequest, actorID string) (*domain.Journal, []domain.JournalEntry, error)
}
