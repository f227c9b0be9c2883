package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostInvoiceRequest defines the data needed to post a rent invoice:
// a receivable raised against deferred revenue.
type PostInvoiceRequest struct {
	InvoiceID    string          `json:"invoiceID" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required,gt=0"`
	Date         time.Time       `json:"date" binding:"required"`
	Description  string          `json:"description"`
	CurrencyCode string          `json:"currencyCode" binding:"omitempty,len=3,uppercase"`
}

// PostReceiptRequest defines the data needed to post a cash receipt against
// an income category. The category's commission and VAT rates drive the
// commission split lines.
type PostReceiptRequest struct {
	ReceiptID    string          `json:"receiptID" binding:"required"`
	CategoryID   string          `json:"categoryID" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required,gt=0"`
	Date         time.Time       `json:"date" binding:"required"`
	Description  string          `json:"description"`
	CurrencyCode string          `json:"currencyCode" binding:"omitempty,len=3,uppercase"`
}

// PostExpenseRequest defines the data needed to post an expense payment.
// When paidFromAccountID is omitted the cash account is used.
type PostExpenseRequest struct {
	ExpenseID         string          `json:"expenseID" binding:"required"`
	ExpenseAccountID  string          `json:"expenseAccountID" binding:"required"`
	PaidFromAccountID string          `json:"paidFromAccountID"`
	Amount            decimal.Decimal `json:"amount" binding:"required,gt=0"`
	Date              time.Time       `json:"date" binding:"required"`
	Description       string          `json:"description"`
	CurrencyCode      string          `json:"currencyCode" binding:"omitempty,len=3,uppercase"`
}
