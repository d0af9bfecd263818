package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"rentora-backend/internal/models"
)

func TestRecordPaymentRejectsBadRequests(t *testing.T) {
	// Validation runs before any repository call, so a bare service is enough
	s := &PaymentService{}

	_, err := s.RecordPayment(context.Background(), &models.RecordPaymentRequest{Amount: 5_000})
	assert.ErrorIs(t, err, ErrMissingInvoiceID)

	_, err = s.RecordPayment(context.Background(), &models.RecordPaymentRequest{
		InvoiceID: 1,
		Amount:    5_000,
		Method:    models.PaymentMethodWallet,
	})
	assert.ErrorIs(t, err, ErrWalletNotTender)
}
