package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstsync/internal/domain"
	"gstsync/internal/service"
	"gstsync/mocks"
)

var invoiceDate = time.Date(2024, 7, 14, 10, 0, 0, 0, domain.ReportingZone)

func company() domain.CompanyInfo {
	return domain.CompanyInfo{Name: "Acme Apparel", GSTIN: "29ABCDE1234F1Z5", State: "Karnataka"}
}

func metaItems(n int) []domain.GSTLineItemMeta {
	items := make([]domain.GSTLineItemMeta, n)
	for i := range items {
		items[i] = domain.GSTLineItemMeta{
			LineIndex:    i + 1,
			LineItemID:   int64(100 + i),
			Title:        fmt.Sprintf("Item %d", i+1),
			HSN:          "6109",
			Quantity:     3,
			TaxableValue: 300,
			TaxRate:      18,
			TotalTax:     54,
			CGST:         27,
			SGST:         27,
		}
	}
	return items
}

func TestLedgerService_WriteOrderItems_BuildsEntries(t *testing.T) {
	repo := new(mocks.MockLedgerRepo)
	svc := service.NewLedgerService(repo)

	var captured []domain.LedgerEntry
	repo.On("PutBatch", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(1).([]domain.LedgerEntry) }).
		Return(nil).Once()

	meta := domain.OrderMeta{OrderID: "5001", OrderNumber: "1001", InvoiceDate: invoiceDate, CustomerState: "Karnataka"}
	entries, err := svc.WriteOrderItems(context.Background(), "acme.example", meta, metaItems(2), company())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Len(t, captured, 2)

	e := captured[0]
	assert.Equal(t, "1001#001", e.EntryKey)
	assert.Equal(t, "1001#002", captured[1].EntryKey)
	assert.Equal(t, "2024-07", e.Period)
	assert.Equal(t, domain.TransactionIntrastate, e.TransactionType)
	assert.Equal(t, domain.LedgerStatusActive, e.Status)
	assert.Equal(t, "29", e.CustomerStateCode)
	assert.Equal(t, "29", e.CompanyStateCode)
	assert.Equal(t, "Karnataka", e.PlaceOfSupply)
	assert.Equal(t, 3.0, e.Quantity)
	assert.Nil(t, e.OriginalEntryKey)
	assert.InDelta(t, e.TotalTax, e.CGST+e.SGST+e.IGST, 0.01)
}

func TestLedgerService_WriteOrderItems_ChunksBatches(t *testing.T) {
	repo := new(mocks.MockLedgerRepo)
	svc := service.NewLedgerService(repo)

	var sizes []int
	repo.On("PutBatch", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sizes = append(sizes, len(args.Get(1).([]domain.LedgerEntry))) }).
		Return(nil)

	meta := domain.OrderMeta{OrderID: "5001", OrderNumber: "1001", InvoiceDate: invoiceDate, CustomerState: "Kerala"}
	entries, err := svc.WriteOrderItems(context.Background(), "acme.example", meta, metaItems(60), company())
	require.NoError(t, err)
	assert.Len(t, entries, 60)
	assert.Equal(t, []int{25, 25, 10}, sizes)
	assert.Equal(t, domain.TransactionInterstate, entries[0].TransactionType)
	assert.Equal(t, "1001#060", entries[59].EntryKey)
}

func TestLedgerService_WriteOrderItems_PartialFailure(t *testing.T) {
	repo := new(mocks.MockLedgerRepo)
	svc := service.NewLedgerService(repo)

	repo.On("PutBatch", mock.Anything, mock.Anything).Return(nil).Once()
	repo.On("PutBatch", mock.Anything, mock.Anything).Return(errors.New("connection reset")).Once()

	meta := domain.OrderMeta{OrderID: "5001", OrderNumber: "1001", InvoiceDate: invoiceDate}
	written, err := svc.WriteOrderItems(context.Background(), "acme.example", meta, metaItems(30), company())
	require.Error(t, err)
	assert.Len(t, written, 25)
	repo.AssertNumberOfCalls(t, "PutBatch", 2)
}

func TestLedgerService_UpdateStatus_FlipsEveryEntry(t *testing.T) {
	repo := new(mocks.MockLedgerRepo)
	svc := service.NewLedgerService(repo)

	repo.On("ListByKeyPrefix", mock.Anything, "acme.example", "1001#").Return([]domain.LedgerEntry{
		{EntryKey: "1001#001"}, {EntryKey: "1001#002"},
	}, nil)
	cnMatch := mock.MatchedBy(func(id *string) bool { return id != nil && *id == "CN-1001-77" })
	repo.On("UpdateStatus", mock.Anything, "acme.example", "1001#001", domain.LedgerStatusReturned, cnMatch, mock.Anything).Return(nil)
	repo.On("UpdateStatus", mock.Anything, "acme.example", "1001#002", domain.LedgerStatusReturned, cnMatch, mock.Anything).Return(nil)

	cn := &domain.CreditNoteInfo{ID: "CN-1001-77", Date: invoiceDate}
	n, err := svc.UpdateStatus(context.Background(), "acme.example", "1001", domain.LedgerStatusReturned, cn)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "PutBatch", mock.Anything, mock.Anything)
}

func TestLedgerService_CreateReturnEntries_ScalesNegatively(t *testing.T) {
	repo := new(mocks.MockLedgerRepo)
	svc := service.NewLedgerService(repo)

	original := domain.LedgerEntry{
		Shop:         "acme.example",
		EntryKey:     "1001#001",
		OrderNumber:  "1001",
		InvoiceID:    "INV-1001",
		LineIndex:    1,
		Quantity:     3,
		TaxableValue: 300,
		TaxRate:      18,
		CGST:         27,
		SGST:         27,
		TotalTax:     54,
		Status:       domain.LedgerStatusActive,
	}
	repo.On("ListByKeyPrefix", mock.Anything, "acme.example", "1001#").Return([]domain.LedgerEntry{original}, nil)
	repo.On("ListByKeyPrefix", mock.Anything, "acme.example", "CN-1001-").Return(nil, nil)

	var written []domain.LedgerEntry
	repo.On("PutBatch", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { written = args.Get(1).([]domain.LedgerEntry) }).
		Return(nil)

	cnDate := time.Date(2024, 8, 2, 9, 0, 0, 0, domain.ReportingZone)
	cn := domain.CreditNoteInfo{ID: "CN-1001-77", Date: cnDate}
	_, err := svc.CreateReturnEntries(context.Background(), "acme.example", "1001",
		[]domain.ReturnedItem{{LineIndex: 1, Quantity: 1}, {LineIndex: 9, Quantity: 1}}, cn)
	require.NoError(t, err)

	require.Len(t, written, 1)
	rev := written[0]
	assert.Equal(t, "CN-1001-77#001", rev.EntryKey)
	assert.Equal(t, "2024-08", rev.Period)
	assert.Equal(t, -1.0, rev.Quantity)
	assert.InDelta(t, -1*original.TaxableValue*(1.0/3.0), rev.TaxableValue, 0.01)
	assert.Equal(t, -9.0, rev.CGST)
	assert.Equal(t, -9.0, rev.SGST)
	assert.Equal(t, -18.0, rev.TotalTax)
	assert.Equal(t, domain.LedgerStatusReturned, rev.Status)
	assert.Equal(t, "INV-1001", rev.InvoiceID)
	require.NotNil(t, rev.OriginalEntryKey)
	assert.Equal(t, "1001#001", *rev.OriginalEntryKey)
	require.NotNil(t, rev.CreditNoteID)
	assert.Equal(t, "CN-1001-77", *rev.CreditNoteID)
	assert.True(t, rev.EffectiveDate().Equal(cnDate))
}

func TestLedgerService_CreateReturnEntries_ClampsQuantity(t *testing.T) {
	repo := new(mocks.MockLedgerRepo)
	svc := service.NewLedgerService(repo)

	repo.On("ListByKeyPrefix", mock.Anything, "acme.example", "1001#").Return([]domain.LedgerEntry{
		{EntryKey: "1001#001", LineIndex: 1, Quantity: 2, TaxableValue: 200, IGST: 36, TotalTax: 36},
	}, nil)
	repo.On("ListByKeyPrefix", mock.Anything, "acme.example", "CN-1001-").Return(nil, nil)
	var written []domain.LedgerEntry
	repo.On("PutBatch", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { written = args.Get(1).([]domain.LedgerEntry) }).
		Return(nil)

	_, err := svc.CreateReturnEntries(context.Background(), "acme.example", "1001",
		[]domain.ReturnedItem{{LineIndex: 1, Quantity: 5}}, domain.CreditNoteInfo{ID: "CN-1001-1", Date: invoiceDate})
	require.NoError(t, err)
	require.Len(t, written, 1)
	assert.Equal(t, -200.0, written[0].TaxableValue)
	assert.Equal(t, -36.0, written[0].IGST)
	assert.Equal(t, -2.0, written[0].Quantity)
}

func TestLedgerService_UpdateStatus_CancellationCoversReversals(t *testing.T) {
	repo := new(mocks.MockLedgerRepo)
	svc := service.NewLedgerService(repo)

	repo.On("ListByKeyPrefix", mock.Anything, "acme.example", "1001#").Return([]domain.LedgerEntry{
		{EntryKey: "1001#001", OrderNumber: "1001", Status: domain.LedgerStatusActive},
	}, nil)
	repo.On("ListByKeyPrefix", mock.Anything, "acme.example", "CN-1001-").Return([]domain.LedgerEntry{
		{EntryKey: "CN-1001-77#001", OrderNumber: "1001", OriginalEntryKey: strPtr("1001#001"), Status: domain.LedgerStatusReturned},
		{EntryKey: "CN-1001-5#001", OrderNumber: "1001-5", OriginalEntryKey: strPtr("1001-5#001"), Status: domain.LedgerStatusReturned},
	}, nil)
	nilID := mock.MatchedBy(func(id *string) bool { return id == nil })
	repo.On("UpdateStatus", mock.Anything, "acme.example", "1001#001", domain.LedgerStatusCancelled, nilID, mock.Anything).Return(nil).Once()
	repo.On("UpdateStatus", mock.Anything, "acme.example", "CN-1001-77#001", domain.LedgerStatusCancelled, nilID, mock.Anything).Return(nil).Once()

	n, err := svc.UpdateStatus(context.Background(), "acme.example", "1001", domain.LedgerStatusCancelled, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, "CN-1001-5#001", mock.Anything, mock.Anything, mock.Anything)
}

func TestLedgerService_UpdateStatus_ReturnedNeverOverwritesCancelled(t *testing.T) {
	repo := new(mocks.MockLedgerRepo)
	svc := service.NewLedgerService(repo)

	repo.On("ListByKeyPrefix", mock.Anything, "acme.example", "1001#").Return([]domain.LedgerEntry{
		{EntryKey: "1001#001", Status: domain.LedgerStatusCancelled},
		{EntryKey: "1001#002", Status: domain.LedgerStatusActive},
	}, nil)
	repo.On("UpdateStatus", mock.Anything, "acme.example", "1001#002", domain.LedgerStatusReturned, mock.Anything, mock.Anything).Return(nil).Once()

	n, err := svc.UpdateStatus(context.Background(), "acme.example", "1001", domain.LedgerStatusReturned,
		&domain.CreditNoteInfo{ID: "CN-1001-77", Date: invoiceDate})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, "1001#001", mock.Anything, mock.Anything, mock.Anything)
}

func TestLedgerService_CreateReturnEntries_TakesRemainderAfterEarlierCreditNotes(t *testing.T) {
	repo := new(mocks.MockLedgerRepo)
	svc := service.NewLedgerService(repo)

	repo.On("ListByKeyPrefix", mock.Anything, "acme.example", "1001#").Return([]domain.LedgerEntry{
		{EntryKey: "1001#001", OrderNumber: "1001", LineIndex: 1, Quantity: 3, TaxableValue: 100, CGST: 9, SGST: 9, TotalTax: 18},
	}, nil)
	repo.On("ListByKeyPrefix", mock.Anything, "acme.example", "CN-1001-").Return([]domain.LedgerEntry{
		{
			EntryKey: "CN-1001-76#001", OrderNumber: "1001", LineIndex: 1, Quantity: -1, TaxableValue: -33.33,
			CGST: -3, SGST: -3, TotalTax: -6, CreditNoteID: strPtr("CN-1001-76"), OriginalEntryKey: strPtr("1001#001"),
		},
		{
			EntryKey: "CN-1001-77#001", OrderNumber: "1001", LineIndex: 1, Quantity: -2, TaxableValue: -66.66,
			CreditNoteID: strPtr("CN-1001-77"), OriginalEntryKey: strPtr("1001#001"),
		},
	}, nil)
	var written []domain.LedgerEntry
	repo.On("PutBatch", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { written = args.Get(1).([]domain.LedgerEntry) }).
		Return(nil)

	// CN-1001-77 is this credit note being redelivered, so only CN-1001-76 counts.
	_, err := svc.CreateReturnEntries(context.Background(), "acme.example", "1001",
		[]domain.ReturnedItem{{LineIndex: 1, Quantity: 3}}, domain.CreditNoteInfo{ID: "CN-1001-77", Date: invoiceDate})
	require.NoError(t, err)
	require.Len(t, written, 1)
	rev := written[0]
	assert.Equal(t, -2.0, rev.Quantity)
	assert.Equal(t, -66.67, rev.TaxableValue)
	assert.Equal(t, -6.0, rev.CGST)
	assert.Equal(t, -12.0, rev.TotalTax)
	assert.InDelta(t, 0, 100+(-33.33)+rev.TaxableValue, 1e-9)
}

func TestLedgerService_CreateReturnEntries_CancelledLineReversesAsCancelled(t *testing.T) {
	repo := new(mocks.MockLedgerRepo)
	svc := service.NewLedgerService(repo)

	repo.On("ListByKeyPrefix", mock.Anything, "acme.example", "1001#").Return([]domain.LedgerEntry{
		{EntryKey: "1001#001", LineIndex: 1, Quantity: 1, TaxableValue: 100, Status: domain.LedgerStatusCancelled},
	}, nil)
	repo.On("ListByKeyPrefix", mock.Anything, "acme.example", "CN-1001-").Return(nil, nil)
	var written []domain.LedgerEntry
	repo.On("PutBatch", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { written = args.Get(1).([]domain.LedgerEntry) }).
		Return(nil)

	_, err := svc.CreateReturnEntries(context.Background(), "acme.example", "1001",
		[]domain.ReturnedItem{{LineIndex: 1, Quantity: 1}}, domain.CreditNoteInfo{ID: "CN-1001-1", Date: invoiceDate})
	require.NoError(t, err)
	require.Len(t, written, 1)
	assert.Equal(t, domain.LedgerStatusCancelled, written[0].Status)
}

func TestLedgerService_CreateReturnEntries_NothingToWrite(t *testing.T) {
	repo := new(mocks.MockLedgerRepo)
	svc := service.NewLedgerService(repo)
	repo.On("ListByKeyPrefix", mock.Anything, "acme.example", "1001#").Return([]domain.LedgerEntry{}, nil)

	out, err := svc.CreateReturnEntries(context.Background(), "acme.example", "1001",
		[]domain.ReturnedItem{{LineIndex: 1, Quantity: 1}}, domain.CreditNoteInfo{ID: "CN-1001-1"})
	require.NoError(t, err)
	assert.Empty(t, out)
	repo.AssertNotCalled(t, "PutBatch", mock.Anything, mock.Anything)
}

func TestLedgerService_HasEntriesAndAttachInvoice(t *testing.T) {
	repo := new(mocks.MockLedgerRepo)
	svc := service.NewLedgerService(repo)

	repo.On("CountByKeyPrefix", mock.Anything, "acme.example", "1001#").Return(2, nil)
	repo.On("SetInvoiceID", mock.Anything, "acme.example", "1001#", "INV-1001").Return(int64(2), nil)

	ok, err := svc.HasEntries(context.Background(), "acme.example", "1001")
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, svc.AttachInvoice(context.Background(), "acme.example", "1001", "INV-1001"))
}
