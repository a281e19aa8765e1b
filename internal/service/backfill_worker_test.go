package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstsync/internal/domain"
	"gstsync/internal/service"
	"gstsync/mocks"
)

func TestDocumentBackfiller_RunOnce(t *testing.T) {
	invoices := new(mocks.MockInvoiceRepo)
	orders := new(mocks.MockOrderRepo)
	shops := new(mocks.MockShopRepo)
	ledger := new(mocks.MockLedgerService)
	docs := new(mocks.MockDocumentGenerator)

	payload, err := json.Marshal(newOrder())
	require.NoError(t, err)

	pending := []domain.InvoiceRecord{
		{Shop: shop, OrderID: "5001", OrderNumber: "1001", InvoiceID: "INV-1001", Status: domain.InvoiceStatusGenerated},
		{Shop: shop, OrderID: "5002", OrderNumber: "1002", InvoiceID: "INV-1002", Status: domain.InvoiceStatusGenerated},
	}
	invoices.On("ListMissingDocument", mock.Anything, 10).Return(pending, nil)
	orders.On("Get", mock.Anything, shop, "5001").Return(&domain.OrderRecord{OrderID: "5001", Payload: payload}, nil)
	orders.On("Get", mock.Anything, shop, "5002").Return(nil, domain.ErrNotFound)
	shops.On("Get", mock.Anything, shop).Return(shopSettings(), nil)
	ledger.On("OrderEntries", mock.Anything, shop, "1001").Return([]domain.LedgerEntry{{CompanyState: "Maharashtra"}}, nil)
	docs.On("Generate", mock.Anything, shop, mock.MatchedBy(func(d *domain.InvoiceDocument) bool {
		return d.InvoiceNumber == "INV-1001" && d.TransactionType == domain.TransactionInterstate
	})).Return(&domain.GeneratedDocument{DocumentRef: "doc-9", StorageKey: "active/acme.example/1001.pdf", Delivered: true}, nil)
	invoices.On("UpdateDocument", mock.Anything, shop, "5001",
		&domain.GeneratedDocument{DocumentRef: "doc-9", StorageKey: "active/acme.example/1001.pdf", Delivered: true},
		domain.InvoiceStatusSent,
	).Return(nil)

	b := service.NewDocumentBackfiller(invoices, orders, shops, ledger, nil, docs, service.BackfillConfig{BatchSize: 10})
	done, err := b.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, done)
	invoices.AssertExpectations(t)
}

func TestDocumentBackfiller_GenerationError(t *testing.T) {
	invoices := new(mocks.MockInvoiceRepo)
	orders := new(mocks.MockOrderRepo)
	shops := new(mocks.MockShopRepo)
	ledger := new(mocks.MockLedgerService)
	docs := new(mocks.MockDocumentGenerator)

	payload, err := json.Marshal(newOrder())
	require.NoError(t, err)
	orders.On("Get", mock.Anything, shop, "5001").Return(&domain.OrderRecord{Payload: payload}, nil)
	shops.On("Get", mock.Anything, shop).Return(shopSettings(), nil)
	ledger.On("OrderEntries", mock.Anything, shop, "1001").Return(nil, errors.New("db down"))
	docs.On("Generate", mock.Anything, shop, mock.Anything).Return(nil, errors.New("renderer 500"))

	b := service.NewDocumentBackfiller(invoices, orders, shops, ledger, nil, docs, service.BackfillConfig{})
	err = b.Regenerate(context.Background(), &domain.InvoiceRecord{Shop: shop, OrderID: "5001", OrderNumber: "1001", InvoiceID: "INV-1001"})
	assert.ErrorIs(t, err, domain.ErrDocumentGeneration)
	invoices.AssertNotCalled(t, "UpdateDocument", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDocumentBackfiller_EmptyGenerationIsAnError(t *testing.T) {
	invoices := new(mocks.MockInvoiceRepo)
	orders := new(mocks.MockOrderRepo)
	shops := new(mocks.MockShopRepo)
	ledger := new(mocks.MockLedgerService)
	docs := new(mocks.MockDocumentGenerator)

	payload, err := json.Marshal(newOrder())
	require.NoError(t, err)
	orders.On("Get", mock.Anything, shop, "5001").Return(&domain.OrderRecord{Payload: payload}, nil)
	shops.On("Get", mock.Anything, shop).Return(shopSettings(), nil)
	ledger.On("OrderEntries", mock.Anything, shop, "1001").Return([]domain.LedgerEntry{}, nil)
	docs.On("Generate", mock.Anything, shop, mock.Anything).Return(nil, nil)

	b := service.NewDocumentBackfiller(invoices, orders, shops, ledger, nil, docs, service.BackfillConfig{})
	require.NotPanics(t, func() {
		err = b.Regenerate(context.Background(), &domain.InvoiceRecord{Shop: shop, OrderID: "5001", OrderNumber: "1001", InvoiceID: "INV-1001"})
	})
	assert.ErrorIs(t, err, domain.ErrDocumentGeneration)
	invoices.AssertNotCalled(t, "UpdateDocument", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDocumentBackfiller_IgnoreTaxLinesReachesTransform(t *testing.T) {
	invoices := new(mocks.MockInvoiceRepo)
	orders := new(mocks.MockOrderRepo)
	shops := new(mocks.MockShopRepo)
	ledger := new(mocks.MockLedgerService)
	docs := new(mocks.MockDocumentGenerator)

	payload, err := json.Marshal(newOrder())
	require.NoError(t, err)
	orders.On("Get", mock.Anything, shop, "5001").Return(&domain.OrderRecord{Payload: payload}, nil)
	shops.On("Get", mock.Anything, shop).Return(shopSettings(), nil)
	ledger.On("OrderEntries", mock.Anything, shop, "1001").Return([]domain.LedgerEntry{}, nil)
	docs.On("Generate", mock.Anything, shop, mock.MatchedBy(func(d *domain.InvoiceDocument) bool {
		return len(d.Rows) == 3 && d.Rows[0].TaxRate == 5
	})).Return(&domain.GeneratedDocument{DocumentRef: "doc-5"}, nil)
	invoices.On("UpdateDocument", mock.Anything, shop, "5001", mock.Anything, domain.InvoiceStatusGenerated).Return(nil)

	b := service.NewDocumentBackfiller(invoices, orders, shops, ledger, nil, docs, service.BackfillConfig{IgnoreTaxLines: true})
	err = b.Regenerate(context.Background(), &domain.InvoiceRecord{
		Shop: shop, OrderID: "5001", OrderNumber: "1001", InvoiceID: "INV-1001", Status: domain.InvoiceStatusGenerated,
	})
	require.NoError(t, err)
	docs.AssertExpectations(t)
}

func TestDocumentBackfiller_ListError(t *testing.T) {
	invoices := new(mocks.MockInvoiceRepo)
	invoices.On("ListMissingDocument", mock.Anything, 20).Return(nil, errors.New("db down"))

	b := service.NewDocumentBackfiller(invoices, nil, nil, nil, nil, nil, service.BackfillConfig{})
	_, err := b.RunOnce(context.Background())
	assert.Error(t, err)
}
