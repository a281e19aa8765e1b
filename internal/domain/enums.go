package domain

// LedgerStatus is the lifecycle state of a ledger entry.
type LedgerStatus string

const (
	LedgerStatusActive    LedgerStatus = "active"
	LedgerStatusCancelled LedgerStatus = "cancelled"
	LedgerStatusReturned  LedgerStatus = "returned"
)

// TransactionType classifies a supply as intrastate (CGST+SGST) or interstate (IGST).
type TransactionType string

const (
	TransactionIntrastate TransactionType = "intrastate"
	TransactionInterstate TransactionType = "interstate"
)

// InvoiceStatus tracks delivery of a generated invoice.
type InvoiceStatus string

const (
	InvoiceStatusGenerated InvoiceStatus = "generated"
	InvoiceStatusSent      InvoiceStatus = "sent"
)

// ProcessingState is the per-order progress marker for the invoice pipeline.
type ProcessingState string

const (
	ProcessingPending           ProcessingState = "pending"
	ProcessingLedgerWritten     ProcessingState = "ledger_written"
	ProcessingDocumentGenerated ProcessingState = "document_generated"
	ProcessingComplete          ProcessingState = "complete"
)

// OrderDisplayStatus is the merchant-facing order status shown in the app.
type OrderDisplayStatus string

const (
	DisplayAwaitingFulfillment OrderDisplayStatus = "Awaiting Fulfillment"
	DisplayInvoiced            OrderDisplayStatus = "Invoiced"
	DisplayFulfilled           OrderDisplayStatus = "Fulfilled"
	DisplayPartiallyFulfilled  OrderDisplayStatus = "Partially Fulfilled"
	DisplayCancelled           OrderDisplayStatus = "Cancelled"
	DisplayReturned            OrderDisplayStatus = "Returned"
	DisplayPartiallyReturned   OrderDisplayStatus = "Partially Returned"
)

// WebhookTopic identifies the kind of inbound event.
type WebhookTopic string

const (
	TopicOrderCreated   WebhookTopic = "orders-create"
	TopicOrderUpdated   WebhookTopic = "orders-updated"
	TopicOrderCancelled WebhookTopic = "orders-cancelled"
	TopicRefundCreated  WebhookTopic = "refunds-create"
)

// ValidTopics lists the topics accepted by the webhook endpoint.
var ValidTopics = map[WebhookTopic]bool{
	TopicOrderCreated:   true,
	TopicOrderUpdated:   true,
	TopicOrderCancelled: true,
	TopicRefundCreated:  true,
}

// PipelineOutcome describes what a webhook delivery did.
type PipelineOutcome string

const (
	OutcomeCreated           PipelineOutcome = "created"
	OutcomeDuplicate         PipelineOutcome = "duplicate"
	OutcomeLedgerRecovered   PipelineOutcome = "ledger_recovered"
	OutcomeDeferred          PipelineOutcome = "deferred"
	OutcomeUpdated           PipelineOutcome = "updated"
	OutcomeCancelled         PipelineOutcome = "cancelled"
	OutcomeReturned          PipelineOutcome = "returned"
	OutcomePartiallyReturned PipelineOutcome = "partially_returned"
	OutcomeIgnored           PipelineOutcome = "ignored"
)

// StorageArea is a top-level prefix under which rendered invoice documents live.
type StorageArea string

const (
	AreaActive    StorageArea = "active"
	AreaCancelled StorageArea = "cancelled"
	AreaReturned  StorageArea = "returned"
)

// Fulfillment and financial status values as sent by the commerce platform.
const (
	FulfillmentFulfilled = "fulfilled"
	FulfillmentPartial   = "partial"
	FinancialRefunded    = "refunded"
	FinancialPartRefund  = "partially_refunded"
)
