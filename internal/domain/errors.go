package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidSignature   = errors.New("invalid webhook signature")
	ErrInvalidOrder       = errors.New("invalid order payload")
	ErrInvalidRefund      = errors.New("invalid refund payload")
	ErrInvalidDateRange   = errors.New("invalid date range")
	ErrUnknownTopic       = errors.New("unknown webhook topic")
	ErrShopNotConfigured  = errors.New("shop is not configured")
	ErrTransformFailed    = errors.New("order could not be transformed")
	ErrDocumentGeneration = errors.New("document generation failed")
)
