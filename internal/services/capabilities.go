package services

import (
	"context"

	"github.com/pawcrate/pawcrate-backend/internal/types"
)

// Capability interfaces for the external collaborators. Services depend on
// these, not on the vendor clients, so every workflow runs against fakes in
// tests. The clients under internal/clients satisfy them structurally.

type Mailer interface {
	SendFeedbackEmail(ctx context.Context, data types.FeedbackEmailData) (bool, error)
	SendWelcomeEmail(ctx context.Context, customerEmail string, dogName string) (bool, error)
}

type Storefront interface {
	GetProducts(ctx context.Context, first int) ([]types.CatalogProduct, error)
	UpdateOrderNote(ctx context.Context, orderID string, note string) (bool, error)
}

type ChatModel interface {
	GenerateText(ctx context.Context, system string, user string) (string, error)
}
