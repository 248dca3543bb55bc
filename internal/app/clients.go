package app

import (
	"github.com/pawcrate/pawcrate-backend/internal/clients/openai"
	redisclient "github.com/pawcrate/pawcrate-backend/internal/clients/redis"
	"github.com/pawcrate/pawcrate-backend/internal/clients/sendgrid"
	"github.com/pawcrate/pawcrate-backend/internal/clients/shopify"
	"github.com/pawcrate/pawcrate-backend/internal/logger"
)

type Clients struct {
	Shopify   shopify.Client
	Sendgrid  sendgrid.Client
	Openai    openai.Client
	SweepLock redisclient.SweepLock
}

// wireClients builds the vendor clients. Shopify, OpenAI and Redis are
// optional: when their env vars are absent the features that need them
// degrade (no order notes, no recommendations, lock-free sweep) instead of
// blocking startup.
func wireClients(log *logger.Logger) Clients {
	log.Info("Wiring clients...")

	shopifyClient, err := shopify.NewFromEnv(log)
	if err != nil {
		log.Warn("Shopify client not configured", "error", err)
		shopifyClient = nil
	}

	openaiClient, err := openai.New(log)
	if err != nil {
		log.Warn("OpenAI client not configured", "error", err)
		openaiClient = nil
	}

	sweepLock, err := redisclient.NewSweepLock(log)
	if err != nil {
		log.Warn("Redis sweep lock not configured", "error", err)
		sweepLock = nil
	}

	return Clients{
		Shopify:   shopifyClient,
		Sendgrid:  sendgrid.NewFromEnv(log),
		Openai:    openaiClient,
		SweepLock: sweepLock,
	}
}
