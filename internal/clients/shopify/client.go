package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/pawcrate/pawcrate-backend/internal/logger"
	"github.com/pawcrate/pawcrate-backend/internal/types"
)

// Client talks to the Shopify Admin GraphQL API with a private-app access
// token. OAuth/session handling for the embedded UI lives outside this
// backend.
type Client interface {
	GetProducts(ctx context.Context, first int) ([]types.CatalogProduct, error)
	UpdateOrderNote(ctx context.Context, orderID string, note string) (bool, error)
}

type Config struct {
	ShopDomain  string
	AccessToken string
	APIVersion  string
	Timeout     time.Duration
}

func ConfigFromEnv() Config {
	version := strings.TrimSpace(os.Getenv("SHOPIFY_API_VERSION"))
	if version == "" {
		version = "2024-10"
	}
	return Config{
		ShopDomain:  strings.TrimSpace(os.Getenv("SHOPIFY_SHOP_DOMAIN")),
		AccessToken: strings.TrimSpace(os.Getenv("SHOPIFY_ADMIN_TOKEN")),
		APIVersion:  version,
		Timeout:     30 * time.Second,
	}
}

type client struct {
	log        *logger.Logger
	cfg        Config
	httpClient *http.Client
}

func NewFromEnv(log *logger.Logger) (Client, error) {
	return New(log, ConfigFromEnv())
}

func New(log *logger.Logger, cfg Config) (Client, error) {
	if cfg.ShopDomain == "" {
		return nil, fmt.Errorf("missing SHOPIFY_SHOP_DOMAIN")
	}
	if cfg.AccessToken == "" {
		return nil, fmt.Errorf("missing SHOPIFY_ADMIN_TOKEN")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &client{
		log:        log.With("client", "ShopifyClient"),
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// OrderGID converts a bare numeric order id into the Admin API global id
// form; ids that already carry the prefix pass through unchanged.
func OrderGID(orderID string) string {
	if strings.HasPrefix(orderID, "gid://") {
		return orderID
	}
	return "gid://shopify/Order/" + orderID
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

func (c *client) graphql(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("https://%s/admin/api/%s/graphql.json", c.cfg.ShopDomain, c.cfg.APIVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.cfg.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("shopify http %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphqlError  `json:"errors"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("decode shopify response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("shopify graphql: %s", envelope.Errors[0].Message)
	}
	if out != nil && envelope.Data != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("decode shopify data: %w", err)
		}
	}
	return nil
}

const productsQuery = `
query getProducts($first: Int!) {
  products(first: $first) {
    edges {
      node {
        id
        title
        description
        productType
        tags
        variants(first: 1) {
          edges {
            node {
              price
            }
          }
        }
        images(first: 1) {
          edges {
            node {
              url
            }
          }
        }
      }
    }
  }
}`

func (c *client) GetProducts(ctx context.Context, first int) ([]types.CatalogProduct, error) {
	if first <= 0 {
		first = 50
	}

	var data struct {
		Products struct {
			Edges []struct {
				Node struct {
					ID          string   `json:"id"`
					Title       string   `json:"title"`
					Description string   `json:"description"`
					ProductType string   `json:"productType"`
					Tags        []string `json:"tags"`
					Variants    struct {
						Edges []struct {
							Node struct {
								Price string `json:"price"`
							} `json:"node"`
						} `json:"edges"`
					} `json:"variants"`
					Images struct {
						Edges []struct {
							Node struct {
								URL string `json:"url"`
							} `json:"node"`
						} `json:"edges"`
					} `json:"images"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"products"`
	}

	if err := c.graphql(ctx, productsQuery, map[string]any{"first": first}, &data); err != nil {
		return nil, err
	}

	products := make([]types.CatalogProduct, 0, len(data.Products.Edges))
	for _, edge := range data.Products.Edges {
		p := types.CatalogProduct{
			ID:          edge.Node.ID,
			Title:       edge.Node.Title,
			Description: edge.Node.Description,
			ProductType: edge.Node.ProductType,
			Tags:        edge.Node.Tags,
		}
		if len(edge.Node.Variants.Edges) > 0 {
			p.Price = edge.Node.Variants.Edges[0].Node.Price
		}
		if len(edge.Node.Images.Edges) > 0 {
			p.ImageURL = edge.Node.Images.Edges[0].Node.URL
		}
		products = append(products, p)
	}
	return products, nil
}

const orderUpdateMutation = `
mutation orderUpdate($input: OrderInput!) {
  orderUpdate(input: $input) {
    order {
      id
      note
    }
    userErrors {
      field
      message
    }
  }
}`

func (c *client) UpdateOrderNote(ctx context.Context, orderID string, note string) (bool, error) {
	var data struct {
		OrderUpdate struct {
			UserErrors []struct {
				Message string `json:"message"`
			} `json:"userErrors"`
		} `json:"orderUpdate"`
	}

	err := c.graphql(ctx, orderUpdateMutation, map[string]any{
		"input": map[string]any{
			"id":   OrderGID(orderID),
			"note": note,
		},
	}, &data)
	if err != nil {
		return false, err
	}
	if len(data.OrderUpdate.UserErrors) > 0 {
		c.log.Warn("Order note update rejected", "order_id", orderID, "error", data.OrderUpdate.UserErrors[0].Message)
		return false, nil
	}
	return true, nil
}
