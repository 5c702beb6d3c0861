// Package appwrite adapts the Appwrite document API to the remote ports.
// Budgets and transactions live in one collection each; amounts are stored
// as integer cents and dates as RFC 3339 strings.
package appwrite

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/appwrite/sdk-for-go/appwrite"
	"github.com/appwrite/sdk-for-go/databases"
	"github.com/appwrite/sdk-for-go/id"
	"github.com/appwrite/sdk-for-go/models"
	"github.com/appwrite/sdk-for-go/query"

	"onlyfunds/internal/core"
)

// pageSize bounds a single list call; fetches page through the collection.
const pageSize = 100

// Config identifies the Appwrite project and collections.
type Config struct {
	Endpoint               string
	ProjectID              string
	APIKey                 string
	DatabaseID             string
	BudgetsCollectionID    string
	TransactionsCollection string
}

type Client struct {
	db  *databases.Databases
	cfg Config
}

func New(cfg Config) *Client {
	cli := appwrite.NewClient(
		appwrite.WithEndpoint(cfg.Endpoint),
		appwrite.WithProject(cfg.ProjectID),
		appwrite.WithKey(cfg.APIKey),
	)
	return &Client{
		db:  appwrite.NewDatabases(cli),
		cfg: cfg,
	}
}

type budgetDoc struct {
	UserID      string `json:"userId"`
	Category    string `json:"category"`
	AmountCents int64  `json:"amountCents"`
	Month       int    `json:"month"`
	Year        int    `json:"year"`
}

type transactionDoc struct {
	UserID      string `json:"userId"`
	Category    string `json:"category"`
	AmountCents int64  `json:"amountCents"`
	Type        string `json:"type"`
	Date        string `json:"date"`
}

// FetchBudgets implements remote.BudgetFetcher.
func (c *Client) FetchBudgets(ctx context.Context, userID string) ([]core.Budget, error) {
	docs, err := c.listAll(ctx, c.cfg.BudgetsCollectionID, userID)
	if err != nil {
		return nil, fmt.Errorf("list budget documents: %w", err)
	}

	out := make([]core.Budget, 0, len(docs))
	for _, doc := range docs {
		var row budgetDoc
		if err := doc.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode budget document %s: %w", doc.Id, err)
		}
		out = append(out, core.Budget{
			ID:       doc.Id,
			Category: core.ParseCategory(row.Category),
			Amount:   core.Money{Cents: row.AmountCents},
			Month:    row.Month,
			Year:     row.Year,
			UserID:   row.UserID,
		})
	}
	return out, nil
}

// UpsertBudget implements remote.BudgetPersister. Appwrite has no native
// upsert on an attribute tuple, so the adapter looks the slot up first and
// updates in place when it exists.
func (c *Client) UpsertBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	if err := ctx.Err(); err != nil {
		return core.Budget{}, err
	}

	data := map[string]interface{}{
		"userId":      b.UserID,
		"category":    string(b.Category),
		"amountCents": b.Amount.Cents,
		"month":       b.Month,
		"year":        b.Year,
	}

	existing, err := c.db.ListDocuments(
		c.cfg.DatabaseID,
		c.cfg.BudgetsCollectionID,
		c.db.WithListDocumentsQueries([]string{
			query.Equal("userId", b.UserID),
			query.Equal("category", string(b.Category)),
			query.Equal("month", b.Month),
			query.Equal("year", b.Year),
			query.Limit(1),
		}),
	)
	if err != nil {
		return core.Budget{}, fmt.Errorf("find budget slot: %w", err)
	}

	if len(existing.Documents) > 0 {
		docID := existing.Documents[0].Id
		if _, err := c.db.UpdateDocument(
			c.cfg.DatabaseID,
			c.cfg.BudgetsCollectionID,
			docID,
			c.db.WithUpdateDocumentData(data),
		); err != nil {
			return core.Budget{}, fmt.Errorf("update budget %s: %w", docID, err)
		}
		b.ID = docID
		slog.InfoContext(ctx, "Budget updated in Appwrite", "id", docID, "category", b.Category, "month", b.Month, "year", b.Year)
		return b, nil
	}

	doc, err := c.db.CreateDocument(
		c.cfg.DatabaseID,
		c.cfg.BudgetsCollectionID,
		id.Unique(),
		data,
	)
	if err != nil {
		return core.Budget{}, fmt.Errorf("create budget: %w", err)
	}
	b.ID = doc.Id
	slog.InfoContext(ctx, "Budget created in Appwrite", "id", doc.Id, "category", b.Category, "month", b.Month, "year", b.Year)
	return b, nil
}

// DeleteBudget implements remote.BudgetPersister.
func (c *Client) DeleteBudget(ctx context.Context, _ string, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := c.db.DeleteDocument(c.cfg.DatabaseID, c.cfg.BudgetsCollectionID, id); err != nil {
		return fmt.Errorf("delete budget %s: %w", id, err)
	}
	return nil
}

// FetchTransactions implements remote.TransactionFetcher.
func (c *Client) FetchTransactions(ctx context.Context, userID string) ([]core.Transaction, error) {
	docs, err := c.listAll(ctx, c.cfg.TransactionsCollection, userID)
	if err != nil {
		return nil, fmt.Errorf("list transaction documents: %w", err)
	}

	out := make([]core.Transaction, 0, len(docs))
	for _, doc := range docs {
		var row transactionDoc
		if err := doc.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode transaction document %s: %w", doc.Id, err)
		}
		date, err := time.Parse(time.RFC3339, row.Date)
		if err != nil {
			return nil, fmt.Errorf("parse transaction date %q: %w", row.Date, err)
		}
		out = append(out, core.Transaction{
			ID:       doc.Id,
			Category: core.ParseCategory(row.Category),
			Amount:   core.Money{Cents: row.AmountCents},
			Type:     core.TransactionType(row.Type),
			Date:     core.Date{Time: date},
			UserID:   row.UserID,
		})
	}
	return out, nil
}

// CreateTransaction implements remote.TransactionPersister.
func (c *Client) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return core.Transaction{}, err
	}
	doc, err := c.db.CreateDocument(
		c.cfg.DatabaseID,
		c.cfg.TransactionsCollection,
		id.Unique(),
		map[string]interface{}{
			"userId":      t.UserID,
			"category":    string(t.Category),
			"amountCents": t.Amount.Cents,
			"type":        string(t.Type),
			"date":        t.Date.Format(time.RFC3339),
		},
	)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	t.ID = doc.Id
	return t, nil
}

// DeleteTransaction implements remote.TransactionPersister.
func (c *Client) DeleteTransaction(ctx context.Context, _ string, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := c.db.DeleteDocument(c.cfg.DatabaseID, c.cfg.TransactionsCollection, id); err != nil {
		return fmt.Errorf("delete transaction %s: %w", id, err)
	}
	return nil
}

// listAll pages through a user's documents in a collection.
func (c *Client) listAll(ctx context.Context, collectionID, userID string) ([]models.Document, error) {
	var out []models.Document
	offset := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := c.db.ListDocuments(
			c.cfg.DatabaseID,
			collectionID,
			c.db.WithListDocumentsQueries([]string{
				query.Equal("userId", userID),
				query.Limit(pageSize),
				query.Offset(offset),
			}),
		)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Documents...)
		if len(page.Documents) < pageSize {
			return out, nil
		}
		offset += len(page.Documents)
	}
}
