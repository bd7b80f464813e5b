// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sales-report/backend/internal/application/adapter"
	"github.com/sales-report/backend/internal/domain/entity"
	"github.com/sales-report/backend/internal/domain/valueobject"
	"github.com/sales-report/backend/internal/integration/persistence/model"
)

// insertBatchSize is the number of rows inserted per statement during ReplaceAll.
const insertBatchSize = 200

// likeEscaper escapes LIKE wildcards so search terms match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// priceRangeExpr maps a price to its bucket label in SQL.
var priceRangeExpr = func() string {
	var b strings.Builder
	b.WriteString("CASE")
	for _, bucket := range valueobject.PriceBuckets {
		if !bucket.Bounded {
			fmt.Fprintf(&b, " ELSE '%s'", bucket.Label)
			continue
		}
		fmt.Fprintf(&b, " WHEN price < %s THEN '%s'", bucket.Upper.String(), bucket.Label)
	}
	b.WriteString(" END")
	return b.String()
}()

// transactionRepository implements the adapter.TransactionStore interface on GORM.
// It works with both the PostgreSQL and the SQLite dialector.
type transactionRepository struct {
	*transactionReader
	db *gorm.DB
}

// transactionReader runs the read queries. Inside a view it is bound to a
// transaction, whose connection runs one statement at a time, so mu
// serializes concurrent callers.
type transactionReader struct {
	db *gorm.DB
	mu *sync.Mutex
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionStore {
	return &transactionRepository{
		transactionReader: &transactionReader{db: db},
		db:                db,
	}
}

// View runs fn inside a read-only transaction. PostgreSQL runs it at
// REPEATABLE READ so every statement sees the snapshot taken by the first one.
// SQLite transactions are serializable already.
func (r *transactionRepository) View(ctx context.Context, fn func(reader adapter.TransactionReader) error) error {
	var opts []*sql.TxOptions
	if r.db.Dialector.Name() == "postgres" {
		opts = append(opts, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&transactionReader{db: tx, mu: &sync.Mutex{}})
	}, opts...)
}

// lock serializes statements when the reader is bound to a transaction.
func (r *transactionReader) lock() func() {
	if r.mu == nil {
		return func() {}
	}
	r.mu.Lock()
	return r.mu.Unlock
}

// Find retrieves a page of matching transactions ordered by ID.
func (r *transactionReader) Find(ctx context.Context, predicate valueobject.TransactionPredicate, skip, limit int) ([]*entity.Transaction, error) {
	defer r.lock()()

	var transactionModels []model.TransactionModel
	query := r.filtered(ctx, predicate).Order("id ASC").Offset(skip)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&transactionModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find transactions: %w", err)
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = transactionModels[i].ToEntity()
	}
	return transactions, nil
}

// Count returns the number of matching transactions.
func (r *transactionReader) Count(ctx context.Context, predicate valueobject.TransactionPredicate) (int64, error) {
	defer r.lock()()

	var total int64
	if err := r.filtered(ctx, predicate).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return total, nil
}

// SumPrice returns the total price of matching transactions.
func (r *transactionReader) SumPrice(ctx context.Context, predicate valueobject.TransactionPredicate) (decimal.Decimal, error) {
	defer r.lock()()

	var result struct {
		Total decimal.Decimal `gorm:"column:total"`
	}
	err := r.filtered(ctx, predicate).
		Select("COALESCE(SUM(price), 0) AS total").
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum transaction prices: %w", err)
	}
	return result.Total, nil
}

// GroupCount counts matching transactions per category or price range.
func (r *transactionReader) GroupCount(ctx context.Context, predicate valueobject.TransactionPredicate, field adapter.GroupField) (map[string]int64, error) {
	var groupExpr string
	switch field {
	case adapter.GroupByCategory:
		groupExpr = "category"
	case adapter.GroupByPriceRange:
		groupExpr = priceRangeExpr
	default:
		return nil, fmt.Errorf("unsupported group field %q", field)
	}

	defer r.lock()()

	var rows []struct {
		GroupKey string `gorm:"column:group_key"`
		Count    int64  `gorm:"column:count"`
	}
	err := r.filtered(ctx, predicate).
		Select(groupExpr + " AS group_key, COUNT(*) AS count").
		Group("group_key").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group transactions by %s: %w", field, err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.GroupKey] = row.Count
	}
	return counts, nil
}

// ReplaceAll deletes every transaction and inserts the new set in one database
// transaction. Readers keep seeing the previous set until commit.
func (r *transactionRepository) ReplaceAll(ctx context.Context, transactions []*entity.Transaction) error {
	models := make([]*model.TransactionModel, len(transactions))
	for i, t := range transactions {
		models[i] = model.TransactionFromEntity(t)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.TransactionModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear transactions: %w", err)
		}
		if len(models) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(models, insertBatchSize).Error; err != nil {
			return fmt.Errorf("failed to insert transactions: %w", err)
		}
		return nil
	})
}

// Ping checks the database connection.
func (r *transactionRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// filtered starts a query on the transactions table with the predicate applied.
func (r *transactionReader) filtered(ctx context.Context, predicate valueobject.TransactionPredicate) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&model.TransactionModel{})

	if predicate.Month.MatchesNothing() {
		return query.Where("1 = 0")
	}
	if month, ok := predicate.Month.Month(); ok {
		query = query.Where("sale_month = ?", int(month))
	}
	if predicate.Sold != nil {
		query = query.Where("sold = ?", *predicate.Sold)
	}
	if !predicate.Search.IsEmpty() {
		pattern := "%" + likeEscaper.Replace(predicate.Search.Term()) + "%"
		query = query.Where(
			`(title_search LIKE ? ESCAPE '\' OR description_search LIKE ? ESCAPE '\' OR price_text LIKE ? ESCAPE '\')`,
			pattern, pattern, pattern,
		)
	}

	return query
}
