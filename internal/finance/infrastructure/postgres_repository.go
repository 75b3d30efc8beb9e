package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sebuszqo/MyFinance/internal/finance/domain"
	"github.com/shopspring/decimal"
)

type PostgresLedgerRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewPostgresLedgerRepository(db *sql.DB, logger *slog.Logger) *PostgresLedgerRepository {
	return &PostgresLedgerRepository{db: db, logger: logger}
}

func (r *PostgresLedgerRepository) Balance(ctx context.Context, userID string) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.db.QueryRowContext(ctx, `SELECT balance FROM users WHERE id = $1`, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("could not read balance: %w", err)
	}
	return balance, nil
}

func (r *PostgresLedgerRepository) Operations(ctx context.Context, userID string) ([]domain.Operation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, type, amount, category, description, date
		FROM operations
		WHERE user_id = $1
		ORDER BY date DESC, seq DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("could not query operations: %w", err)
	}
	defer rows.Close()

	operations := []domain.Operation{}
	for rows.Next() {
		var op domain.Operation
		if err := rows.Scan(&op.ID, &op.UserID, &op.Type, &op.Amount, &op.Category, &op.Description, &op.Date); err != nil {
			return nil, fmt.Errorf("could not scan operation: %w", err)
		}
		operations = append(operations, op)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return operations, nil
}

func (r *PostgresLedgerRepository) ApplyOperation(ctx context.Context, op domain.Operation, newBalance decimal.Decimal, budgetID string) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			r.safeRollback(ctx, tx)
			panic(p)
		} else if err != nil {
			r.safeRollback(ctx, tx)
		} else {
			err = tx.Commit()
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO operations (id, user_id, type, amount, category, description, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		op.ID, op.UserID, op.Type, op.Amount, op.Category, op.Description, op.Date,
	)
	if err != nil {
		return fmt.Errorf("could not insert operation: %w", err)
	}

	_, err = tx.ExecContext(ctx, `UPDATE users SET balance = $1 WHERE id = $2`, newBalance, op.UserID)
	if err != nil {
		return fmt.Errorf("could not update balance: %w", err)
	}

	if budgetID == "" {
		return nil
	}
	res, err := tx.ExecContext(ctx,
		`UPDATE budgets SET spent = spent + $1 WHERE id = $2 AND user_id = $3`,
		op.Amount, budgetID, op.UserID,
	)
	if err != nil {
		return fmt.Errorf("could not update budget: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not update budget: %w", err)
	}
	if affected != 1 {
		return fmt.Errorf("budget %s not found for user %s", budgetID, op.UserID)
	}
	return nil
}

func (r *PostgresLedgerRepository) safeRollback(ctx context.Context, tx *sql.Tx) {
	if err := tx.Rollback(); err != nil {
		r.logger.ErrorContext(ctx, "transaction rollback failed", "error", err)
	}
}

func (r *PostgresLedgerRepository) Budgets(ctx context.Context, userID string) ([]domain.Budget, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, category, limit_amount, period, spent
		FROM budgets
		WHERE user_id = $1
		ORDER BY seq`, userID)
	if err != nil {
		return nil, fmt.Errorf("could not query budgets: %w", err)
	}
	defer rows.Close()

	budgets := []domain.Budget{}
	for rows.Next() {
		var b domain.Budget
		if err := rows.Scan(&b.ID, &b.UserID, &b.Category, &b.Limit, &b.Period, &b.Spent); err != nil {
			return nil, fmt.Errorf("could not scan budget: %w", err)
		}
		budgets = append(budgets, b)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return budgets, nil
}

func (r *PostgresLedgerRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO budgets (id, user_id, category, limit_amount, period, spent)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		budget.ID, budget.UserID, budget.Category, budget.Limit, budget.Period, budget.Spent,
	)
	if err != nil {
		return fmt.Errorf("could not insert budget: %w", err)
	}
	return nil
}
