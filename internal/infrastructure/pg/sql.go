package pg

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"inventory-admin/internal/application"
	"inventory-admin/internal/domain"
	"inventory-admin/internal/infrastructure/logx"
	"inventory-admin/internal/transaction"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// where collects positional filter conditions.
type where struct {
	conds []string
	args  []any
}

// add appends cond, which must contain one %d for the placeholder index.
func (w *where) add(cond string, v any) {
	w.args = append(w.args, v)
	w.conds = append(w.conds, fmt.Sprintf(cond, len(w.args)))
}

func (w *where) activeOnly(f domain.ListFilter) {
	if f.ActiveOnly {
		w.conds = append(w.conds, "active")
	}
}

// query appends the WHERE clause, ordering and paging to base.
func (w *where) query(base string, f domain.ListFilter) (string, []any) {
	var b strings.Builder
	b.WriteString(base)
	if len(w.conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(w.conds, " AND "))
	}
	f = f.Normalize()
	args := append(w.args, f.Limit, f.Offset)
	fmt.Fprintf(&b, " ORDER BY created_at, id LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	return b.String(), args
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return application.ErrNotFound
	}
	return err
}

// versionMiss tells a stale version from a missing row after an update
// matched nothing.
func (d *DB) versionMiss(ctx context.Context, table, id string) error {
	var exists bool
	q := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE id=$1)`, table)
	if err := d.q(ctx).QueryRow(ctx, q, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return application.ErrNotFound
	}
	return fmt.Errorf("%s %s: %w", table, id, transaction.ErrOptimisticLock)
}

func (d *DB) deleteByID(ctx context.Context, table, id string) error {
	q := fmt.Sprintf(`DELETE FROM %s WHERE id=$1`, table)
	tag, err := d.q(ctx).Exec(ctx, q, id)
	if err != nil {
		logx.WithFields(ctx).Warn("sql.exec_failed",
			zap.String("table", table),
			zap.String("operation", "Delete"),
			zap.String("id", id),
			zap.Error(err),
		)
		return err
	}
	if tag.RowsAffected() == 0 {
		return application.ErrNotFound
	}
	return nil
}

func logFailed(ctx context.Context, table, op string, err error) {
	logx.WithFields(ctx).Warn("sql.exec_failed",
		zap.String("table", table),
		zap.String("operation", op),
		zap.Error(err),
	)
}
