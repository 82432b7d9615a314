package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/notelog/backend/internal/model"
)

// Table - 사용자 소유 리소스 테이블 정의.
//
// Columns는 id, user_id, created_at, updated_at을 제외한 컬럼이며
// Dest/Args는 같은 순서로 필드를 돌려줘야 한다.
type Table[T any] struct {
	Name    string
	Columns []string
	OrderBy string
	Meta    func(*T) *model.Meta
	Dest    func(*T) []any
	Args    func(*T) []any
	Less    func(a, b *T) bool
}

func (t Table[T]) selectList() string {
	return "id, user_id, " + strings.Join(t.Columns, ", ") + ", created_at, updated_at"
}

func (t Table[T]) listQuery() string {
	return fmt.Sprintf(`SELECT %s FROM %s WHERE user_id = $1 ORDER BY %s`, t.selectList(), t.Name, t.OrderBy)
}

// insertQuery - 컬럼 순서: id, user_id, Columns..., created_at, updated_at
func (t Table[T]) insertQuery() string {
	return fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`, t.Name, t.selectList(), placeholders(1, len(t.Columns)+4))
}

func (t Table[T]) insertArgs(rec *T) []any {
	meta := t.Meta(rec)

	args := make([]any, 0, len(t.Columns)+4)
	args = append(args, meta.ID, meta.UserID)
	args = append(args, t.Args(rec)...)
	return append(args, meta.CreatedAt, meta.UpdatedAt)
}

func (t Table[T]) lockQuery() string {
	return fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 AND user_id = $2 FOR UPDATE`, t.selectList(), t.Name)
}

// updateQuery - $1..$n은 Columns, $n+1은 updated_at, $n+2/$n+3은 id/user_id
func (t Table[T]) updateQuery() string {
	n := len(t.Columns)
	sets := make([]string, 0, n+1)
	for i, col := range t.Columns {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, i+1))
	}
	sets = append(sets, fmt.Sprintf("updated_at = $%d", n+1))

	return fmt.Sprintf(
		`UPDATE %s SET %s WHERE id = $%d AND user_id = $%d`,
		t.Name, strings.Join(sets, ", "), n+2, n+3,
	)
}

func (t Table[T]) updateArgs(rec *T, ownerID, id uuid.UUID) []any {
	args := make([]any, 0, len(t.Columns)+3)
	args = append(args, t.Args(rec)...)
	return append(args, t.Meta(rec).UpdatedAt, id, ownerID)
}

func (t Table[T]) deleteQuery() string {
	return fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND user_id = $2`, t.Name)
}

func (t Table[T]) scan(row pgx.Row) (*T, error) {
	var rec T
	meta := t.Meta(&rec)

	dest := make([]any, 0, len(t.Columns)+4)
	dest = append(dest, &meta.ID, &meta.UserID)
	dest = append(dest, t.Dest(&rec)...)
	dest = append(dest, &meta.CreatedAt, &meta.UpdatedAt)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Collection - Postgres 기반 소유 리소스 저장소.
// 모든 조회/수정/삭제는 id AND user_id 조건으로만 동작한다.
type Collection[T any] struct {
	pool  *pgxpool.Pool
	table Table[T]
}

func NewCollection[T any](pool *pgxpool.Pool, table Table[T]) *Collection[T] {
	return &Collection[T]{pool: pool, table: table}
}

func (c *Collection[T]) List(ctx context.Context, ownerID uuid.UUID) ([]T, error) {
	rows, err := c.pool.Query(ctx, c.table.listQuery(), ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", c.table.Name, err)
	}
	defer rows.Close()

	list := []T{}
	for rows.Next() {
		rec, err := c.table.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", c.table.Name, err)
		}
		list = append(list, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", c.table.Name, err)
	}
	return list, nil
}

func (c *Collection[T]) Insert(ctx context.Context, rec *T) error {
	if _, err := c.pool.Exec(ctx, c.table.insertQuery(), c.table.insertArgs(rec)...); err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("failed to insert into %s: %w", c.table.Name, err)
	}
	return nil
}

// Update - 행을 잠근 뒤 mutate를 적용하고 저장한다 (read-modify-write).
// mutate가 에러를 돌려주면 아무것도 저장하지 않는다.
func (c *Collection[T]) Update(ctx context.Context, ownerID, id uuid.UUID, mutate func(*T) error) (*T, error) {
	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	rec, err := c.table.scan(tx.QueryRow(ctx, c.table.lockQuery(), id, ownerID))
	if err != nil {
		if IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load %s: %w", c.table.Name, err)
	}

	if err := mutate(rec); err != nil {
		return nil, err
	}

	tag, err := tx.Exec(ctx, c.table.updateQuery(), c.table.updateArgs(rec, ownerID, id)...)
	if err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", c.table.Name, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit %s update: %w", c.table.Name, err)
	}
	return rec, nil
}

func (c *Collection[T]) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := c.pool.Exec(ctx, c.table.deleteQuery(), id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", c.table.Name, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// placeholders - "$from, ..., $(from+n-1)"
func placeholders(from, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", from+i)
	}
	return strings.Join(parts, ", ")
}
