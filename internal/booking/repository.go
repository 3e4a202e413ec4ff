package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository is the persistence contract for bookings. InTx runs fn against
// a repository bound to a repeatable-read transaction; combined with LockItem
// it serializes the check-then-insert sequence per item so two concurrent
// creations cannot both pass the conflict check.
type Repository interface {
	InTx(ctx context.Context, fn func(Repository) error) error
	LockItem(ctx context.Context, itemID int64) error

	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id int64) (*Booking, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*Booking, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
	List(ctx context.Context, f Filter) ([]*Booking, error)

	// ListApprovedEndingAfter returns an item's approved bookings that are
	// still ongoing or in the future, sorted by start ascending. Feeds the
	// conflict detector.
	ListApprovedEndingAfter(ctx context.Context, itemID int64, after time.Time) ([]*Booking, error)

	// ListApprovedForItem returns all approved bookings of one item sorted
	// by start ascending. Feeds the last/next summarizer.
	ListApprovedForItem(ctx context.Context, itemID int64) ([]*Booking, error)

	// ListApprovedForItems is the batch form, sorted by item id then start
	// ascending.
	ListApprovedForItems(ctx context.Context, itemIDs []int64) ([]*Booking, error)

	// HasFinishedApproved reports whether the booker holds an approved
	// booking of the item that ended before the given instant.
	HasFinishedApproved(ctx context.Context, itemID, bookerID int64, before time.Time) (bool, error)
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, letting the same
// query code run inside and outside a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type pgxRepository struct {
	q    querier
	pool *pgxpool.Pool // nil when already bound to a transaction
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{q: pool, pool: pool}
}

const bookingColumns = "b.id, b.item_id, i.name, b.booker_id, u.name, i.owner_id, b.start_time, b.end_time, b.status"

func (r *pgxRepository) InTx(ctx context.Context, fn func(Repository) error) error {
	if r.pool == nil {
		return fn(r)
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return fmt.Errorf("begin booking tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&pgxRepository{q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit booking tx failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) LockItem(ctx context.Context, itemID int64) error {
	// Transaction-scoped advisory lock keyed by item id. Released on
	// commit/rollback.
	if _, err := r.q.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", itemID); err != nil {
		return fmt.Errorf("lock item %d failed: %w", itemID, err)
	}
	return nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("bookings").
		Columns("item_id", "booker_id", "start_time", "end_time", "status").
		Values(b.ItemID, b.BookerID, b.Start, b.End, b.Status).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.q.QueryRow(ctx, query, args...).Scan(&b.ID); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	return r.getByID(ctx, id, false)
}

func (r *pgxRepository) GetByIDForUpdate(ctx context.Context, id int64) (*Booking, error) {
	return r.getByID(ctx, id, true)
}

func (r *pgxRepository) getByID(ctx context.Context, id int64, forUpdate bool) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	q := psql.Select(bookingColumns).
		From("bookings b").
		Join("items i ON b.item_id = i.id").
		Join("users u ON b.booker_id = u.id").
		Where(squirrel.Eq{"b.id": id})
	if forUpdate {
		q = q.Suffix("FOR UPDATE OF b")
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	var b Booking
	if err := r.q.QueryRow(ctx, query, args...).Scan(
		&b.ID, &b.ItemID, &b.ItemName, &b.BookerID, &b.BookerName,
		&b.OwnerID, &b.Start, &b.End, &b.Status,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id int64, status Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("bookings").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) List(ctx context.Context, f Filter) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	q := psql.Select(bookingColumns).
		From("bookings b").
		Join("items i ON b.item_id = i.id").
		Join("users u ON b.booker_id = u.id")

	if f.BookerID != 0 {
		q = q.Where(squirrel.Eq{"b.booker_id": f.BookerID})
	}
	if f.OwnerID != 0 {
		q = q.Where(squirrel.Eq{"i.owner_id": f.OwnerID})
	}
	if f.Status != "" {
		q = q.Where(squirrel.Eq{"b.status": f.Status})
	}
	if f.StartBefore != nil {
		q = q.Where(squirrel.Lt{"b.start_time": *f.StartBefore})
	}
	if f.StartAfter != nil {
		q = q.Where(squirrel.Gt{"b.start_time": *f.StartAfter})
	}
	if f.EndBefore != nil {
		q = q.Where(squirrel.Lt{"b.end_time": *f.EndBefore})
	}
	if f.EndAfter != nil {
		q = q.Where(squirrel.Gt{"b.end_time": *f.EndAfter})
	}

	q = q.OrderBy("b.start_time DESC")

	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit)).Offset(uint64(f.Offset))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}
	return r.queryBookings(ctx, query, args)
}

func (r *pgxRepository) ListApprovedEndingAfter(ctx context.Context, itemID int64, after time.Time) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns).
		From("bookings b").
		Join("items i ON b.item_id = i.id").
		Join("users u ON b.booker_id = u.id").
		Where(squirrel.Eq{"b.item_id": itemID, "b.status": StatusApproved}).
		Where(squirrel.Gt{"b.end_time": after}).
		OrderBy("b.start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build approved bookings query failed: %w", err)
	}
	return r.queryBookings(ctx, query, args)
}

func (r *pgxRepository) ListApprovedForItem(ctx context.Context, itemID int64) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns).
		From("bookings b").
		Join("items i ON b.item_id = i.id").
		Join("users u ON b.booker_id = u.id").
		Where(squirrel.Eq{"b.item_id": itemID, "b.status": StatusApproved}).
		OrderBy("b.start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build item bookings query failed: %w", err)
	}
	return r.queryBookings(ctx, query, args)
}

func (r *pgxRepository) ListApprovedForItems(ctx context.Context, itemIDs []int64) ([]*Booking, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns).
		From("bookings b").
		Join("items i ON b.item_id = i.id").
		Join("users u ON b.booker_id = u.id").
		Where(squirrel.Eq{"b.item_id": itemIDs, "b.status": StatusApproved}).
		OrderBy("b.item_id ASC", "b.start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build items bookings query failed: %w", err)
	}
	return r.queryBookings(ctx, query, args)
}

func (r *pgxRepository) HasFinishedApproved(ctx context.Context, itemID, bookerID int64, before time.Time) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sub, args, err := psql.Select("1").
		From("bookings").
		Where(squirrel.Eq{"item_id": itemID, "booker_id": bookerID, "status": StatusApproved}).
		Where(squirrel.Lt{"end_time": before}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build finished booking query failed: %w", err)
	}

	var exists bool
	if err := r.q.QueryRow(ctx, "SELECT EXISTS ("+sub+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check finished booking failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) queryBookings(ctx context.Context, query string, args []any) ([]*Booking, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.ItemID, &b.ItemName, &b.BookerID, &b.BookerName,
			&b.OwnerID, &b.Start, &b.End, &b.Status,
		); err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	return bookings, rows.Err()
}
