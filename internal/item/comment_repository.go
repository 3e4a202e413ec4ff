package item

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CommentRepository stores item comments.
type CommentRepository interface {
	Create(ctx context.Context, cm *Comment) error
	ListByItem(ctx context.Context, itemID int64) ([]*Comment, error)
	ListByItems(ctx context.Context, itemIDs []int64) ([]*Comment, error)
	ExistsByItemAndAuthor(ctx context.Context, itemID, authorID int64) (bool, error)
}

type pgxCommentRepository struct {
	pool *pgxpool.Pool
}

func NewPgxCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &pgxCommentRepository{pool: pool}
}

const commentColumns = "c.id, c.text, c.item_id, c.author_id, u.name, c.created_at"

func (r *pgxCommentRepository) Create(ctx context.Context, cm *Comment) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("comments").
		Columns("text", "item_id", "author_id", "created_at").
		Values(cm.Text, cm.ItemID, cm.AuthorID, cm.Created).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create comment query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&cm.ID); err != nil {
		return fmt.Errorf("create comment failed: %w", err)
	}
	return nil
}

func (r *pgxCommentRepository) ListByItem(ctx context.Context, itemID int64) ([]*Comment, error) {
	return r.list(ctx, squirrel.Eq{"c.item_id": itemID})
}

func (r *pgxCommentRepository) ListByItems(ctx context.Context, itemIDs []int64) ([]*Comment, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	return r.list(ctx, squirrel.Eq{"c.item_id": itemIDs})
}

func (r *pgxCommentRepository) list(ctx context.Context, where squirrel.Eq) ([]*Comment, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(commentColumns).
		From("comments c").
		Join("users u ON c.author_id = u.id").
		Where(where).
		OrderBy("c.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list comments query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list comments failed: %w", err)
	}
	defer rows.Close()

	var comments []*Comment
	for rows.Next() {
		var cm Comment
		if err := rows.Scan(&cm.ID, &cm.Text, &cm.ItemID, &cm.AuthorID, &cm.AuthorName, &cm.Created); err != nil {
			return nil, fmt.Errorf("scan comment failed: %w", err)
		}
		comments = append(comments, &cm)
	}
	return comments, rows.Err()
}

func (r *pgxCommentRepository) ExistsByItemAndAuthor(ctx context.Context, itemID, authorID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM comments WHERE item_id = $1 AND author_id = $2)",
		itemID, authorID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check comment existence failed: %w", err)
	}
	return exists, nil
}
