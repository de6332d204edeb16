package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/communitymap/communitymap/store"
)

func (d *DB) CreateComment(ctx context.Context, create *store.Comment) (*store.Comment, error) {
	fields := []string{"resource_id", "author", "content", "status"}
	placeholderValues := []any{create.ResourceID, create.Author, create.Content, create.Status}

	stmt := `INSERT INTO comment (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(placeholderValues)) + `)
		RETURNING id, created_ts`

	if err := d.db.QueryRowContext(ctx, stmt, placeholderValues...).Scan(
		&create.ID,
		&create.CreatedTs,
	); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return create, nil
}

func (d *DB) ListComments(ctx context.Context, find *store.FindComment) ([]*store.Comment, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "comment.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.ResourceID; v != nil {
		where, args = append(where, "comment.resource_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Status; v != nil {
		where, args = append(where, "comment.status = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT id, resource_id, created_ts, author, content, status
		FROM comment
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY comment.created_ts DESC`

	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
		if find.Offset != nil {
			query = fmt.Sprintf("%s OFFSET %d", query, *find.Offset)
		}
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Comment, 0)
	for rows.Next() {
		var comment store.Comment
		if err := rows.Scan(
			&comment.ID,
			&comment.ResourceID,
			&comment.CreatedTs,
			&comment.Author,
			&comment.Content,
			&comment.Status,
		); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		list = append(list, &comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comments: %w", err)
	}

	return list, nil
}

func (d *DB) UpdateComment(ctx context.Context, update *store.UpdateComment) error {
	set, args := []string{}, []any{}

	if v := update.Status; v != nil {
		set, args = append(set, "status = "+placeholder(len(args)+1)), append(args, *v)
	}
	if len(set) == 0 {
		return nil
	}

	args = append(args, update.ID)
	stmt := `UPDATE comment SET ` + strings.Join(set, ", ") + ` WHERE id = ` + placeholder(len(args))
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}

	return nil
}

func (d *DB) DeleteComment(ctx context.Context, delete *store.DeleteComment) error {
	result, err := d.db.ExecContext(ctx, `DELETE FROM comment WHERE id = `+placeholder(1), delete.ID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("comment not found")
	}

	return nil
}
