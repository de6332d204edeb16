package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/communitymap/communitymap/server/service/hours"
	"github.com/communitymap/communitymap/store"
)

func (d *DB) CreateResource(ctx context.Context, create *store.Resource) (*store.Resource, error) {
	scheduleJSON, err := json.Marshal(orEmptySchedule(create.Schedule))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schedule: %w", err)
	}
	offeringsJSON, err := json.Marshal(orEmptyList(create.Offerings))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal offerings: %w", err)
	}
	requirementsJSON, err := json.Marshal(orEmptyList(create.Requirements))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal requirements: %w", err)
	}

	fields := []string{
		"uid", "name", "category", "type", "address", "lat", "lng",
		"phone", "website", "schedule", "offerings", "requirements", "verified",
	}
	placeholderValues := []any{
		create.UID, create.Name, create.Category, create.Type, create.Address, create.Lat, create.Lng,
		create.Phone, create.Website, string(scheduleJSON), string(offeringsJSON), string(requirementsJSON), create.Verified,
	}

	stmt := `INSERT INTO resource (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(placeholderValues)) + `)
		RETURNING id, created_ts, updated_ts, row_status`

	if err := d.db.QueryRowContext(ctx, stmt, placeholderValues...).Scan(
		&create.ID,
		&create.CreatedTs,
		&create.UpdatedTs,
		&create.RowStatus,
	); err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	return create, nil
}

func (d *DB) ListResources(ctx context.Context, find *store.FindResource) ([]*store.Resource, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "resource.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "resource.uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.RowStatus; v != nil {
		where, args = append(where, "resource.row_status = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Category; v != nil {
		where, args = append(where, "resource.category = "+placeholder(len(args)+1)), append(args, *v)
	}
	if find.North != nil && find.South != nil && find.East != nil && find.West != nil {
		where = append(where,
			"resource.lat >= "+placeholder(len(args)+1),
			"resource.lat <= "+placeholder(len(args)+2),
			"resource.lng >= "+placeholder(len(args)+3),
			"resource.lng <= "+placeholder(len(args)+4),
		)
		args = append(args, *find.South, *find.North, *find.West, *find.East)
	}
	if v := find.Search; v != nil {
		pattern := "%" + *v + "%"
		where = append(where, "(resource.name ILIKE "+placeholder(len(args)+1)+" OR resource.address ILIKE "+placeholder(len(args)+2)+")")
		args = append(args, pattern, pattern)
	}

	query := `
		SELECT
			id, uid, created_ts, updated_ts, row_status,
			name, category, type, address, lat, lng,
			phone, website, schedule, offerings, requirements, verified
		FROM resource
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY resource.name ASC`

	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
		if find.Offset != nil {
			query = fmt.Sprintf("%s OFFSET %d", query, *find.Offset)
		}
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query resources: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Resource, 0)
	for rows.Next() {
		var resource store.Resource
		var scheduleJSON, offeringsJSON, requirementsJSON string

		if err := rows.Scan(
			&resource.ID,
			&resource.UID,
			&resource.CreatedTs,
			&resource.UpdatedTs,
			&resource.RowStatus,
			&resource.Name,
			&resource.Category,
			&resource.Type,
			&resource.Address,
			&resource.Lat,
			&resource.Lng,
			&resource.Phone,
			&resource.Website,
			&scheduleJSON,
			&offeringsJSON,
			&requirementsJSON,
			&resource.Verified,
		); err != nil {
			return nil, fmt.Errorf("failed to scan resource: %w", err)
		}

		if err := json.Unmarshal([]byte(scheduleJSON), &resource.Schedule); err != nil {
			resource.Schedule = hours.Schedule{}
		}
		if err := json.Unmarshal([]byte(offeringsJSON), &resource.Offerings); err != nil {
			resource.Offerings = []string{}
		}
		if err := json.Unmarshal([]byte(requirementsJSON), &resource.Requirements); err != nil {
			resource.Requirements = []string{}
		}

		list = append(list, &resource)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate resources: %w", err)
	}

	return list, nil
}

func (d *DB) UpdateResource(ctx context.Context, update *store.UpdateResource) error {
	set, args := []string{"updated_ts = EXTRACT(EPOCH FROM NOW())::BIGINT"}, []any{}

	if v := update.RowStatus; v != nil {
		set, args = append(set, "row_status = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Name; v != nil {
		set, args = append(set, "name = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Category; v != nil {
		set, args = append(set, "category = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Type; v != nil {
		set, args = append(set, "type = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Address; v != nil {
		set, args = append(set, "address = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Lat; v != nil {
		set, args = append(set, "lat = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Lng; v != nil {
		set, args = append(set, "lng = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Phone; v != nil {
		set, args = append(set, "phone = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Website; v != nil {
		set, args = append(set, "website = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Schedule; v != nil {
		scheduleJSON, err := json.Marshal(orEmptySchedule(*v))
		if err != nil {
			return fmt.Errorf("failed to marshal schedule: %w", err)
		}
		set, args = append(set, "schedule = "+placeholder(len(args)+1)), append(args, string(scheduleJSON))
	}
	if v := update.Offerings; v != nil {
		offeringsJSON, err := json.Marshal(orEmptyList(*v))
		if err != nil {
			return fmt.Errorf("failed to marshal offerings: %w", err)
		}
		set, args = append(set, "offerings = "+placeholder(len(args)+1)), append(args, string(offeringsJSON))
	}
	if v := update.Requirements; v != nil {
		requirementsJSON, err := json.Marshal(orEmptyList(*v))
		if err != nil {
			return fmt.Errorf("failed to marshal requirements: %w", err)
		}
		set, args = append(set, "requirements = "+placeholder(len(args)+1)), append(args, string(requirementsJSON))
	}
	if v := update.Verified; v != nil {
		set, args = append(set, "verified = "+placeholder(len(args)+1)), append(args, *v)
	}

	args = append(args, update.ID)
	stmt := `UPDATE resource SET ` + strings.Join(set, ", ") + ` WHERE id = ` + placeholder(len(args))
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("failed to update resource: %w", err)
	}

	return nil
}

func (d *DB) DeleteResource(ctx context.Context, delete *store.DeleteResource) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM comment WHERE resource_id = `+placeholder(1), delete.ID); err != nil {
		return fmt.Errorf("failed to delete resource comments: %w", err)
	}

	result, err := d.db.ExecContext(ctx, `DELETE FROM resource WHERE id = `+placeholder(1), delete.ID)
	if err != nil {
		return fmt.Errorf("failed to delete resource: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("resource not found")
	}

	return nil
}

func orEmptySchedule(s hours.Schedule) hours.Schedule {
	if s == nil {
		return hours.Schedule{}
	}
	return s
}

func orEmptyList(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
