// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joycdecor/joycdecor/internal/platform/apperr"
	"github.com/joycdecor/joycdecor/internal/platform/database/schema"
	"github.com/joycdecor/joycdecor/internal/platform/dberr"
)

const resourceItem = "Item"

// PostgresRepository implements [Repository] on the catalog.item table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed item store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var itemColumns = strings.Join(schema.CatalogItem.Columns(), ", ")

/*
List returns one page of items and the total count for the filter.

The total travels with every row through COUNT(*) OVER(), so a page costs one
round-trip. An out-of-range page therefore reports a total of 0.
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Item, int, error) {
	var args []any
	where := ""
	if filter.Category != "" {
		where = fmt.Sprintf("WHERE %s = $1", schema.CatalogItem.Category)
		args = append(args, string(filter.Category))
	}

	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		%s
		ORDER BY %s DESC, %s DESC
		LIMIT $%d OFFSET $%d`,
		itemColumns, schema.CatalogItem.Table, where,
		schema.CatalogItem.CreatedAt, schema.CatalogItem.ID,
		len(args)+1, len(args)+2,
	)
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceItem, "list_items")
	}
	defer rows.Close()

	items := make([]*Item, 0, limit)
	total := 0
	for rows.Next() {
		item := &Item{}
		if err := rows.Scan(append(scanTargets(item), &total)...); err != nil {
			return nil, 0, dberr.Wrap(err, resourceItem, "scan_item")
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, resourceItem, "iterate_items")
	}

	return items, total, nil
}

// FindByID loads an item by primary key.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Item, error) {
	return repository.findOne(context, schema.CatalogItem.ID, id)
}

// FindBySlug loads an item by its URL slug.
func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Item, error) {
	return repository.findOne(context, schema.CatalogItem.Slug, slug)
}

func (repository *PostgresRepository) findOne(context context.Context, column, value string) (*Item, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, itemColumns, schema.CatalogItem.Table, column)

	item := &Item{}
	if err := repository.pool.QueryRow(context, query, value).Scan(scanTargets(item)...); err != nil {
		return nil, dberr.Wrap(err, resourceItem, "find_item_by_"+column)
	}
	return item, nil
}

// Create inserts the item; timestamps are assigned by the database.
func (repository *PostgresRepository) Create(context context.Context, item *Item) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING %s, %s`,
		schema.CatalogItem.Table,
		schema.CatalogItem.ID, schema.CatalogItem.Slug, schema.CatalogItem.Title, schema.CatalogItem.Category,
		schema.CatalogItem.Images, schema.CatalogItem.Videos, schema.CatalogItem.Description,
		schema.CatalogItem.Features, schema.CatalogItem.Rating, schema.CatalogItem.Reviews,
		schema.CatalogItem.CreatedBy,
		schema.CatalogItem.CreatedAt, schema.CatalogItem.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		item.ID, item.Slug, item.Title, string(item.Category),
		item.Images, item.Video, item.Description,
		item.Features, item.Rating, item.Reviews,
		nullable(item.CreatedBy),
	).Scan(&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, resourceItem, "create_item")
	}
	return nil
}

// Update overwrites the editable fields. A missing row yields NOT_FOUND.
func (repository *PostgresRepository) Update(context context.Context, item *Item) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9, %s = $10, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s, %s`,
		schema.CatalogItem.Table,
		schema.CatalogItem.Slug, schema.CatalogItem.Title, schema.CatalogItem.Category,
		schema.CatalogItem.Images, schema.CatalogItem.Videos, schema.CatalogItem.Description,
		schema.CatalogItem.Features, schema.CatalogItem.Rating, schema.CatalogItem.Reviews,
		schema.CatalogItem.UpdatedAt,
		schema.CatalogItem.ID,
		schema.CatalogItem.CreatedBy, schema.CatalogItem.CreatedAt, schema.CatalogItem.UpdatedAt,
	)

	var createdBy *string
	err := repository.pool.QueryRow(context, query,
		item.ID, item.Slug, item.Title, string(item.Category),
		item.Images, item.Video, item.Description,
		item.Features, item.Rating, item.Reviews,
	).Scan(&createdBy, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, resourceItem, "update_item")
	}

	item.CreatedBy = deref(createdBy)
	return nil
}

// Delete removes the item. A missing row yields NOT_FOUND.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogItem.Table, schema.CatalogItem.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resourceItem, "delete_item")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceItem)
	}
	return nil
}

// scanTargets returns destinations in [schema.CatalogItemTable.Columns] order.
func scanTargets(item *Item) []any {
	return []any{
		&item.ID, &item.Slug, &item.Title, (*string)(&item.Category),
		&item.Images, &item.Video, &item.Description, &item.Features,
		&item.Rating, &item.Reviews, scanNullable{target: &item.CreatedBy},
		&item.CreatedAt, &item.UpdatedAt,
	}
}

// scanNullable scans a nullable text/uuid column into a plain string.
type scanNullable struct {
	target *string
}

func (nullable scanNullable) Scan(source any) error {
	switch value := source.(type) {
	case nil:
		*nullable.target = ""
	case string:
		*nullable.target = value
	default:
		return fmt.Errorf("catalog: cannot scan %T into string", source)
	}
	return nil
}

func nullable(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
