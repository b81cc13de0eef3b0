package equipment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/psqlbuilder"
)

var equipmentColumns = []string{
	"id",
	"name",
	"description",
	"quantity",
	"mobile",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с оборудованием
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория оборудования
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую единицу оборудования
func (r *Repository) Create(ctx context.Context, item *domain.Equipment) (*domain.Equipment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("equipment").
		Columns("name", "description", "quantity", "mobile").
		Values(item.Name, item.Description, item.Quantity, item.Mobile).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&item.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	item.CreatedAt = createdAt.Time
	item.UpdatedAt = updatedAt.Time

	return item, nil
}

// GetByID получает оборудование по ID.
// Внутри пишущей транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(equipmentColumns...).
		From("equipment").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.CanLockRows(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	item, err := scanEquipment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEquipmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan equipment: %w", ErrScanRow, err)
	}

	return item, nil
}

// LockByIDs блокирует строки оборудования в порядке возрастания ID и возвращает найденные.
// Отсутствующие ID в результат не попадают.
func (r *Repository) LockByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Equipment, error) {
	result := make(map[int64]*domain.Equipment, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	sorted := append([]int64(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	selectBuilder := psqlbuilder.Select(equipmentColumns...).
		From("equipment").
		Where(squirrel.Eq{"id": sorted}).
		OrderBy("id ASC")

	if dbmetrics.CanLockRows(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	items, err := r.selectEquipment(ctx, "LockByIDs", selectBuilder)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		result[item.ID] = item
	}

	return result, nil
}

// List получает список оборудования, опционально только мобильного или только стационарного
func (r *Repository) List(ctx context.Context, mobile *bool) ([]*domain.Equipment, error) {
	selectBuilder := psqlbuilder.Select(equipmentColumns...).
		From("equipment").
		OrderBy("id ASC")

	if mobile != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"mobile": *mobile})
	}

	return r.selectEquipment(ctx, "List", selectBuilder)
}

// Update обновляет оборудование
func (r *Repository) Update(ctx context.Context, item *domain.Equipment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("equipment").
		Set("name", item.Name).
		Set("description", item.Description).
		Set("quantity", item.Quantity).
		Set("mobile", item.Mobile).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": item.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrEquipmentNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	item.UpdatedAt = updatedAt.Time

	return nil
}

// Delete удаляет оборудование; закрепления и выделения удаляются каскадно
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("equipment").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrEquipmentNotFound
	}

	return nil
}

// CountFixtures число комнат, за которыми закреплено оборудование
func (r *Repository) CountFixtures(ctx context.Context, id int64) (int, error) {
	return r.count(ctx, "CountFixtures", "room_equipment", id)
}

// CountAllocations число выделений оборудования бронированиям
func (r *Repository) CountAllocations(ctx context.Context, id int64) (int, error) {
	return r.count(ctx, "CountAllocations", "booking_equipment", id)
}

func (r *Repository) count(ctx context.Context, op, table string, id int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{"equipment_id": id}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	var n int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %s - scan: %w", ErrScanRow, op, err)
	}

	return n, nil
}

func (r *Repository) selectEquipment(ctx context.Context, op string, selectBuilder squirrel.SelectBuilder) ([]*domain.Equipment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	items := make([]*domain.Equipment, 0)
	for rows.Next() {
		item, err := scanEquipment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return items, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEquipment(row rowScanner) (*domain.Equipment, error) {
	var item domain.Equipment
	var description sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&item.ID,
		&item.Name,
		&description,
		&item.Quantity,
		&item.Mobile,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.Description = description.String
	item.CreatedAt = createdAt.Time
	item.UpdatedAt = updatedAt.Time

	return &item, nil
}
