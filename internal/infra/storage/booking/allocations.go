package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/psqlbuilder"
)

var allocationColumns = []string{
	"id",
	"booking_id",
	"equipment_id",
	"quantity",
	"start_time",
	"end_time",
}

// CreateAllocations сохраняет выделения оборудования бронирования одним запросом
func (r *Repository) CreateAllocations(ctx context.Context, bookingID int64, allocations []*domain.EquipmentAllocation) error {
	if len(allocations) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("booking_equipment").
		Columns("booking_id", "equipment_id", "quantity", "start_time", "end_time")

	for _, a := range allocations {
		a.BookingID = bookingID
		insertBuilder = insertBuilder.Values(bookingID, a.EquipmentID, a.Quantity, a.StartTime, a.EndTime)
	}

	query, args, err := insertBuilder.Suffix("RETURNING id").ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateAllocations - build insert query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: CreateAllocations - execute insert: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	// PostgreSQL возвращает строки RETURNING в порядке VALUES
	i := 0
	for rows.Next() {
		if i >= len(allocations) {
			break
		}
		if err := rows.Scan(&allocations[i].ID); err != nil {
			return fmt.Errorf("%w: CreateAllocations - scan id: %w", ErrScanRow, err)
		}
		i++
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: CreateAllocations - rows error: %w", ErrScanRow, err)
	}

	return nil
}

// DeleteAllocations удаляет все выделения оборудования бронирования
func (r *Repository) DeleteAllocations(ctx context.Context, bookingID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("booking_equipment").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteAllocations - build delete query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteAllocations - execute delete: %w", ErrExecQuery, err)
	}

	return nil
}

// GetAllocationsByBookingIDs получает выделения оборудования для набора бронирований
func (r *Repository) GetAllocationsByBookingIDs(ctx context.Context, bookingIDs []int64) ([]*domain.EquipmentAllocation, error) {
	if len(bookingIDs) == 0 {
		return []*domain.EquipmentAllocation{}, nil
	}

	return r.selectAllocations(ctx, "GetAllocationsByBookingIDs",
		psqlbuilder.Select(allocationColumns...).
			From("booking_equipment").
			Where(squirrel.Eq{"booking_id": bookingIDs}).
			OrderBy("booking_id ASC", "id ASC"),
	)
}

// GetOverlappingAllocations возвращает выделения единицы оборудования, пересекающие окно.
// excludeBookingID исключает выделения изменяемого бронирования.
func (r *Repository) GetOverlappingAllocations(ctx context.Context, equipmentID int64, window domain.Interval, excludeBookingID *int64) ([]*domain.EquipmentAllocation, error) {
	selectBuilder := psqlbuilder.Select(allocationColumns...).
		From("booking_equipment").
		Where(squirrel.Eq{"equipment_id": equipmentID}).
		Where(squirrel.Lt{"start_time": window.End}).
		Where(squirrel.Gt{"end_time": window.Start})

	if excludeBookingID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"booking_id": *excludeBookingID})
	}

	return r.selectAllocations(ctx, "GetOverlappingAllocations", selectBuilder.OrderBy("start_time ASC"))
}

// GetAllocationsInWindow возвращает все выделения, пересекающие окно (для отчёта о доступности)
func (r *Repository) GetAllocationsInWindow(ctx context.Context, window domain.Interval) ([]*domain.EquipmentAllocation, error) {
	return r.selectAllocations(ctx, "GetAllocationsInWindow",
		psqlbuilder.Select(allocationColumns...).
			From("booking_equipment").
			Where(squirrel.Lt{"start_time": window.End}).
			Where(squirrel.Gt{"end_time": window.Start}).
			OrderBy("equipment_id ASC", "start_time ASC"),
	)
}

// GetAllocationsByEquipment возвращает все выделения единицы оборудования
func (r *Repository) GetAllocationsByEquipment(ctx context.Context, equipmentID int64) ([]*domain.EquipmentAllocation, error) {
	return r.selectAllocations(ctx, "GetAllocationsByEquipment",
		psqlbuilder.Select(allocationColumns...).
			From("booking_equipment").
			Where(squirrel.Eq{"equipment_id": equipmentID}).
			OrderBy("start_time ASC"),
	)
}

func (r *Repository) selectAllocations(ctx context.Context, op string, selectBuilder squirrel.SelectBuilder) ([]*domain.EquipmentAllocation, error) {
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

	allocations, err := scanAllocations(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, op)
	}

	return allocations, nil
}

func scanAllocations(rows *sql.Rows) ([]*domain.EquipmentAllocation, error) {
	allocations := make([]*domain.EquipmentAllocation, 0)

	for rows.Next() {
		var a domain.EquipmentAllocation
		if err := rows.Scan(&a.ID, &a.BookingID, &a.EquipmentID, &a.Quantity, &a.StartTime, &a.EndTime); err != nil {
			return nil, fmt.Errorf("%w: scanAllocations - scan row: %w", ErrScanRow, err)
		}
		a.StartTime = a.StartTime.UTC()
		a.EndTime = a.EndTime.UTC()
		allocations = append(allocations, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAllocations - rows error: %w", ErrScanRow, err)
	}

	return allocations, nil
}
