package room

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/psqlbuilder"
)

// GetFixtures получает закреплённое оборудование комнат, сгруппированное по ID комнаты
func (r *Repository) GetFixtures(ctx context.Context, roomIDs []int64) (map[int64][]domain.FixedEquipment, error) {
	result := make(map[int64][]domain.FixedEquipment, len(roomIDs))
	if len(roomIDs) == 0 {
		return result, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("re.room_id", "re.equipment_id", "e.name", "re.quantity").
		From("room_equipment re").
		Join("equipment e ON e.id = re.equipment_id").
		Where(squirrel.Eq{"re.room_id": roomIDs}).
		OrderBy("re.room_id ASC", "re.equipment_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetFixtures - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetFixtures - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var f domain.FixedEquipment
		if err := rows.Scan(&f.RoomID, &f.EquipmentID, &f.Name, &f.Quantity); err != nil {
			return nil, fmt.Errorf("%w: GetFixtures - scan row: %w", ErrScanRow, err)
		}
		result[f.RoomID] = append(result[f.RoomID], f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetFixtures - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// ReplaceFixtures заменяет набор закреплённого оборудования комнаты
func (r *Repository) ReplaceFixtures(ctx context.Context, roomID int64, fixtures []domain.FixedEquipment) error {
	if err := r.DeleteFixtures(ctx, roomID); err != nil {
		return err
	}

	if len(fixtures) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("room_equipment").
		Columns("room_id", "equipment_id", "quantity")
	for _, f := range fixtures {
		insertBuilder = insertBuilder.Values(roomID, f.EquipmentID, f.Quantity)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceFixtures - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceFixtures - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// DeleteFixtures удаляет всё закреплённое оборудование комнаты
func (r *Repository) DeleteFixtures(ctx context.Context, roomID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("room_equipment").
		Where(squirrel.Eq{"room_id": roomID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteFixtures - build delete query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteFixtures - execute delete: %w", ErrExecQuery, err)
	}

	return nil
}
