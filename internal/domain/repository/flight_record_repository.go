package repository

import (
	"context"

	"pilotbase-logbook/internal/domain/entity"
)

// FlightRecordRepository defines the interface for flight record operations
type FlightRecordRepository interface {
	Initialize(ctx context.Context) error
	GetAll() []entity.FlightRecord
	GetByRole(role entity.Role) []entity.FlightRecord
	GetByReservation(reservationID string) []entity.FlightRecord
	Search(query string) []entity.FlightRecord
	Add(ctx context.Context, record entity.FlightRecord, role entity.Role) (entity.FlightRecord, error)
	Update(ctx context.Context, id string, updated entity.FlightRecord) (bool, error)
	Remove(ctx context.Context, id string) (bool, error)
	ClearAll(ctx context.Context) error
	Reset(ctx context.Context) error
	ForceReset(ctx context.Context) error
}
