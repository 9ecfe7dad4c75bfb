// Package fleet contiene el service de vehículos.
package fleet

import (
	"context"
	"time"

	"github.com/dropDatabas3/minimalapi/internal/domain/repository"
	"github.com/dropDatabas3/minimalapi/internal/observability/logger"
	"github.com/dropDatabas3/minimalapi/internal/validation"
)

// FleetService define las operaciones sobre vehículos.
type FleetService interface {
	Create(ctx context.Context, in repository.VehicleInput) (*repository.Vehicle, error)
	GetByID(ctx context.Context, id int64) (*repository.Vehicle, error)
	Update(ctx context.Context, id int64, in repository.VehicleInput) (*repository.Vehicle, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter repository.VehicleFilter) ([]repository.Vehicle, error)
}

type fleetService struct {
	repo repository.VehicleRepository
	now  func() time.Time
}

// NewFleetService crea el service. now fija el año actual para la validación (nil = time.Now).
func NewFleetService(repo repository.VehicleRepository, now func() time.Time) FleetService {
	if now == nil {
		now = time.Now
	}
	return &fleetService{repo: repo, now: now}
}

const componentFleet = "fleet"

func (s *fleetService) validate(in repository.VehicleInput) error {
	return validation.Vehicle(in.Name, in.Brand, in.Year, s.now().Year())
}

func (s *fleetService) Create(ctx context.Context, in repository.VehicleInput) (*repository.Vehicle, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentFleet),
		logger.Op("Create"),
	)

	if err := s.validate(in); err != nil {
		log.Debug("invalid vehicle", logger.Err(err))
		return nil, err
	}

	v, err := s.repo.Create(ctx, in)
	if err != nil {
		log.Error("failed to create vehicle", logger.Err(err))
		return nil, err
	}

	log.Info("vehicle created", logger.VehicleID(v.ID))
	return v, nil
}

func (s *fleetService) GetByID(ctx context.Context, id int64) (*repository.Vehicle, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil && !repository.IsNotFound(err) {
		logger.From(ctx).Error("failed to get vehicle",
			logger.Layer("service"),
			logger.Component(componentFleet),
			logger.Op("GetByID"),
			logger.VehicleID(id),
			logger.Err(err),
		)
	}
	return v, err
}

// Update responde NotFound antes de validar el cuerpo.
func (s *fleetService) Update(ctx context.Context, id int64, in repository.VehicleInput) (*repository.Vehicle, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentFleet),
		logger.Op("Update"),
		logger.VehicleID(id),
	)

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if !repository.IsNotFound(err) {
			log.Error("failed to load vehicle", logger.Err(err))
		}
		return nil, err
	}

	if err := s.validate(in); err != nil {
		log.Debug("invalid vehicle", logger.Err(err))
		return nil, err
	}

	v, err := s.repo.Update(ctx, id, in)
	if err != nil {
		if !repository.IsNotFound(err) {
			log.Error("failed to update vehicle", logger.Err(err))
		}
		return nil, err
	}

	log.Info("vehicle updated")
	return v, nil
}

func (s *fleetService) Delete(ctx context.Context, id int64) error {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentFleet),
		logger.Op("Delete"),
		logger.VehicleID(id),
	)

	if err := s.repo.Delete(ctx, id); err != nil {
		if !repository.IsNotFound(err) {
			log.Error("failed to delete vehicle", logger.Err(err))
		}
		return err
	}

	log.Info("vehicle deleted")
	return nil
}

func (s *fleetService) List(ctx context.Context, filter repository.VehicleFilter) ([]repository.Vehicle, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentFleet),
		logger.Op("List"),
	)

	filter.Page = filter.Page.Normalize()
	vehicles, err := s.repo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list vehicles", logger.Err(err))
		return nil, err
	}

	log.Debug("vehicles listed", logger.Page(int(filter.Page)), logger.Count(len(vehicles)))
	return vehicles, nil
}
