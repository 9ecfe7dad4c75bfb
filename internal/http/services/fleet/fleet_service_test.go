package fleet

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/minimalapi/internal/domain/repository"
	"github.com/dropDatabas3/minimalapi/internal/store/adapters/memory"
	"github.com/dropDatabas3/minimalapi/internal/validation"
)

func fixedNow() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }

func newService() (FleetService, repository.VehicleRepository) {
	repo := memory.New().Vehicles()
	return NewFleetService(repo, fixedNow), repo
}

func messages(t *testing.T, err error) []string {
	t.Helper()
	var verrs *validation.Errors
	require.True(t, errors.As(err, &verrs), "expected validation error, got %v", err)
	return verrs.Messages
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	svc, repo := newService()

	_, err := svc.Create(ctx, repository.VehicleInput{Name: "", Brand: "  ", Year: 1899})
	require.Equal(t, []string{
		validation.MsgVehicleNameRequired,
		validation.MsgVehicleBrandRequired,
		validation.MsgVehicleYearRange,
	}, messages(t, err))

	_, err = svc.Create(ctx, repository.VehicleInput{Name: "Fusca", Brand: "VW", Year: 2025})
	require.Equal(t, []string{validation.MsgVehicleYearRange}, messages(t, err))

	list, err := repo.List(ctx, repository.VehicleFilter{Page: 1})
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestCreateBoundaries(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	v, err := svc.Create(ctx, repository.VehicleInput{Name: "Ford T", Brand: "Ford", Year: 1900})
	require.NoError(t, err)
	require.EqualValues(t, 1, v.ID)

	_, err = svc.Create(ctx, repository.VehicleInput{Name: "Onix", Brand: "Chevrolet", Year: 2024})
	require.NoError(t, err)
}

func TestUpdateNotFoundBeforeValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	_, err := svc.Update(ctx, 42, repository.VehicleInput{})
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateInPlace(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	v, err := svc.Create(ctx, repository.VehicleInput{Name: "Fusca", Brand: "Volkswagen", Year: 1970})
	require.NoError(t, err)

	_, err = svc.Update(ctx, v.ID, repository.VehicleInput{Name: "", Brand: "Volkswagen", Year: 1970})
	require.Equal(t, []string{validation.MsgVehicleNameRequired}, messages(t, err))

	got, err := svc.Update(ctx, v.ID, repository.VehicleInput{Name: "Fusca 1600", Brand: "Volkswagen", Year: 1975})
	require.NoError(t, err)
	require.Equal(t, v.ID, got.ID)
	require.Equal(t, "Fusca 1600", got.Name)

	list, err := svc.List(ctx, repository.VehicleFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	v, err := svc.Create(ctx, repository.VehicleInput{Name: "Gol", Brand: "Volkswagen", Year: 2010})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, v.ID))
	require.ErrorIs(t, svc.Delete(ctx, v.ID), repository.ErrNotFound)

	_, err = svc.GetByID(ctx, v.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListFiltersBeforePaging(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	for i := 0; i < 15; i++ {
		brand := "Fiat"
		if i%2 == 0 {
			brand = "Volkswagen"
		}
		_, err := svc.Create(ctx, repository.VehicleInput{Name: "Modelo", Brand: brand, Year: 2000})
		require.NoError(t, err)
	}

	vw, err := svc.List(ctx, repository.VehicleFilter{Brand: "volks", Page: 1})
	require.NoError(t, err)
	require.Len(t, vw, 8)

	fiat1, err := svc.List(ctx, repository.VehicleFilter{Brand: "FIAT", Page: -3})
	require.NoError(t, err)
	require.Len(t, fiat1, 7)

	none, err := svc.List(ctx, repository.VehicleFilter{Brand: "volks", Name: "xyz"})
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestListOutOfRangePageIsEmpty(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()
	for _, name := range []string{"Fusca", "Gol", "Ônix"} {
		_, err := svc.Create(ctx, repository.VehicleInput{Name: name, Brand: "Marca", Year: 2000})
		require.NoError(t, err)
	}

	for _, p := range []repository.Page{2, 1 << 40, 922337203685477582, repository.MaxPage + 1} {
		got, err := svc.List(ctx, repository.VehicleFilter{Page: p})
		require.NoError(t, err, int(p))
		require.NotNil(t, got, int(p))
		require.Empty(t, got, int(p))
	}

	onix, err := svc.List(ctx, repository.VehicleFilter{Name: "ÔNIX", Page: 1})
	require.NoError(t, err)
	require.Len(t, onix, 1)
}
