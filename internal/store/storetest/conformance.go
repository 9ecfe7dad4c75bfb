// Package storetest contiene la batería de tests compartida por todos los adapters.
package storetest

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/minimalapi/internal/domain/repository"
	"github.com/dropDatabas3/minimalapi/internal/domain/types"
	"github.com/dropDatabas3/minimalapi/internal/store"
)

// OpenFunc devuelve una conexión vacía y ya migrada.
type OpenFunc func(t *testing.T) store.AdapterConnection

// Run ejecuta la batería completa. Cada subtest abre su propia conexión.
func Run(t *testing.T, open OpenFunc) {
	t.Run("AdminCreateAndGet", func(t *testing.T) { testAdminCreateAndGet(t, open(t)) })
	t.Run("AdminDuplicateEmail", func(t *testing.T) { testAdminDuplicateEmail(t, open(t)) })
	t.Run("AdminPagination", func(t *testing.T) { testAdminPagination(t, open(t)) })
	t.Run("VehicleCRUD", func(t *testing.T) { testVehicleCRUD(t, open(t)) })
	t.Run("VehiclePagination", func(t *testing.T) { testVehiclePagination(t, open(t)) })
	t.Run("VehicleFilters", func(t *testing.T) { testVehicleFilters(t, open(t)) })
	t.Run("VehicleFilterEscapesWildcards", func(t *testing.T) { testVehicleFilterWildcards(t, open(t)) })
	t.Run("VehicleFilterFoldsUnicode", func(t *testing.T) { testVehicleFilterUnicode(t, open(t)) })
	t.Run("HugePageIsEmpty", func(t *testing.T) { testHugePage(t, open(t)) })
}

func testAdminCreateAndGet(t *testing.T, conn store.AdapterConnection) {
	ctx := context.Background()
	repo := conn.Administrators()

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	a, err := repo.Create(ctx, repository.CreateAdministratorInput{
		Email: "adm@teste.com", Password: "123456", Role: types.RoleAdmin,
	})
	require.NoError(t, err)
	require.NotZero(t, a.ID)

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, *a, *got)

	got, err = repo.GetByEmail(ctx, "adm@teste.com")
	require.NoError(t, err)
	require.Equal(t, a.ID, got.ID)
	require.Equal(t, "123456", got.Password)

	_, err = repo.GetByEmail(ctx, "ADM@teste.com")
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.GetByID(ctx, a.ID+1000)
	require.ErrorIs(t, err, repository.ErrNotFound)

	n, err = repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func testAdminDuplicateEmail(t *testing.T, conn store.AdapterConnection) {
	ctx := context.Background()
	repo := conn.Administrators()
	in := repository.CreateAdministratorInput{Email: "dup@teste.com", Password: "x", Role: types.RoleEditor}

	_, err := repo.Create(ctx, in)
	require.NoError(t, err)
	_, err = repo.Create(ctx, in)
	require.ErrorIs(t, err, repository.ErrConflict)
}

func testAdminPagination(t *testing.T, conn store.AdapterConnection) {
	ctx := context.Background()
	repo := conn.Administrators()
	for i := 1; i <= 15; i++ {
		_, err := repo.Create(ctx, repository.CreateAdministratorInput{
			Email: fmt.Sprintf("adm%02d@teste.com", i), Password: "x", Role: types.RoleEditor,
		})
		require.NoError(t, err)
	}

	p1, err := repo.List(ctx, 1)
	require.NoError(t, err)
	p2, err := repo.List(ctx, 2)
	require.NoError(t, err)
	p3, err := repo.List(ctx, 3)
	require.NoError(t, err)

	require.Len(t, p1, 10)
	require.Len(t, p2, 5)
	require.Empty(t, p3)

	all := append(p1, p2...)
	for i, a := range all {
		require.Equal(t, fmt.Sprintf("adm%02d@teste.com", i+1), a.Email)
	}

	p0, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, p1, p0)
}

func testVehicleCRUD(t *testing.T, conn store.AdapterConnection) {
	ctx := context.Background()
	repo := conn.Vehicles()

	v, err := repo.Create(ctx, repository.VehicleInput{Name: "Fusca", Brand: "VW", Year: 1970})
	require.NoError(t, err)
	require.NotZero(t, v.ID)

	got, err := repo.GetByID(ctx, v.ID)
	require.NoError(t, err)
	require.Equal(t, *v, *got)

	upd, err := repo.Update(ctx, v.ID, repository.VehicleInput{Name: "Fusca 1300", Brand: "Volkswagen", Year: 1975})
	require.NoError(t, err)
	require.Equal(t, v.ID, upd.ID)
	require.Equal(t, "Fusca 1300", upd.Name)

	got, err = repo.GetByID(ctx, v.ID)
	require.NoError(t, err)
	require.Equal(t, *upd, *got)

	_, err = repo.Update(ctx, v.ID+1000, repository.VehicleInput{Name: "x", Brand: "y", Year: 2000})
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, v.ID))
	_, err = repo.GetByID(ctx, v.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, v.ID), repository.ErrNotFound)
}

func testVehiclePagination(t *testing.T, conn store.AdapterConnection) {
	ctx := context.Background()
	repo := conn.Vehicles()
	var ids []int64
	for i := 1; i <= 15; i++ {
		v, err := repo.Create(ctx, repository.VehicleInput{Name: fmt.Sprintf("Carro %02d", i), Brand: "Marca", Year: 2000})
		require.NoError(t, err)
		ids = append(ids, v.ID)
	}

	p1, err := repo.List(ctx, repository.VehicleFilter{Page: 1})
	require.NoError(t, err)
	p2, err := repo.List(ctx, repository.VehicleFilter{Page: 2})
	require.NoError(t, err)
	p9, err := repo.List(ctx, repository.VehicleFilter{Page: 9})
	require.NoError(t, err)

	require.Len(t, p1, 10)
	require.Len(t, p2, 5)
	require.Empty(t, p9)

	var got []int64
	for _, v := range append(p1, p2...) {
		got = append(got, v.ID)
	}
	require.Equal(t, ids, got)
}

func testVehicleFilters(t *testing.T, conn store.AdapterConnection) {
	ctx := context.Background()
	repo := conn.Vehicles()
	for _, in := range []repository.VehicleInput{
		{Name: "Fusca", Brand: "Volkswagen", Year: 1970},
		{Name: "Gol", Brand: "Volkswagen", Year: 1995},
		{Name: "Civic", Brand: "Honda", Year: 2020},
	} {
		_, err := repo.Create(ctx, in)
		require.NoError(t, err)
	}

	names := func(vs []repository.Vehicle) []string {
		out := make([]string, 0, len(vs))
		for _, v := range vs {
			out = append(out, v.Name)
		}
		return out
	}

	res, err := repo.List(ctx, repository.VehicleFilter{Page: 1, Name: "fu"})
	require.NoError(t, err)
	require.Equal(t, []string{"Fusca"}, names(res))

	res, err = repo.List(ctx, repository.VehicleFilter{Page: 1, Brand: "VOLKS"})
	require.NoError(t, err)
	require.Equal(t, []string{"Fusca", "Gol"}, names(res))

	res, err = repo.List(ctx, repository.VehicleFilter{Page: 1, Name: "o", Brand: "volks"})
	require.NoError(t, err)
	require.Equal(t, []string{"Gol"}, names(res))

	res, err = repo.List(ctx, repository.VehicleFilter{Page: 1, Name: "zzz"})
	require.NoError(t, err)
	require.Empty(t, res)
}

func testVehicleFilterWildcards(t *testing.T, conn store.AdapterConnection) {
	ctx := context.Background()
	repo := conn.Vehicles()
	for _, name := range []string{"Modelo 100%", "Modelo 1000", "A_B", "AXB"} {
		_, err := repo.Create(ctx, repository.VehicleInput{Name: name, Brand: "M", Year: 2000})
		require.NoError(t, err)
	}

	res, err := repo.List(ctx, repository.VehicleFilter{Page: 1, Name: "100%"})
	require.NoError(t, err)
	require.Len(t, res, 1)
	require.Equal(t, "Modelo 100%", res[0].Name)

	res, err = repo.List(ctx, repository.VehicleFilter{Page: 1, Name: "a_b"})
	require.NoError(t, err)
	require.Len(t, res, 1)
	require.Equal(t, "A_B", res[0].Name)
}

func testVehicleFilterUnicode(t *testing.T, conn store.AdapterConnection) {
	ctx := context.Background()
	repo := conn.Vehicles()
	for _, in := range []repository.VehicleInput{
		{Name: "Fusca", Brand: "Volkswagen", Year: 1970},
		{Name: "Gol", Brand: "Volkswagen", Year: 1995},
		{Name: "Ônix", Brand: "Chevrolet", Year: 2020},
		{Name: "C3", Brand: "Citroën", Year: 2022},
	} {
		_, err := repo.Create(ctx, in)
		require.NoError(t, err)
	}

	for _, name := range []string{"ônix", "ÔNIX", "Ôn"} {
		res, err := repo.List(ctx, repository.VehicleFilter{Page: 1, Name: name})
		require.NoError(t, err)
		require.Len(t, res, 1, name)
		require.Equal(t, "Ônix", res[0].Name, name)
	}

	res, err := repo.List(ctx, repository.VehicleFilter{Page: 1, Brand: "CITROËN"})
	require.NoError(t, err)
	require.Len(t, res, 1)
	require.Equal(t, "C3", res[0].Name)
}

func testHugePage(t *testing.T, conn store.AdapterConnection) {
	ctx := context.Background()
	for i := 1; i <= 3; i++ {
		_, err := conn.Vehicles().Create(ctx, repository.VehicleInput{Name: fmt.Sprintf("Carro %d", i), Brand: "Marca", Year: 2000})
		require.NoError(t, err)
	}
	_, err := conn.Administrators().Create(ctx, repository.CreateAdministratorInput{
		Email: "adm@teste.com", Password: "x", Role: types.RoleAdmin,
	})
	require.NoError(t, err)

	for _, p := range []repository.Page{repository.MaxPage, repository.Page(922337203685477582), repository.Page(math.MaxInt)} {
		vs, err := conn.Vehicles().List(ctx, repository.VehicleFilter{Page: p})
		require.NoError(t, err, int(p))
		require.Empty(t, vs, int(p))

		vs, err = conn.Vehicles().List(ctx, repository.VehicleFilter{Page: p, Brand: "marca"})
		require.NoError(t, err, int(p))
		require.Empty(t, vs, int(p))

		as, err := conn.Administrators().List(ctx, p)
		require.NoError(t, err, int(p))
		require.Empty(t, as, int(p))
	}
}
