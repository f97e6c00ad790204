package bootstrap

import (
	"context"
	"errors"
	"testing"
	"time"

	"habilitations-core/internal/infrastructure/database/seeds"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSeeder struct {
	status *seeds.SeedDataStatus
	seeded int
}

func (f *fakeSeeder) CheckSeedDataExists(context.Context) (*seeds.SeedDataStatus, error) {
	return f.status, nil
}

func (f *fakeSeeder) SeedSuperAdmin(context.Context) error {
	f.seeded++
	return nil
}

func newSystem(migrate func(context.Context) error, seeder seeds.SeedingService) *BootstrapSystem {
	logger := zap.NewNop()
	return NewBootstrapSystem(
		&MigrationManager{apply: migrate, logger: logger},
		NewSeedingManager(seeder, logger),
		logger,
	)
}

func TestExecute_RunsPhasesInOrder(t *testing.T) {
	var order []string
	seeder := &fakeSeeder{status: &seeds.SeedDataStatus{SuperAdminExists: true}}
	bs := newSystem(func(context.Context) error {
		order = append(order, "migrations")
		return nil
	}, seeder)

	result, err := bs.Execute(context.Background())

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, []string{"migrations"}, order)
	require.Len(t, result.PhasesExecuted, 2)
	assert.Equal(t, "Phase 1: Migrations", result.PhasesExecuted[0].Phase)
	assert.Equal(t, 1, seeder.seeded)
}

func TestExecute_SkipsSeedingWhenComplete(t *testing.T) {
	seeder := &fakeSeeder{status: &seeds.SeedDataStatus{AllDataExists: true}}
	bs := newSystem(func(context.Context) error { return nil }, seeder)

	_, err := bs.Execute(context.Background())

	require.NoError(t, err)
	assert.Zero(t, seeder.seeded)
}

func TestExecute_StopsOnFailedMigration(t *testing.T) {
	seeder := &fakeSeeder{status: &seeds.SeedDataStatus{}}
	bs := newSystem(func(context.Context) error { return errors.New("schéma verrouillé") }, seeder)

	result, err := bs.Execute(context.Background())

	require.Error(t, err)
	assert.False(t, result.Success)
	assert.Len(t, result.PhasesExecuted, 1)
	assert.Contains(t, result.ErrorMessage, "schéma verrouillé")
	assert.Zero(t, seeder.seeded)
}

func TestExecute_HonoursTimeout(t *testing.T) {
	seeder := &fakeSeeder{status: &seeds.SeedDataStatus{}}
	bs := newSystem(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}, seeder)
	bs.SetTimeout(10 * time.Millisecond)

	_, err := bs.Execute(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), context.DeadlineExceeded.Error())
}
