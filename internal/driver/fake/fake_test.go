package fake_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/appbox/internal/driver/fake"
	"github.com/slok/appbox/internal/model"
)

func TestDriverLifecycle(t *testing.T) {
	ctx := context.Background()

	cfg := model.ContainerConfig{
		Name:     "palpatine",
		Image:    "ubuntu:24.04",
		Packages: []string{"gedit", "xterm"},
	}

	tests := map[string]struct {
		actions func(ctx context.Context, t *testing.T, d *fake.Driver)
	}{
		"Created container should list its preinstalled app ids sorted": {
			actions: func(ctx context.Context, t *testing.T, d *fake.Driver) {
				require.NoError(t, d.Create(ctx, cfg))

				appIDs, err := d.ListAppIDs(ctx, "palpatine")
				require.NoError(t, err)
				assert.Equal(t, []string{"palpatine_gedit_0.0", "palpatine_xterm_0.0"}, appIDs)
			},
		},

		"Creating the same container twice should fail": {
			actions: func(ctx context.Context, t *testing.T, d *fake.Driver) {
				require.NoError(t, d.Create(ctx, cfg))

				err := d.Create(ctx, cfg)
				assert.ErrorIs(t, err, model.ErrAlreadyExists)
			},
		},

		"Installing packages should add their app ids": {
			actions: func(ctx context.Context, t *testing.T, d *fake.Driver) {
				require.NoError(t, d.Create(ctx, cfg))
				require.NoError(t, d.InstallPackages(ctx, "palpatine", []string{"calc"}))

				appIDs, err := d.ListAppIDs(ctx, "palpatine")
				require.NoError(t, err)
				assert.Contains(t, appIDs, "palpatine_calc_0.0")
			},
		},

		"Removing packages should drop their app ids": {
			actions: func(ctx context.Context, t *testing.T, d *fake.Driver) {
				require.NoError(t, d.Create(ctx, cfg))
				require.NoError(t, d.RemovePackages(ctx, "palpatine", []string{"gedit"}))

				appIDs, err := d.ListAppIDs(ctx, "palpatine")
				require.NoError(t, err)
				assert.Equal(t, []string{"palpatine_xterm_0.0"}, appIDs)
			},
		},

		"Update should work on an existing container": {
			actions: func(ctx context.Context, t *testing.T, d *fake.Driver) {
				require.NoError(t, d.Create(ctx, cfg))
				assert.NoError(t, d.Update(ctx, "palpatine"))
			},
		},

		"Destroyed container should be gone": {
			actions: func(ctx context.Context, t *testing.T, d *fake.Driver) {
				require.NoError(t, d.Create(ctx, cfg))
				require.NoError(t, d.Destroy(ctx, "palpatine"))

				_, err := d.ListAppIDs(ctx, "palpatine")
				assert.ErrorIs(t, err, model.ErrNotFound)
			},
		},

		"Operations on a missing container should fail": {
			actions: func(ctx context.Context, t *testing.T, d *fake.Driver) {
				assert.Error(t, d.InstallPackages(ctx, "missing", []string{"x"}))
				assert.Error(t, d.RemovePackages(ctx, "missing", []string{"x"}))
				assert.Error(t, d.Update(ctx, "missing"))
				assert.Error(t, d.Destroy(ctx, "missing"))
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			d, err := fake.NewDriver(fake.DriverConfig{})
			require.NoError(t, err)

			test.actions(ctx, t, d)
		})
	}
}
