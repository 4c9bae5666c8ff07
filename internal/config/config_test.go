package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcodamonte/objectmodel/internal/config"
)

func TestDefaults(t *testing.T) {
	c, err := config.Load(config.New())
	require.NoError(t, err)

	assert.Equal(t, config.RW{Size: 8, Fill: 20, Readers: 3, WriteIndex: 0, WriteValue: 7}, c.RW)
	assert.Equal(t, 30*time.Second, c.Stress.ShutdownTimeout)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, "text", c.Output)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("OBJECTMODEL_RW_READERS", "5")
	t.Setenv("OBJECTMODEL_STRESS_SHUTDOWN_TIMEOUT", "2s")

	c, err := config.Load(config.New())
	require.NoError(t, err)
	assert.Equal(t, 5, c.RW.Readers)
	assert.Equal(t, 2*time.Second, c.Stress.ShutdownTimeout)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "objectmodel.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rw:\n  size: 4\n  write_value: 100\noutput: yaml\n"), 0o600))

	v := config.New()
	require.NoError(t, config.ReadFile(v, path))
	c, err := config.Load(v)
	require.NoError(t, err)

	assert.Equal(t, 4, c.RW.Size)
	assert.Equal(t, 100, c.RW.WriteValue)
	assert.Equal(t, 20, c.RW.Fill)
	assert.Equal(t, "yaml", c.Output)
}

func TestReadFileMissingExplicitPath(t *testing.T) {
	err := config.ReadFile(config.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	v := config.New()
	v.Set("stress.workers", 0)

	_, err := config.Load(v)
	var ve *config.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "stress.workers", ve.Key)

	v = config.New()
	v.Set("output", "xml")
	_, err = config.Load(v)
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "output", ve.Key)
}
