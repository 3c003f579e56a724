package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, dir, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644)
	require.NoError(t, err)
}

func TestLoad_FromYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, `
idgen:
  timestamp_bits: 41
  datacenter_bits: 5
  worker_bits: 5
  timestamp_divisor: 1
  worker_id: 3
  datacenter_id: 2
`)

	loader, err := New(&Config{Paths: []string{dir}})
	require.NoError(t, err)
	require.NoError(t, loader.Load(context.Background()))

	assert.Equal(t, 41, loader.Get("idgen.timestamp_bits"))

	var cfg struct {
		TimestampBits int   `mapstructure:"timestamp_bits"`
		WorkerID      int64 `mapstructure:"worker_id"`
	}
	require.NoError(t, loader.UnmarshalKey("idgen", &cfg))
	assert.Equal(t, 41, cfg.TimestampBits)
	assert.Equal(t, int64(3), cfg.WorkerID)
}

func TestLoad_MissingFileIsNotFatal(t *testing.T) {
	loader, err := New(&Config{Paths: []string{t.TempDir()}})
	require.NoError(t, err)
	assert.NoError(t, loader.Load(context.Background()))
}

func TestLoad_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "idgen:\n  worker_id: 1\n")

	t.Setenv("FLAKEID_IDGEN_WORKER_ID", "9")

	loader, err := New(&Config{Paths: []string{dir}})
	require.NoError(t, err)
	require.NoError(t, loader.Load(context.Background()))

	assert.Equal(t, "9", loader.Get("idgen.worker_id"))
}

func TestWatch_CancelClosesChannel(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "idgen:\n  worker_id: 1\n")

	loader, err := New(&Config{Paths: []string{dir}})
	require.NoError(t, err)
	require.NoError(t, loader.Load(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := loader.Watch(ctx, "idgen.worker_id")
	require.NoError(t, err)

	cancel()
	// 取消后通道最终会被关闭
	_, open := <-ch
	assert.False(t, open)
}

func TestNew_Defaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, cfg.validate())
	assert.Equal(t, "config", cfg.Name)
	assert.Equal(t, "yaml", cfg.FileType)
	assert.Equal(t, "FLAKEID", cfg.EnvPrefix)
	assert.Equal(t, []string{".", "./config"}, cfg.Paths)
}
