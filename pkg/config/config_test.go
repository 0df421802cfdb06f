package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "https://oderest.rsl.wustl.edu/livegds", cfg.ODE.BaseURL)
	require.Equal(t, time.Minute, cfg.ODE.Timeout)
	require.Equal(t, "localhost:53953", cfg.GXP.Address)
	require.Equal(t, filepath.Join(defaultReferenceRoot, "MOLA_PEDR", "pedr.lis"), cfg.Reference.PEDRList)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("APPL_GXP_ADDRESS", "gxp.example.com:9000")
	t.Setenv("APPL_ODE_TIMEOUT", "2m")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "gxp.example.com:9000", cfg.GXP.Address)
	require.Equal(t, 2*time.Minute, cfg.ODE.Timeout)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appl.yaml")
	content := `
ode:
  base_url: http://localhost:8080/livegds
reference:
  root: /data/ref
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080/livegds", cfg.ODE.BaseURL)
	require.Equal(t, filepath.Join("/data/ref", "MOLA_GRID", "mola_256ppd_latlon_88lat_DeltaRadiusIAUSphere.tif"), cfg.Reference.MOLAGrid)
	require.Equal(t, "debug", cfg.Log.Level)
	// defaults still apply for unset keys
	require.Equal(t, "localhost:53953", cfg.GXP.Address)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
