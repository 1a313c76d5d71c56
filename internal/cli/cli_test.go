package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbonroute/carbonroute/internal/engine"
)

// execCmd runs a command with captured output and the given arguments.
func execCmd(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestCalculateJSONOutput(t *testing.T) {
	out, err := execCmd(t, NewCalculateCmd(),
		"--mode", "road",
		"--distance", "500",
		"--weight", "25",
		"--vehicle", "truck",
		"--fuel", "diesel",
		"--output", "json",
	)
	require.NoError(t, err)

	var result engine.CalculationResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))

	assert.Equal(t, engine.ModeRoad, result.Activity.Mode)
	assert.Equal(t, "road-truck-diesel-wtw", result.Factor.ID)
	assert.InDelta(t, 75.0, result.Emissions.CO2, 0.001)
	assert.InDelta(t, 75.32, result.Emissions.Total, 0.01)
	assert.NotEmpty(t, result.Metadata.CalculationID)
}

func TestCalculateTableOutput(t *testing.T) {
	out, err := execCmd(t, NewCalculateCmd(),
		"--mode", "rail",
		"--distance", "300",
		"--weight", "15",
		"--vehicle", "freight_train",
		"--fuel", "electric",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "rail")
	assert.Contains(t, out, "kg CO2e")
}

func TestCalculateValidationFailure(t *testing.T) {
	out, err := execCmd(t, NewCalculateCmd(),
		"--mode", "road",
		"--distance", "-5",
		"--vehicle", "truck",
		"--fuel", "diesel",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, out, "INVALID_DISTANCE")
}

func TestCalculateUnknownOutputFormat(t *testing.T) {
	_, err := execCmd(t, NewCalculateCmd(),
		"--mode", "road",
		"--distance", "100",
		"--vehicle", "truck",
		"--fuel", "diesel",
		"--output", "xml",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestCalculateRequiresMode(t *testing.T) {
	_, err := execCmd(t, NewCalculateCmd(), "--distance", "100")
	assert.Error(t, err)
}

func TestBatchFromYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legs.yaml")
	doc := `
requests:
  - activityData:
      transportMode: road
      distance: 500
      weight: 25
      vehicle:
        type: truck
        fuelType: diesel
  - activityData:
      transportMode: sea
      distance: 8000
      weight: 500
      vehicle:
        type: container_ship
        fuelType: hfo
  - activityData:
      transportMode: road
      distance: -1
      vehicle:
        type: truck
        fuelType: diesel
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	out, err := execCmd(t, NewBatchCmd(),
		"--input", path,
		"--aggregate",
		"--output", "json",
	)
	require.NoError(t, err)

	var result batchResultJSON
	require.NoError(t, json.Unmarshal([]byte(out), &result))

	require.Len(t, result.Individual, 2)
	assert.Equal(t, engine.ModeRoad, result.Individual[0].Activity.Mode)
	assert.Equal(t, engine.ModeSea, result.Individual[1].Activity.Mode)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Index)

	require.NotNil(t, result.Aggregate)
	assert.Equal(t, 2, result.Aggregate.CalculationCount)
	assert.Greater(t, result.Aggregate.TotalEmissions, 0.0)
}

func TestLoadBatchFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "legs.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
requests:
  - activityData:
      transportMode: air
      distance: 2000
      weight: 5
      vehicle:
        type: cargo_plane
        fuelType: jet_fuel
options:
  parallel: true
`), 0o600))

	jsonPath := filepath.Join(dir, "legs.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{
  "requests": [
    {"activityData": {"transportMode": "rail", "distance": 300, "weight": 15,
      "vehicle": {"type": "freight_train", "fuelType": "electric"}}}
  ]
}`), 0o600))

	t.Run("yaml", func(t *testing.T) {
		batch, err := loadBatchFile(yamlPath)
		require.NoError(t, err)
		require.Len(t, batch.Requests, 1)
		assert.Equal(t, engine.ModeAir, batch.Requests[0].Activity.Mode)
		assert.True(t, batch.Options.Parallel)
	})

	t.Run("json", func(t *testing.T) {
		batch, err := loadBatchFile(jsonPath)
		require.NoError(t, err)
		require.Len(t, batch.Requests, 1)
		assert.Equal(t, engine.ModeRail, batch.Requests[0].Activity.Mode)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(dir, "legs.csv")
		require.NoError(t, os.WriteFile(path, []byte("mode,distance"), 0o600))
		_, err := loadBatchFile(path)
		assert.ErrorContains(t, err, "unsupported batch input format")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadBatchFile(filepath.Join(dir, "absent.yaml"))
		assert.Error(t, err)
	})
}

func TestFactorsListJSON(t *testing.T) {
	out, err := execCmd(t, NewFactorsCmd(), "list", "--mode", "sea", "--output", "json")
	require.NoError(t, err)

	var factors []engine.EmissionFactor
	require.NoError(t, json.Unmarshal([]byte(out), &factors))

	require.NotEmpty(t, factors)
	for _, f := range factors {
		assert.Equal(t, engine.ModeSea, f.Mode)
	}
}

func TestFactorsListRejectsBadMode(t *testing.T) {
	_, err := execCmd(t, NewFactorsCmd(), "list", "--mode", "teleport")
	assert.Error(t, err)
}

func TestRootCommandHelp(t *testing.T) {
	out, err := execCmd(t, NewRootCmd("test"), "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "carbonroute")
	assert.Contains(t, out, "calculate")
	assert.Contains(t, out, "batch")
	assert.Contains(t, out, "factors")
}
