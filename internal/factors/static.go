package factors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/carbonroute/carbonroute/internal/engine"
)

// ErrNotFound is returned when no factor matches a lookup. The engine
// treats it the same as any other lookup failure: default substitution.
var ErrNotFound = errors.New("no matching emission factor")

// Dataset is the on-disk shape of a factor table.
type Dataset struct {
	// Name labels the dataset in logs and listings.
	Name string `yaml:"name"`

	// Factors is the flat factor table.
	Factors []engine.EmissionFactor `yaml:"factors"`
}

// StaticProvider serves emission factors from an in-memory table.
// The table is immutable after construction, so the provider is safe
// for concurrent use.
type StaticProvider struct {
	name    string
	factors []engine.EmissionFactor
}

// NewStaticProvider builds a provider over a factor slice. Records with
// a negative CO2 factor are rejected.
func NewStaticProvider(name string, factors []engine.EmissionFactor) (*StaticProvider, error) {
	for _, f := range factors {
		if f.CO2Factor < 0 {
			return nil, fmt.Errorf("factor %s: co2Factor must be non-negative, got %g", f.ID, f.CO2Factor)
		}
	}
	return &StaticProvider{name: name, factors: factors}, nil
}

// LoadDataset parses a YAML factor dataset from a reader.
func LoadDataset(r io.Reader) (*Dataset, error) {
	var ds Dataset
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&ds); err != nil {
		return nil, fmt.Errorf("decoding factor dataset: %w", err)
	}
	if len(ds.Factors) == 0 {
		return nil, errors.New("factor dataset contains no factors")
	}
	return &ds, nil
}

// FromFile loads a StaticProvider from a YAML dataset file.
func FromFile(path string) (*StaticProvider, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening factor dataset %s: %w", path, err)
	}
	defer f.Close()

	ds, err := LoadDataset(f)
	if err != nil {
		return nil, err
	}
	return NewStaticProvider(ds.Name, ds.Factors)
}

// Name returns the dataset label.
func (p *StaticProvider) Name() string { return p.name }

// All returns a copy of the factor table, for listings.
func (p *StaticProvider) All() []engine.EmissionFactor {
	out := make([]engine.EmissionFactor, len(p.factors))
	copy(out, p.factors)
	return out
}

// Lookup returns every factor matching mode, vehicle type, and fuel,
// best match first. Version ordering uses semantic version comparison;
// at equal versions Well-to-Wheel scope wins over Tank-to-Wheel.
func (p *StaticProvider) Lookup(_ context.Context, mode engine.TransportMode, vehicleType string, fuel engine.FuelType) ([]engine.EmissionFactor, error) {
	var matches []engine.EmissionFactor
	for _, f := range p.factors {
		if f.Mode != mode {
			continue
		}
		if vehicleType != "" && f.VehicleType != vehicleType {
			continue
		}
		if fuel != "" && f.Fuel != fuel {
			continue
		}
		matches = append(matches, f)
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s/%s/%s", ErrNotFound, mode, vehicleType, fuel)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		cmp := compareVersions(matches[i].Version, matches[j].Version)
		if cmp != 0 {
			return cmp > 0
		}
		return matches[i].Scope == engine.ScopeWTW && matches[j].Scope != engine.ScopeWTW
	})

	return matches, nil
}

// compareVersions orders dataset versions semantically. Unparseable
// versions sort last so a malformed record never shadows a valid one.
func compareVersions(a, b string) int {
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)
	switch {
	case errA != nil && errB != nil:
		return 0
	case errA != nil:
		return -1
	case errB != nil:
		return 1
	default:
		return va.Compare(vb)
	}
}
