package factors

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"
)

//go:embed dataset.yaml
var embeddedDataset []byte

var (
	embeddedOnce sync.Once
	embedded     *StaticProvider
	embeddedErr  error
)

// Embedded returns the provider backed by the GLEC dataset compiled into
// the binary. The dataset is parsed once per process.
func Embedded() (*StaticProvider, error) {
	embeddedOnce.Do(func() {
		ds, err := LoadDataset(bytes.NewReader(embeddedDataset))
		if err != nil {
			embeddedErr = fmt.Errorf("embedded factor dataset: %w", err)
			return
		}
		embedded, embeddedErr = NewStaticProvider(ds.Name, ds.Factors)
	})
	return embedded, embeddedErr
}
