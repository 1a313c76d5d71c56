package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCO2Equivalent(t *testing.T) {
	tests := []struct {
		name string
		co2  float64
		ch4  float64
		n2o  float64
		want float64
	}{
		{
			name: "co2 only",
			co2:  100,
			want: 100,
		},
		{
			name: "ch4 scales by 28",
			ch4:  2,
			want: 56,
		},
		{
			name: "n2o scales by 265",
			n2o:  0.5,
			want: 132.5,
		},
		{
			name: "all gases combine",
			co2:  100,
			ch4:  1,
			n2o:  0.1,
			want: 100 + 28 + 26.5,
		},
		{
			name: "absent gases treated as zero",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CO2Equivalent(tt.co2, tt.ch4, tt.n2o)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}
