package builder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/graphsat/builder"
)

func TestIDFns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		fn    builder.IDFn
		input int
		want  string
	}{
		{"DefaultIDFn_zero", builder.DefaultIDFn, 0, "0"},
		{"DefaultIDFn_multi", builder.DefaultIDFn, 123, "123"},
		{"ExcelColumnIDFn_first", builder.ExcelColumnIDFn, 0, "A"},
		{"ExcelColumnIDFn_last_single", builder.ExcelColumnIDFn, 25, "Z"},
		{"ExcelColumnIDFn_rollover", builder.ExcelColumnIDFn, 26, "AA"},
		{"ExcelColumnIDFn_three", builder.ExcelColumnIDFn, 702, "AAA"},
		{"PrefixIDFn", builder.PrefixIDFn("v"), 12, "v12"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.fn(tc.input))
		})
	}

	assert.Panics(t, func() { builder.ExcelColumnIDFn(-1) })
}
