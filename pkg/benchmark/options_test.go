package benchmark

import (
	"testing"

	"github.com/lintang-b-s/hypereval/pkg/evaluator"
	"github.com/lintang-b-s/hypereval/pkg/oracle"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptionsAreValid(t *testing.T) {
	require.NoError(t, DefaultOptions().Validate())
}

func TestOptionsValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Options)
		ok     bool
	}{
		{"two parts is the minimum", func(o *Options) { o.Parts = 2 }, true},
		{"one part rejected", func(o *Options) { o.Parts = 1 }, false},
		{"negative epsilon rejected", func(o *Options) { o.Epsilon = -0.01 }, false},
		{"zero epsilon allowed", func(o *Options) { o.Epsilon = 0 }, true},
		{"negative threads rejected", func(o *Options) { o.Threads = -1 }, false},
		{"unknown preset rejected", func(o *Options) { o.Preset = "turbo" }, false},
		{"unknown convention rejected", func(o *Options) { o.Convention = "loose" }, false},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)

			err := opts.Validate()
			if tt.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestOptionsParsedEnums(t *testing.T) {
	opts := DefaultOptions()
	opts.Preset = "highest_quality"
	opts.Convention = "ceil_scale"

	require.Equal(t, oracle.PRESET_HIGHEST_QUALITY, opts.ParsedPreset())
	require.Equal(t, evaluator.CONVENTION_CEIL_SCALE, opts.ParsedConvention())
}
