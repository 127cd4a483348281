package profile

import (
	"bytes"
	"context"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/munin/device"
	"github.com/ezrec/munin/lower"
)

func TestProfiler(t *testing.T) {
	assert := assert.New(t)

	pr := NewProfiler()

	assert.False(pr.Verbose)
	assert.NotNil(pr.Device)
	assert.Equal(0, pr.Program.Len())
}

// testConfig returns a configuration over an in-memory program tree.
func testConfig(source string, inputs ...string) *Config {
	return &Config{
		Probes: []uint32{0x1, 0x8},
		Profiles: []Profile{
			{Name: "test", Program: "test.munin", Inputs: inputs},
		},
		FS: fstest.MapFS{
			"test.munin": &fstest.MapFile{Data: []byte(source)},
		},
	}
}

func TestProfilerRun(t *testing.T) {
	assert := assert.New(t)

	cfg := testConfig("; sum\nset v0 to i0\nint-add i1 to v0\ncompare v0 to i2\n",
		"p - 1", "1", "p")

	pr := NewProfiler()
	samples, err := pr.Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal([]Sample{
		{
			Profile:   "test",
			Probe:     0x1,
			Inputs:    []uint32{0, 1, 1},
			Footprint: device.Footprint{Inputs: 3, Flags: 4, Execution: 1},
			Ticks:     4,
		},
		{
			Profile:   "test",
			Probe:     0x8,
			Inputs:    []uint32{7, 1, 8},
			Footprint: device.Footprint{Inputs: 8, Flags: 4, Execution: 4},
			Ticks:     4,
		},
	}, samples)

	assert.Equal(1, samples[0].InputLength())
	assert.Equal(4, samples[1].InputLength())
	assert.Equal(5, samples[0].MemoryUsed())
	assert.Equal(8, samples[1].MemoryUsed())

	assert.True(pr.Device.Flags().Equal)
}

func TestProfilerRun_Defines(t *testing.T) {
	assert := assert.New(t)

	cfg := testConfig("set v0 to i0\nint-add STEP to v0\n", "p")
	cfg.Defines = map[string]string{"STEP": "3"}

	pr := NewProfiler()
	_, err := pr.Run(context.Background(), cfg)
	require.NoError(t, err)

	v0, err := pr.Device.Load("v0")
	assert.NoError(err)
	assert.Equal(uint32(0x8+3), v0)
}

func TestProfilerRun_Errors(t *testing.T) {
	assert := assert.New(t)

	pr := NewProfiler()

	// Missing program file.
	cfg := testConfig("")
	cfg.Profiles[0].Program = "missing.munin"
	_, err := pr.Run(context.Background(), cfg)
	assert.ErrorIs(err, fs.ErrNotExist)

	// Lowering failure.
	cfg = testConfig("go-to nowhere\n", "p")
	_, err = pr.Run(context.Background(), cfg)
	assert.ErrorIs(err, device.ErrUnresolvedLabel)
	var syn *lower.ErrSyntax
	assert.ErrorAs(err, &syn)

	// Runtime failure.
	cfg = testConfig("set v0 to i0\nint-subtract 2 from v0\n", "p")
	samples, err := pr.Run(context.Background(), cfg)
	assert.ErrorIs(err, device.ErrDomain)
	assert.ErrorIs(err, device.ErrUnderflow)
	assert.Equal(0, len(samples))
	var ep *ErrProfile
	if assert.ErrorAs(err, &ep) {
		assert.Equal("test", ep.Profile)
		assert.Equal(uint32(0x1), ep.Probe)
	}

	// Runaway program.
	cfg = testConfig("label spin\ngo-to spin\n", "p")
	cfg.MaxTicks = 50
	_, err = pr.Run(context.Background(), cfg)
	assert.ErrorIs(err, device.ErrTickLimit)

	// No inputs.
	cfg = testConfig("set v0 to 1\n")
	_, err = pr.Run(context.Background(), cfg)
	assert.ErrorIs(err, ErrInputsMissing)
}

func TestProfilerRun_Cancel(t *testing.T) {
	assert := assert.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := testConfig("set v0 to i0\n", "p")
	pr := NewProfiler()
	samples, err := pr.Run(ctx, cfg)
	assert.ErrorIs(err, context.Canceled)
	assert.Equal(0, len(samples))
}

func TestProfilerExamples(t *testing.T) {
	assert := assert.New(t)

	cfg, err := LoadConfig("../examples/profile.yaml")
	require.NoError(t, err)

	pr := NewProfiler()
	samples, err := pr.Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(len(cfg.Profiles)*len(cfg.Probes), len(samples))

	// Every example program computes v0 = i0 + i1.
	for _, prof := range cfg.Profiles {
		src, err := cfg.Source(&prof)
		require.NoError(t, err)
		assert.NotEmpty(src)
		require.NoError(t, pr.Load(src, cfg.Defines))

		for _, probe := range cfg.Probes {
			inputs, err := prof.Evaluate(probe)
			require.NoError(t, err)

			_, err = pr.Sample(inputs)
			require.NoError(t, err, prof.Name)

			v0, err := pr.Device.Load("v0")
			assert.NoError(err)
			assert.Equal(probe, v0, "%v %#x", prof.Name, probe)
		}
	}
}

func TestReport(t *testing.T) {
	assert := assert.New(t)

	samples := []Sample{
		{
			Profile:   "add",
			Probe:     0x80,
			Footprint: device.Footprint{Inputs: 9, Flags: 4, Execution: 20},
			Ticks:     77,
		},
	}

	var buf bytes.Buffer
	Report(&buf, samples)

	text := buf.String()
	assert.Contains(text, "INPUT LENGTH")
	assert.Contains(text, "MEMORY USED")
	assert.Contains(text, "add")
	assert.Contains(text, "0x80")
	assert.Contains(text, "24")
	assert.Contains(text, "77")
}
