package profile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	assert := assert.New(t)

	text := `
probes: [0x1, 0x80]
max_ticks: 100
lax: true
defines:
  STEP: "2"
profiles:
  - program: progs/add.munin
    inputs: ["p - 1", "1"]
  - name: other
    program: other.munin
    inputs: ["p"]
`

	cfg, err := ParseConfig(strings.NewReader(text))
	require.NoError(t, err)

	assert.Equal([]uint32{0x1, 0x80}, cfg.Probes)
	assert.Equal(100, cfg.MaxTicks)
	assert.True(cfg.Lax)
	assert.Equal(map[string]string{"STEP": "2"}, cfg.Defines)
	assert.Equal([]Profile{
		{Name: "add", Program: "progs/add.munin", Inputs: []string{"p - 1", "1"}},
		{Name: "other", Program: "other.munin", Inputs: []string{"p"}},
	}, cfg.Profiles)
	assert.Nil(cfg.FS)
}

func TestParseConfig_Defaults(t *testing.T) {
	assert := assert.New(t)

	cfg, err := ParseConfig(strings.NewReader("profiles: [{program: a.munin, inputs: [p]}]"))
	require.NoError(t, err)

	assert.Equal(VALUES_FOR_PROFILING, cfg.Probes)
	assert.Equal(0, cfg.MaxTicks)
	assert.False(cfg.Lax)
	assert.Equal("a", cfg.Profiles[0].Name)
}

func TestParseConfig_Errors(t *testing.T) {
	assert := assert.New(t)

	cfg, err := ParseConfig(strings.NewReader(""))
	assert.Nil(cfg)
	assert.ErrorIs(err, ErrConfigEmpty)

	_, err = ParseConfig(strings.NewReader("profiles: []"))
	assert.ErrorIs(err, ErrConfigEmpty)

	_, err = ParseConfig(strings.NewReader("profiles: [{name: x, inputs: [p]}]"))
	assert.ErrorIs(err, ErrProgramMissing)

	_, err = ParseConfig(strings.NewReader("probe: [1]\nprofiles: [{program: a.munin}]"))
	assert.Error(err)

	_, err = ParseConfig(strings.NewReader("probes: [-1]\nprofiles: [{program: a.munin}]"))
	assert.Error(err)
}

func TestLoadConfig(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profiles: [{program: a.munin, inputs: [p]}]\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.munin"), []byte("set v0 to i0\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.FS)

	data, err := cfg.FS.Open("a.munin")
	assert.NoError(err)
	if data != nil {
		data.Close()
	}

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(err, os.ErrNotExist)
}

func TestProfileEvaluate(t *testing.T) {
	assert := assert.New(t)

	prof := &Profile{Name: "eval", Inputs: []string{"p - 1", "1", "p | 1", "p << 1"}}

	inputs, err := prof.Evaluate(0x80)
	assert.NoError(err)
	assert.Equal([]uint32{0x7f, 1, 0x81, 0x100}, inputs)

	inputs, err = prof.Evaluate(0)
	assert.NoError(err)
	assert.Equal([]uint32{0xffffffff, 1, 1, 0}, inputs)

	prof.Inputs = []string{"p +"}
	_, err = prof.Evaluate(1)
	var ep *ErrProfile
	if assert.ErrorAs(err, &ep) {
		assert.Equal("eval", ep.Profile)
		assert.Equal(uint32(1), ep.Probe)
	}

	prof.Inputs = nil
	_, err = prof.Evaluate(1)
	assert.ErrorIs(err, ErrInputsMissing)
}
