package profile

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.starlark.net/starlark"
	"gopkg.in/yaml.v3"

	"github.com/ezrec/munin/internal"
	munio "github.com/ezrec/munin/io"
)

// VALUES_FOR_PROFILING are the default probe values.
var VALUES_FOR_PROFILING = []uint32{0x1, 0x2, 0x8, 0x80, 0x8000}

// Profile is a program and the inputs it is run with.
type Profile struct {
	Name    string   `yaml:"name"`    // Report name. Defaults to the program base name.
	Program string   `yaml:"program"` // Source file path.
	Inputs  []string `yaml:"inputs"`  // Input expressions of the probe value 'p', for i0, i1, ...
}

// Config is a profiling session.
type Config struct {
	Probes   []uint32          `yaml:"probes"`    // Probe values. VALUES_FOR_PROFILING if empty.
	MaxTicks int               `yaml:"max_ticks"` // Per run tick budget, 0 for unlimited.
	Lax      bool              `yaml:"lax"`       // Only warn on out of phase memory writes.
	Defines  map[string]string `yaml:"defines"`   // Lowering predefines.
	Profiles []Profile         `yaml:"profiles"`

	FS fs.FS `yaml:"-"` // Source of the program files.
}

// ParseConfig reads a YAML configuration.
func ParseConfig(r io.Reader) (cfg *Config, err error) {
	cfg = &Config{}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	err = dec.Decode(cfg)
	if errors.Is(err, io.EOF) {
		err = ErrConfigEmpty
	}
	if err != nil {
		cfg = nil
		return
	}

	err = cfg.validate()
	if err != nil {
		cfg = nil
		return
	}

	return
}

// LoadConfig reads a YAML configuration file. Program paths are relative
// to the directory of the configuration file.
func LoadConfig(filename string) (cfg *Config, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return
	}
	defer file.Close()

	cfg, err = ParseConfig(file)
	if err != nil {
		return
	}

	cfg.FS = os.DirFS(filepath.Dir(filename))

	return
}

// validate fills in defaults, and checks the profiles.
func (cfg *Config) validate() (err error) {
	if len(cfg.Profiles) == 0 {
		err = ErrConfigEmpty
		return
	}

	if len(cfg.Probes) == 0 {
		cfg.Probes = VALUES_FOR_PROFILING
	}

	for n := range cfg.Profiles {
		prof := &cfg.Profiles[n]
		if len(prof.Program) == 0 {
			err = &ErrProfile{Profile: prof.Name, Err: ErrProgramMissing}
			return
		}
		if len(prof.Name) == 0 {
			base := path.Base(filepath.ToSlash(prof.Program))
			prof.Name = strings.TrimSuffix(base, path.Ext(base))
		}
	}

	return
}

// Source reads the non-comment source lines of a profile program.
func (cfg *Config) Source(prof *Profile) (lines []string, err error) {
	fsys := cfg.FS
	if fsys == nil {
		fsys = os.DirFS(".")
	}

	lines, err = munio.ReadFS(fsys, prof.Program)
	return
}

// Evaluate returns the input values for a probe value.
func (prof *Profile) Evaluate(probe uint32) (inputs []uint32, err error) {
	if len(prof.Inputs) == 0 {
		err = &ErrProfile{Profile: prof.Name, Probe: probe, Err: ErrInputsMissing}
		return
	}

	pred := starlark.StringDict{
		"p": starlark.MakeUint64(uint64(probe)),
	}

	for _, expr := range prof.Inputs {
		var v64 int64
		v64, err = internal.EvalInt(expr, pred)
		if err != nil {
			err = &ErrProfile{Profile: prof.Name, Probe: probe, Err: err}
			return
		}
		inputs = append(inputs, uint32(v64))
	}

	return
}
