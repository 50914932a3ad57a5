// Package settings holds the user configuration of the command line tool.
// Settings are read from a YAML file, then overridden by command line flags.
package settings

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/crillab/reductions/bruteforce"
)

// Backends lists the valid values of Settings.Backend.
var Backends = []string{"bruteforce", "gophersat", "gini"}

// BruteForce configures the exhaustive solver.
type BruteForce struct {
	ATol      float64 `yaml:"atol"`
	RTol      float64 `yaml:"rtol"`
	ValidOnly bool    `yaml:"valid_only"`
}

// Settings is the configuration of the tool.
type Settings struct {
	BruteForce BruteForce `yaml:"bruteforce"`
	// Backend names the solver used by the solve command.
	Backend string `yaml:"backend"`
	Verbose bool   `yaml:"verbose"`
}

// Default returns the default settings: exact comparisons, only feasible configurations, brute force solving.
func Default() *Settings {
	return &Settings{
		BruteForce: BruteForce{ValidOnly: true},
		Backend:    "bruteforce",
	}
}

// Load reads settings from the YAML file at path, on top of the defaults.
// A missing file is not an error.
func Load(path string) (*Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, errors.Wrap(err, "could not read settings")
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, errors.Wrapf(err, "could not parse settings file %s", path)
	}
	if err := s.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid settings file %s", path)
	}
	return s, nil
}

// Validate returns all problems found in s.
func (s *Settings) Validate() error {
	var errs error
	if s.BruteForce.ATol < 0 {
		errs = multierr.Append(errs, fmt.Errorf("negative absolute tolerance %g", s.BruteForce.ATol))
	}
	if s.BruteForce.RTol < 0 {
		errs = multierr.Append(errs, fmt.Errorf("negative relative tolerance %g", s.BruteForce.RTol))
	}
	valid := false
	for _, b := range Backends {
		valid = valid || b == s.Backend
	}
	if !valid {
		errs = multierr.Append(errs, fmt.Errorf("unknown backend %q (valid: %v)", s.Backend, Backends))
	}
	return errs
}

// BruteForceOptions returns the options of an exhaustive solver configured by s.
func (s *Settings) BruteForceOptions(logger *zap.Logger) []bruteforce.Option {
	return []bruteforce.Option{
		bruteforce.WithTolerance(s.BruteForce.ATol, s.BruteForce.RTol),
		bruteforce.WithValidOnly(s.BruteForce.ValidOnly),
		bruteforce.WithLogger(logger),
	}
}

// Flags are the command line flags overriding settings.
type Flags struct {
	fs       *pflag.FlagSet
	path     string
	defaults Settings
	values   Settings
}

// BindFlags registers the settings flags on fs.
func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs, defaults: *Default()}
	f.values = f.defaults
	fs.StringVar(&f.path, "config", "", "settings file (YAML)")
	fs.Float64Var(&f.values.BruteForce.ATol, "atol", f.defaults.BruteForce.ATol, "absolute tolerance when comparing objective values")
	fs.Float64Var(&f.values.BruteForce.RTol, "rtol", f.defaults.BruteForce.RTol, "relative tolerance when comparing objective values")
	fs.BoolVar(&f.values.BruteForce.ValidOnly, "valid-only", f.defaults.BruteForce.ValidOnly, "only consider feasible configurations")
	fs.StringVar(&f.values.Backend, "backend", f.defaults.Backend, fmt.Sprintf("solver backend, one of %v", Backends))
	fs.BoolVarP(&f.values.Verbose, "verbose", "v", f.defaults.Verbose, "enable debug logging")
	return f
}

// Settings loads the settings file given by the --config flag, if any, and applies the flags set on the
// command line on top of it.
func (f *Flags) Settings() (*Settings, error) {
	s := Default()
	if f.path != "" {
		var err error
		if s, err = Load(f.path); err != nil {
			return nil, err
		}
	}
	if f.fs.Changed("atol") {
		s.BruteForce.ATol = f.values.BruteForce.ATol
	}
	if f.fs.Changed("rtol") {
		s.BruteForce.RTol = f.values.BruteForce.RTol
	}
	if f.fs.Changed("valid-only") {
		s.BruteForce.ValidOnly = f.values.BruteForce.ValidOnly
	}
	if f.fs.Changed("backend") {
		s.Backend = f.values.Backend
	}
	if f.fs.Changed("verbose") {
		s.Verbose = f.values.Verbose
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
