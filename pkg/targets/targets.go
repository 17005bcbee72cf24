// Package targets maps user-facing target names onto concrete builders. A
// target name has the form family-board-app (for example
// telink-tlsr9518adk80d-light) and is resolved against the closed set of
// combinations each registered family enumerates.
package targets

import (
	"path"
	"path/filepath"
	"sort"

	"github.com/chipbuild/chipbuild/pkg/builder"
	"github.com/chipbuild/chipbuild/pkg/environ"
	"github.com/chipbuild/chipbuild/pkg/errors"
	"github.com/chipbuild/chipbuild/pkg/registry"
	"github.com/chipbuild/chipbuild/pkg/runner"
)

// Target identifies one buildable (family, board, app) combination.
type Target struct {
	Family string
	Board  string
	App    string
}

// Name renders the canonical target name.
func (t Target) Name() string {
	return t.Family + "-" + t.Board + "-" + t.App
}

// BuildSpec carries everything a family factory needs to construct a
// builder for one resolved target. Paths are absolute.
type BuildSpec struct {
	Target    Target
	Root      string
	OutputDir string
	Runner    runner.Runner
	Env       environ.Environment
}

// Factory constructs a builder for a resolved target.
type Factory func(spec BuildSpec) (builder.Builder, error)

// Family describes one registered target family: the combinations it can
// build and the factory that builds them.
type Family struct {
	Name    string
	Targets []Target
	New     Factory
}

var families = registry.New[Family]()

// RegisterFamily adds a family to the global registry. Registration happens
// at init time; duplicates are programming errors.
func RegisterFamily(f Family) {
	registry.MustRegister(families, f.Name, f)
}

// Families returns the registered family names in sorted order.
func Families() []string {
	return families.List()
}

// All enumerates every buildable target across all families, sorted by name.
func All() []Target {
	var all []Target
	for _, name := range families.List() {
		family, err := families.Get(name)
		if err != nil {
			continue
		}
		all = append(all, family.Targets...)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Name() < all[j].Name()
	})
	return all
}

// Names returns all target names, sorted.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, t := range all {
		names[i] = t.Name()
	}
	return names
}

// Resolve looks up a single target by its exact name.
func Resolve(name string) (Target, error) {
	for _, t := range All() {
		if t.Name() == name {
			return t, nil
		}
	}
	return Target{}, errors.Newf(errors.ErrTargetNotFound, "unknown target: %s", name).
		WithDetail("known", Names())
}

// Match expands a list of exact names or glob patterns into targets. An
// empty pattern list selects every target. A pattern matching nothing is an
// error rather than a silent skip.
func Match(patterns []string) ([]Target, error) {
	if len(patterns) == 0 {
		return All(), nil
	}

	var matched []Target
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		found := false
		for _, t := range All() {
			ok, err := path.Match(pattern, t.Name())
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrInvalidInput, "bad target pattern: %s", pattern)
			}
			if !ok {
				continue
			}
			found = true
			if !seen[t.Name()] {
				seen[t.Name()] = true
				matched = append(matched, t)
			}
		}
		if !found {
			return nil, errors.Newf(errors.ErrTargetNotFound, "no targets match: %s", pattern).
				WithDetail("known", Names())
		}
	}
	return matched, nil
}

// Options configures builder construction for resolved targets.
type Options struct {
	// Root is the CHIP checkout root.
	Root string

	// OutPrefix is the directory build outputs nest under; each target
	// builds in OutPrefix/<target-name>.
	OutPrefix string

	// Runner is the execution delegate handed to every builder.
	Runner runner.Runner

	// Env is the environment snapshot builders consult. Nil means the
	// process environment.
	Env environ.Environment
}

// OutputDir returns the build-output directory for a target name under an
// output prefix.
func OutputDir(outPrefix, name string) string {
	return filepath.Join(outPrefix, name)
}

// NewBuilder resolves name and constructs its builder.
func NewBuilder(name string, opts Options) (builder.Builder, error) {
	target, err := Resolve(name)
	if err != nil {
		return nil, err
	}
	return newBuilder(target, opts)
}

// NewBuilders constructs builders for every target matched by patterns, in
// stable name order.
func NewBuilders(patterns []string, opts Options) ([]builder.Builder, error) {
	matched, err := Match(patterns)
	if err != nil {
		return nil, err
	}

	builders := make([]builder.Builder, 0, len(matched))
	for _, target := range matched {
		b, err := newBuilder(target, opts)
		if err != nil {
			return nil, err
		}
		builders = append(builders, b)
	}
	return builders, nil
}

func newBuilder(target Target, opts Options) (builder.Builder, error) {
	family, err := families.Get(target.Family)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTargetNotFound, "no family registered for target %s", target.Name())
	}

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to resolve checkout root")
	}
	outPrefix, err := filepath.Abs(opts.OutPrefix)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to resolve output prefix")
	}

	return family.New(BuildSpec{
		Target:    target,
		Root:      root,
		OutputDir: OutputDir(outPrefix, target.Name()),
		Runner:    opts.Runner,
		Env:       opts.Env,
	})
}
