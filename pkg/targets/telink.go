package targets

import (
	"github.com/chipbuild/chipbuild/pkg/builder"
	"github.com/chipbuild/chipbuild/pkg/builder/telink"
	"github.com/chipbuild/chipbuild/pkg/variants"
)

// TelinkFamily is the registry name of the Telink target family.
const TelinkFamily = "telink"

func init() {
	RegisterFamily(Family{
		Name:    TelinkFamily,
		Targets: telinkTargets(),
		New:     newTelinkBuilder,
	})
}

func telinkTargets() []Target {
	var targets []Target
	for _, board := range variants.TelinkBoards() {
		for _, app := range variants.TelinkApps() {
			targets = append(targets, Target{
				Family: TelinkFamily,
				Board:  board.String(),
				App:    app.String(),
			})
		}
	}
	return targets
}

func newTelinkBuilder(spec BuildSpec) (builder.Builder, error) {
	app, err := variants.ParseTelinkApp(spec.Target.App)
	if err != nil {
		return nil, err
	}
	board, err := variants.ParseTelinkBoard(spec.Target.Board)
	if err != nil {
		return nil, err
	}

	return telink.New(telink.Config{
		Root:       spec.Root,
		Runner:     spec.Runner,
		OutputDir:  spec.OutputDir,
		Identifier: spec.Target.Name(),
		App:        app,
		Board:      board,
		Env:        spec.Env,
	}), nil
}
