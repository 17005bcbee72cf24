package main

import (
	"os"

	"github.com/chipbuild/chipbuild/cmd/chipbuild"
	"github.com/chipbuild/chipbuild/pkg/output"
)

func main() {
	rootCmd := chipbuild.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		renderer := output.NewRenderer(os.Stderr, output.FormatAuto)
		_ = renderer.RenderError(err)
		os.Exit(1)
	}
}
