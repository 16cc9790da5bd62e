package main

import (
	"fmt"
	"os"

	"arac/ar-rollforward/cmd/check"
	"arac/ar-rollforward/cmd/compile"
	"arac/ar-rollforward/cmd/crosswalk"
	"arac/ar-rollforward/cmd/root"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(compile.Cmd)
	root.Cmd.AddCommand(check.Cmd)
	root.Cmd.AddCommand(crosswalk.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
