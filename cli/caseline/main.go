package main

import (
	"os"

	caselinecmder "github.com/caselinehq/caseline/cmd/caseline"
)

func main() {
	cmd := caselinecmder.NewCaselineCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
