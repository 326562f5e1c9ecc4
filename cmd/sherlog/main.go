package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sherlog/sherlog/internal/util"
)

func main() {
	cli := newCLI(os.Args[1:])
	err := cli.Run(context.Background())
	if err == nil {
		return
	}

	if !util.IsIgnorableError(err) {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
	st, _ := util.GetExitStatus(err)
	os.Exit(st)
}
