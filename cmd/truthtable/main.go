package main

import (
	"context"
	"os"
)

func main() {
	root, a := newRootCmd()
	if err := execute(context.Background(), root, a); err != nil {
		os.Exit(1)
	}
}
