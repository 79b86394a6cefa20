package main

import (
	"context"
	"os"

	"github.com/guarzo/webfonts/common"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		common.Exitf("Error: %v", err)
	}
}
