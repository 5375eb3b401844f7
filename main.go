package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/abdidvp/archguard/internal/adapters/inbound/cli"
	"github.com/abdidvp/archguard/internal/domain"
)

func main() {
	if err := cli.Execute(); err != nil {
		if !errors.Is(err, domain.ErrGuardrailsFailed) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}
