package main

import (
	"os"

	"verse-quiz-points/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
