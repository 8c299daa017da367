package main

import (
	"os"

	"daraz_reviews/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
