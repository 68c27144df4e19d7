package main

import (
	"fmt"
	"os"

	"github.com/careerloft/careerloft/internal/server"
)

func main() {
	if err := server.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
