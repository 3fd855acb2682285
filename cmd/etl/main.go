package main

import "github.com/go-sif/etl/internal/cmd"

func main() {
	cmd.Run()
}
