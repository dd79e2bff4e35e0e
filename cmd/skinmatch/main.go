package main

import "github.com/skinmatch/backend/internal/cli"

func main() {
	cli.Execute()
}
