package main

import "github.com/habiliai/parallelweb/cmd/parallelweb/cmd"

func main() {
	cmd.Execute()
}
