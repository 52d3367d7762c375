package main

import "github.com/Manifold-MEV/friendtech-presale/internal/cli"

func main() {
	cli.Execute()
}
