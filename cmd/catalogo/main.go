package main

import "catalogo/internal/cli"

func main() {
	cli.Execute()
}
