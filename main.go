package main

import "github.com/pautaaberta/pauta/cmd"

func main() {
	cmd.Execute()
}
