package main

import "github.com/spacemeshos/vdfcost/cmd/vdfcost/cmd"

func main() {
	cmd.Execute()
}
