package main

import "vaultsweep/cmd"

func main() {
	cmd.Execute()
}
