package main

import "github.com/metal-toolbox/fleetdash/cmd"

func main() {
	cmd.Execute()
}
