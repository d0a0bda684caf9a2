package main

import "respawn/cmd/respawnctl/root"

func main() {
	root.Execute()
}
