// Command oops corrects failed console commands.
package main

import "oops/cmd"

// Version is set during build via ldflags.
var Version = "dev"

func main() {
	cmd.Version = Version
	cmd.Execute()
}
