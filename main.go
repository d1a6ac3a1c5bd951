// The main package for the gpuradar executable.
package main

import "github.com/gpuradar/gpuradar/cmd"

func main() {
	cmd.Execute()
}
