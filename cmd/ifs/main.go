// Command ifs mounts an FWFS image and inspects, extracts, or rebuilds it.
package main

import "github.com/sillyhouse/ifs/cmd"

func main() {
	cmd.Execute()
}
