// Command objectmodel runs the SmartArray lifecycle scenarios.
//
// Run:
//
//	go run . run           # every scenario
//	go run . run part4     # reader/writer lock only
//	go run . stress        # many concurrent readers and writers
package main

import "github.com/marcodamonte/objectmodel/cmd"

func main() {
	cmd.Execute()
}
