// Command flowsynth turns wizard selections into workflow definitions, over
// HTTP with serve or one-shot with build.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
