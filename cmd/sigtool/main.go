// Command sigtool signs, verifies, encrypts, and decrypts SAML protocol
// documents from the command line, using the same security context the
// library exposes.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
