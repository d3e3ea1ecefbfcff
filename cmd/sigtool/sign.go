package main

import (
	"fmt"

	"github.com/spf13/cobra"

	sigtrust "github.com/philiph/saml-sigtrust"
)

var (
	signNodeName    string
	signNodeID      string
	signOutput      string
	signPlaceholder bool
)

var signCmd = &cobra.Command{
	Use:   "sign [file]",
	Short: "Sign a node in an XML document",
	Long: `Sign computes the XML signature for a node in the input document.

The document must already carry an unsigned signature placeholder for the
node, unless --insert-placeholder is given, in which case one is inserted
at the schema-valid position first.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if signNodeID == "" {
			return fmt.Errorf("--node-id is required")
		}
		sec, logger, err := newSecurityContext()
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		doc, err := readInput(args)
		if err != nil {
			return err
		}
		if signPlaceholder {
			doc, err = sec.ApplySignaturePlaceholder(doc, signNodeName, signNodeID)
			if err != nil {
				return err
			}
		}
		signed, err := sec.SignStatement(cmd.Context(), doc, signNodeName, signNodeID)
		if err != nil {
			return err
		}
		return writeOutput(signOutput, signed)
	},
}

func init() {
	signCmd.Flags().StringVar(&signNodeName, "node-name", sigtrust.NameAssertion,
		"namespace-qualified element name carrying the ID attribute")
	signCmd.Flags().StringVar(&signNodeID, "node-id", "", "ID of the node to sign")
	signCmd.Flags().StringVarP(&signOutput, "output", "o", "", "output file (default stdout)")
	signCmd.Flags().BoolVar(&signPlaceholder, "insert-placeholder", false,
		"insert the signature placeholder before signing")
	rootCmd.AddCommand(signCmd)
}
