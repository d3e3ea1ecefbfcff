package main

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/spf13/cobra"

	sigtrust "github.com/philiph/saml-sigtrust"
)

var certsCmd = &cobra.Command{
	Use:   "extract-certs [file]",
	Short: "Extract the certificates embedded in a signed document",
	Long: `Extract-certs prints the certificate embedded in each signature
found in the document, one PEM block per signature, in document order.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(args)
		if err != nil {
			return err
		}
		doc := etree.NewDocument()
		if err := doc.ReadFromBytes(data); err != nil {
			return fmt.Errorf("parse document: %w", err)
		}
		if doc.Root() == nil {
			return fmt.Errorf("empty document")
		}
		found, err := sigtrust.ExtractCertificates(doc.Root())
		if err != nil {
			return err
		}
		for _, cert := range found {
			cmd.OutOrStdout().Write(cert.PEM()) //nolint:errcheck
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Report the crypto backend in use",
	RunE: func(cmd *cobra.Command, args []string) error {
		sec, logger, err := newSecurityContext()
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck
		fmt.Fprintln(cmd.OutOrStdout(), sec.EngineVersion(cmd.Context()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(certsCmd)
	rootCmd.AddCommand(versionCmd)
}
