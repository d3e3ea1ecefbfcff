package main

import (
	"fmt"

	"github.com/spf13/cobra"

	sigtrust "github.com/philiph/saml-sigtrust"
)

var (
	verifyNodeName string
	verifyCertFile string
	verifyMetadata string
)

var verifyCmd = &cobra.Command{
	Use:   "verify [file]",
	Short: "Verify the XML signature on a node",
	Long: `Verify checks the signature on the first element with the given
node name. The trusted certificate comes from --cert, or from federation
metadata given with --metadata, or from the configured key material.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts []sigtrust.Option
		if verifyMetadata != "" {
			store := sigtrust.NewMetadataStore()
			if err := store.LoadFile(verifyMetadata); err != nil {
				return err
			}
			opts = append(opts, sigtrust.WithMetadataResolver(store))
		}
		sec, logger, err := newSecurityContext(opts...)
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		doc, err := readInput(args)
		if err != nil {
			return err
		}

		var cert *sigtrust.Certificate
		if verifyCertFile != "" {
			loaded, err := sigtrust.ReadCertificateFile(verifyCertFile, sigtrust.CertFormatPEM)
			if err != nil {
				return err
			}
			cert = &loaded
		}

		if !sec.VerifySignature(cmd.Context(), doc, cert, verifyNodeName) {
			return fmt.Errorf("signature verification failed for node %s", verifyNodeName)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "OK")
		return nil
	},
}

func init() {
	verifyCmd.Flags().StringVar(&verifyNodeName, "node-name", sigtrust.NameResponse,
		"namespace-qualified element name to verify")
	verifyCmd.Flags().StringVar(&verifyCertFile, "cert", "", "trusted certificate (PEM)")
	verifyCmd.Flags().StringVar(&verifyMetadata, "metadata", "", "federation metadata file")
	rootCmd.AddCommand(verifyCmd)
}
