package main

import (
	"fmt"

	"github.com/spf13/cobra"

	sigtrust "github.com/philiph/saml-sigtrust"
)

var (
	encryptCertFile string
	encryptCipher   string
	encryptOutput   string

	decryptKeyFile string
	decryptOutput  string
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt [file]",
	Short: "Encrypt a document for a recipient certificate",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if encryptCertFile == "" {
			return fmt.Errorf("--cert is required")
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
		recipient, err := sigtrust.ReadCertificateFile(encryptCertFile, sigtrust.CertFormatPEM)
		if err != nil {
			return err
		}
		encrypted, err := sec.EncryptAssertion(cmd.Context(), doc, recipient,
			sigtrust.SymmetricCipher(encryptCipher))
		if err != nil {
			return err
		}
		return writeOutput(encryptOutput, encrypted)
	},
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt [file]",
	Short: "Decrypt an encrypted payload",
	Long: `Decrypt recovers the plaintext of an EncryptedData structure.
With --key, only that private key is used; otherwise each configured
decryption key is tried in order.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sec, logger, err := newSecurityContext()
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		doc, err := readInput(args)
		if err != nil {
			return err
		}
		plaintext, err := sec.Decrypt(cmd.Context(), doc, decryptKeyFile)
		if err != nil {
			return err
		}
		return writeOutput(decryptOutput, plaintext)
	},
}

func init() {
	encryptCmd.Flags().StringVar(&encryptCertFile, "cert", "", "recipient certificate (PEM)")
	encryptCmd.Flags().StringVar(&encryptCipher, "cipher", string(sigtrust.CipherTripleDES),
		"block cipher URI for the payload")
	encryptCmd.Flags().StringVarP(&encryptOutput, "output", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(encryptCmd)

	decryptCmd.Flags().StringVar(&decryptKeyFile, "key", "", "private key (PEM) to decrypt with")
	decryptCmd.Flags().StringVarP(&decryptOutput, "output", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(decryptCmd)
}
