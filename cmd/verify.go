package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rebaze/secrisk/internal/sign"
)

type verifyOptions struct {
	root      *rootOptions
	key       string
	signature string
}

func newVerifyCmd(root *rootOptions) *cobra.Command {
	o := &verifyOptions{root: root}

	c := &cobra.Command{
		Use:   "verify <report>",
		Short: "Verify the detached OpenPGP signature of a generated report",
		Long: "Checks <report>.asc (or --signature) against the armored public keys in --key.\n" +
			"Exits non-zero when the signature does not match.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args[0])
		},
	}

	c.Flags().StringVar(&o.key, "key", "", "Armored OpenPGP public key ring")
	c.Flags().StringVar(&o.signature, "signature", "", "Detached signature (default <report>"+sign.SignatureSuffix+")")
	_ = c.MarkFlagRequired("key")
	return c
}

func (o *verifyOptions) run(cmd *cobra.Command, path string) error {
	sigPath := o.signature
	if sigPath == "" {
		sigPath = path + sign.SignatureSuffix
	}
	if err := sign.VerifyFile(path, sigPath, o.key); err != nil {
		return fmt.Errorf("verifying %s: %w", path, err)
	}
	if !o.root.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "%s Signature verified: %s\n", checkEmoji, success("%s", path))
	}
	return nil
}
