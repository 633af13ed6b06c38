package commands

import (
	"crypto/ed25519"
	"encoding/base64"
	"fmt"

	"github.com/spf13/cobra"

	conditions "crypto-conditions"
)

func signCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Produce a fulfillment",
	}

	var seedB64, messageB64 string
	edCmd := &cobra.Command{
		Use:   "ed25519",
		Short: "Sign a base64 message with a base64 Ed25519 seed and print the fulfillment",
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := base64.StdEncoding.DecodeString(seedB64)
			if err != nil {
				return fmt.Errorf("bad --seed: %w", err)
			}
			if len(seed) != ed25519.SeedSize {
				return fmt.Errorf("--seed must decode to %d bytes, got %d", ed25519.SeedSize, len(seed))
			}
			message, err := base64.StdEncoding.DecodeString(messageB64)
			if err != nil {
				return fmt.Errorf("bad --message: %w", err)
			}
			priv := ed25519.NewKeyFromSeed(seed)
			f, err := conditions.SignEd25519(priv, message)
			if err != nil {
				return err
			}
			uri, err := conditions.FulfillmentURI(f)
			if err != nil {
				return err
			}
			fmt.Println(uri)
			fmt.Println(f.Condition().URI())
			return nil
		},
	}
	edCmd.Flags().StringVar(&seedB64, "seed", "", "32-byte Ed25519 seed, base64-encoded")
	edCmd.Flags().StringVar(&messageB64, "message", "", "base64-encoded message to sign")
	edCmd.MarkFlagRequired("seed")

	var preimageB64 string
	preimageCmd := &cobra.Command{
		Use:   "preimage",
		Short: "Wrap a base64 preimage as a fulfillment",
		RunE: func(cmd *cobra.Command, args []string) error {
			preimage, err := base64.StdEncoding.DecodeString(preimageB64)
			if err != nil {
				return fmt.Errorf("bad --preimage: %w", err)
			}
			f := conditions.NewPreimageFulfillment(preimage)
			uri, err := conditions.FulfillmentURI(f)
			if err != nil {
				return err
			}
			fmt.Println(uri)
			fmt.Println(f.Condition().URI())
			return nil
		},
	}
	preimageCmd.Flags().StringVar(&preimageB64, "preimage", "", "base64-encoded preimage")

	cmd.AddCommand(edCmd, preimageCmd)
	return cmd
}
