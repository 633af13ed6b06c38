package commands

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	conditions "crypto-conditions"
)

// fingerprint returns a short hex fingerprint of a condition hash, in the
// same truncated-SHA-256 style as the rest of this CLI's key/hash displays.
func fingerprint(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:10])
}

func describeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <condition-uri>",
		Short: "Print a condition's type, feature bitmask, and fingerprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := conditions.FromConditionURI(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("type:             %s (%d)\n", c.TypeID, c.TypeID)
			fmt.Printf("feature bitmask:  0x%02x\n", c.FeatureBitmask)
			fmt.Printf("max fulfillment:  %d bytes\n", c.MaxFulfillmentLength)
			fmt.Printf("fingerprint:      %s\n", fingerprint(c.Hash[:]))
			return nil
		},
	}
}
