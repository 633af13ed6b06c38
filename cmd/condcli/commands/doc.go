// Package commands defines the condcli CLI and wires dependencies for subcommands.
//
// Commands
//
//   - validate condition   Check a condition URI is well-formed
//   - validate fulfillment Check a fulfillment satisfies a condition
//   - derive               Print the condition a fulfillment derives
//   - describe              Print a condition's type, bitmask, and fingerprint
//   - sign ed25519         Sign a message, producing an Ed25519 fulfillment
//   - sign preimage        Wrap preimage bytes as a fulfillment
//
// # Implementation
//
// The root command loads the optional ~/.condclirc.yaml defaults before any
// subcommand runs, so handlers share a resolved configuration.
package commands
