// Package app wires the condcli CLI's runtime configuration.
//
// It loads the optional ~/.condclirc.yaml defaults file and exposes the
// resolved settings via the Wire struct for commands to use.
package app
