// Package commands defines the pkcaccel diagnostic CLI.
//
// Commands
//
//   - curves     List recognized groups and whether the coprocessor can use them
//   - ecdh       Run a key agreement between two fresh key pairs
//   - rsa        Run raw private and public operations on a fresh key
//   - selftest   Run every check above concurrently, one device each
//
// Every command drives the software engine from package softpkc. Flags
// override values read from the --config JSON file.
package commands
