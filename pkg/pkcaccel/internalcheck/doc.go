// Package internalcheck holds static policy tests over the pkcaccel source.
//
// The tests load the module's non-test packages with golang.org/x/tools and
// fail on constructs that leak or mishandle key material: variable-time
// comparison of byte slices, hex formatting in messages, non-cryptographic
// randomness, and imports that break the package layering.
//
// # Internal Use Only
//
// The package has no API. Applications use pkg/pkcaccel and its
// subpackages.
package internalcheck
