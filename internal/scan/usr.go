package scan

import "github.com/google/uuid"

// usrNamespace is a fixed namespace UUID so that repeated scans of
// unchanged source produce byte-identical USRs (spec.md §6.1's
// "stable" provider requirement), grounded on the teacher's use of
// github.com/google/uuid for deterministic identifiers elsewhere in
// its stack.
var usrNamespace = uuid.MustParse("6f6e0f1a-6b1d-4e7a-9a9a-8f6c3a2d9b10")

// usrFor synthesizes a stable symbol id from a package path and a
// qualified name, per SPEC_FULL.md §4.9.
func usrFor(packagePath, qualifiedName string) string {
	return "s:" + uuid.NewSHA1(usrNamespace, []byte(packagePath+"."+qualifiedName)).String()
}
