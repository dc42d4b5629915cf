//nolint:gochecknoglobals // export_test.go pattern requires global variables to expose internal functions
package declarator

// SpaceSeparatorsForTest exposes spaceSeparators for unit testing.
var SpaceSeparatorsForTest = spaceSeparators
