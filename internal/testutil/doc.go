// Package testutil provides shared fixtures for package tests: a known
// catalog, complete customer details and convenience constructors for a
// fully wired controller. Keeping fixtures here avoids re-declaring the
// same addresses and product sets in every _test.go file.
package testutil
