// Package testsupport provides shared fixtures for package tests: temp-dir
// configs, store setup, and stub collaborators.
package testsupport
