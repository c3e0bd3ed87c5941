// Package schema provides implementations for handling (Unix-based) operating
// system syscalls. They are injected into other packages behind small
// interfaces, so that tests can substitute them.
package schema
