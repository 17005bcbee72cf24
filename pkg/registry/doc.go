// Package registry provides a generic, type-safe registry system
// for managing builder families and their factories. It supports
// automatic registration through init() functions.
package registry
