// Package resource bounds the I/O the catalog issues against a blob store:
// how many store calls may be in flight and how many bytes per second may
// be written.
package resource
