/*
Package session keeps live recordings addressable by id.

Recorders are not safe for concurrent use while Active. The Manager gives each
recording its own mutex and runs every operation on it under that lock, which
is the single-writer discipline the HTTP and MCP adapters need.
*/
package session
