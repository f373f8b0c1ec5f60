// Package http implements the REST API of the form engine.
//
// It wires routes to the form and submission services and carries the
// cross-cutting middleware: bearer authentication, request tracing, access
// logging, request metrics and response compression.
package http
