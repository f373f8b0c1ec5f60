// Package config provides configuration loading, merging, and validation
// facilities for the form service and the formctl client.
//
// Configuration is assembled from multiple sources; for every field the
// first source that sets a non-zero value wins:
//  1. Environment variables (an optional .env file is loaded first)
//  2. Command-line flags (server only)
//  3. JSON config file
//  4. Built-in defaults
//
// The main entry points are [GetStructuredConfig] for the server and
// [GetClientConfig] for formctl.
package config
