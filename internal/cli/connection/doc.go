// Package connection is the HTTP client used by hublink-cli.
//
// HTTPClient wraps the server's JSON API: it sets the bearer API key,
// unwraps the response envelope and turns error envelopes into *APIError.
// The same client satisfies bot.LinkRequester so a chat bot process can
// issue links through a remote server.
package connection
