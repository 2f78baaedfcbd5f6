// Package client talks to the talentauth HTTP API.
//
// # Overview
//
// The package provides:
//  1. The Client interface: Register, Login, Me and Logout.
//  2. HTTPClient, which implements it over net/http. The bearer token is
//     attached to every outgoing request by a RoundTripper that reads it
//     from a TokenSource, so individual calls never handle the token.
//  3. InitDatabase and RunMigrations, which open the local SQLite session
//     database and apply the embedded goose migrations.
//
// # Error Handling
//
// Transport failures match ErrUnavailable. Non-2xx responses are returned as
// *APIError carrying the server's code and message; a 401 also matches
// ErrUnauthorized under errors.Is.
//
// A 401 answered to a request that carried a token means the session is no
// longer valid: the handler set with SetUnauthorizedHandler is invoked so
// the session manager can drop it.
package client
