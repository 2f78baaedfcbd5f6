package common

// AuthorizationHeaderName is the HTTP header carrying the bearer credential.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token inside the Authorization header.
const BearerPrefix = "Bearer "

// TokenMetadataKey is the fixed key under which the client persists its
// session token. Absence of the key means the client is anonymous.
const TokenMetadataKey = "token"

// DefaultSecretKey is the well-known signing secret used when none is
// configured. Deployments are expected to override it.
const DefaultSecretKey = "changeme"
