// Package revizto is a client for the Revizto REST API (v5).
//
// # Overview
//
// The Client holds the region-specific base URL and an OAuth access/refresh
// token pair. It exchanges an authorization code for tokens, refreshes them,
// optionally persists them through a tokenstore.Store, and exposes one method
// per API endpoint. Responses are returned as the decoded JSON body without
// further interpretation.
//
// # Configuration Example
//
//	cfg := revizto.DefaultConfig()
//	cfg.Region = "eu"
//	cfg.ClientID = os.Getenv("REVIZTO_CLIENT_ID")
//	cfg.RedirectURI = "https://example.com/callback"
//	cfg.SaveToken = true
//
//	client, err := revizto.New(*cfg, revizto.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	if _, err := client.GetTokens(ctx, code); err != nil {
//		return err
//	}
//	licenses, err := client.GetCurrentUserLicenses(ctx)
//
// # Errors
//
// Configuration problems match ErrConfiguration and are reported before any
// network activity. Failures at the token endpoint return *AuthError
// (ErrAuthentication). Any other non-2xx response returns *APIError (ErrAPI).
// The vendor's {result, message, data} envelope is passed through as-is; see
// Response for helpers that read it.
//
// # Token Lifetime
//
// Before each call the client checks the access token's expiry. When it is
// known to be expired and the refresh token is still usable, the client
// refreshes once and then issues the call. Calls are never retried.
package revizto
