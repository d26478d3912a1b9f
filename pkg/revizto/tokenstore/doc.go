// Package tokenstore persists the access/refresh token pair obtained by the
// Revizto client so it survives process restarts.
//
// Credentials are keyed by region because each Revizto region issues its own
// tokens. Three implementations are provided:
//
//   - MemoryStore keeps credentials for the lifetime of the process.
//   - FileStore writes a JSON snapshot of all regions to a single file.
//   - EnvFileStore reads and writes a dotenv file ({REGION}_ACCESS_TOKEN and
//     friends), so the tokens can share a .env file with other settings.
//
// File-backed stores operate on an afero.Fs; pass afero.NewOsFs() for the
// real filesystem and afero.NewMemMapFs() in tests.
package tokenstore
