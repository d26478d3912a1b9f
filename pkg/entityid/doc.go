// Package entityid provides the typed identifier used for Revizto entities.
//
// Most Revizto resources (licenses, projects, issues, sheets, members and
// project roles) are addressed by UUID. Projects additionally carry a numeric
// ID, which some endpoints take instead; those are plain ints in the client.
package entityid
