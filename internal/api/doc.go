// Package api exposes the bridge's fixed HTTP surface: a static-token gate,
// JSON command and status endpoints, and the two static pages (control and
// config). Routing is fixed — there is no dynamic registration — mirroring
// the wire protocol's fixed command catalogue.
package api
