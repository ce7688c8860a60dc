// Package status aggregates the bridge's current view of every configured
// entity, optionally refreshing it with a sequential poll of each distinct
// board address before building the response. Concurrent refresh requests
// are collapsed via singleflight so a burst of status polls from several
// browser tabs triggers one bus sweep, not one per request.
package status
