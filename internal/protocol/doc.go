// Package protocol implements the Algo_Domo v1.6 wire format: a fixed
// 14-byte frame exchanged with home-automation boards over a TCP gateway.
//
// A frame is:
//
//	offset 0    START   = 0x49
//	offset 1    address (byte)
//	offset 2    command (byte)
//	offset 3-12 g[0..9] (ten payload bytes)
//	offset 13   END     = 0x46
//
// Encode builds a frame for a given command; Decode parses a frame into its
// address, command and payload, and DecodeSnapshot turns a polling reply into
// a Snapshot. ExtractFrame scans an arbitrary byte buffer (as read off a
// socket) for the first complete frame.
package protocol
