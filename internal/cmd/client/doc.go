// Package client provides the `tape` command-line client.
//
// The CLI operates directly on the local data directory; there is no server
// or wire protocol. It is primarily intended for inspecting and pruning
// archived windows.
//
// # Data directory
//
// The data directory is resolved from --data-dir, then TAPE_DATA_DIR, then
// an OS-specific application data directory. Configuration is read from
// --config (JSON or YAML) with a TAPE_* environment overlay.
//
// Usage
//
//	# run the sample window walkthrough and archive it
//	tape demo
//
//	# archived windows, newest first
//	tape window list --reverse --limit 20
//
//	# entries of one window, one per line
//	tape window show --id 0000019c8f2a31b20000000000000000
//
//	# narrow with a CEL expression over seq/ts_ms/size/text/json/now_ms
//	tape window show --id 0000019c8f2a31b20000000000000000 --filter 'text.contains("Distance")'
//
//	# drop windows older than 48h (requires --confirm)
//	tape window purge --older-than 48h --confirm
package client
