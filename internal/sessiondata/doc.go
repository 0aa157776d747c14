// Package sessiondata maintains the derived read-cache a debugger UI
// consumes: deduplicated module records and a wholesale-replaced thread
// snapshot, with every string interned so each distinct value is stored
// exactly once per cache instance.
package sessiondata
