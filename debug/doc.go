// Package debug holds environment gated tracing switches.
//
//	BOX_DEBUG_CONVERT   lazy conversion of raw mappings and sequences
//	BOX_DEBUG_HERITAGE  write-back of default-created children
//	BOX_DEBUG_DOTS      dotted path resolution
//	BOX_DEBUG_CODEC     encode and decode calls
//
// Traces go to stderr through [Logf].
package debug
