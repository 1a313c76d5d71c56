// Package engine implements the GLEC v3.1 Well-to-Wheel emissions
// calculation pipeline for logistics transport legs.
//
// The pipeline is a fixed stage sequence (validate, resolve factor,
// normalize, compute, assemble) identical across modes. Mode-specific
// behavior lives in one Strategy per transport mode (road, rail, sea,
// air), resolved through an explicitly constructed Registry. The engine
// consumes an external FactorProvider for emission-factor lookups and
// degrades to documented per-mode defaults when a lookup fails or comes
// back empty, recording every substitution in the result's assumptions
// list.
//
// All entities are immutable value objects constructed per request; the
// Registry is the only object with process lifetime. The engine performs
// no I/O besides the provider boundary and never caches results.
package engine
