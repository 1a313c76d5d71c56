// Package factors implements the emission-factor provider boundary
// consumed by the calculation engine.
//
// StaticProvider serves factors from an in-memory table, either the
// embedded GLEC dataset or a YAML file supplied by the operator. When
// several records match a lookup, the highest dataset version wins, with
// Well-to-Wheel scope preferred at equal versions. CachingProvider wraps
// any provider with an expiring LRU so repeated lookups for the same
// mode/vehicle/fuel triple avoid the underlying store.
package factors
