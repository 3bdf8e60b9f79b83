// Package serial converts between domain values and document-safe
// trees, including the tagged-object round-trip protocol.
//
// # Overview
//
// A document-safe value is composed only of scalars, mappings, and
// sequences, so any format adapter can render it. Domain values that
// can express themselves as a mapping (the Serializable interface) are
// serialized as that mapping plus one reserved key, TagKey ("=="),
// holding a registered type identifier. Reading the document back,
// the presence of TagKey triggers a lookup in a Registry of factories
// and the stripped mapping is handed to the factory, reconstructing
// the domain value.
//
// # Round-trip law
//
// For any registered type whose factory is idempotent on its own
// serialized form,
//
//	ToNative(ToDocumentSafe(x))
//
// wraps a value equal to x.
//
// # Failure policy
//
// Reconstruction failures (unknown identifier, factory error) are
// non-fatal: the raw mapping is returned unchanged, reserved key
// intact, and the failure is logged. Serialization of values nothing
// can encode degrades to a debug-string scalar rather than erroring.
//
// # Registry lifecycle
//
// Registries are populated at process start and frozen once; lookups
// after Freeze read an immutable snapshot. A process-wide Default
// registry backs the package-level Register/Freeze/ToNative.
package serial
