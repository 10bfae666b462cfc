// Package foreign defines the contract against the upstream IR provider.
//
// The provider owns parsing and validation of the raw encoding; this package
// only describes what the decoders are allowed to ask of an already-parsed
// module. Handles (Module, Function, Block, Value, Type, Attribute) are
// interface values compared by identity: implementations must hand out the
// same pointer-backed value for the same underlying entity, because the
// decode session keys its caches on them. Nothing in this module ever
// mutates state through a handle.
package foreign
