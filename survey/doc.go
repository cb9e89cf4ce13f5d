// Package survey turns a typed Go value description into an interactive
// data-collection form and back again. A schema (tree of questions) is derived
// from a struct or a registered union interface; a collection backend walks
// the tree and fills a flat, path-keyed answer store; and the same derivation
// rules reconstruct a typed value from that store.
//
// The design separates three concerns:
//  1. Schema derivation (what to ask, in which order, with which bounds)
//  2. Collection (how a presentation surface obtains and validates answers)
//  3. Reconstruction (how the answer store hydrates a destination value)
//
// Derivation and reconstruction share a single reflection walk, so a schema
// and its decoder cannot drift apart: every leaf the schema exposes is a leaf
// the decoder reads, and every subtree elided by an assumption is satisfied
// from a shadow store computed at derivation time.
//
// # Authoring
//
// Structs become AllOf groups, one sub-question per exported field in
// declaration order. A `survey` struct tag supplies the prompt and
// constraints:
//
//	type Profile struct {
//	    Name string `survey:"ask=What is your name?"`
//	    Age  int    `survey:"ask=How old are you?,min=0,max=150"`
//	}
//
// Tagged unions are closed interfaces registered with RegisterUnion; they
// become OneOf questions whose variants are the registered cases. A slice of
// a union type becomes an AnyOf multi-select; a slice of scalars becomes a
// single list-input leaf.
//
// # Collection
//
// A Backend implements the collection protocol: it receives the definition
// and a validate callback, visits every non-elided leaf, and returns a
// completed Responses store or an error. Backends must route every candidate
// value through the callback; declared numeric bounds are enforced there and
// cannot be bypassed by custom validators.
//
// # Running
//
//	profile, err := survey.For[Profile]().
//	    Suggest("name", "Alice").
//	    Run(ctx, backend)
//
// The builder's core state is a plain path-to-default mapping: Suggest
// pre-fills an editable answer, Assume fixes an answer and removes its whole
// subtree from what the backend ever sees.
package survey
