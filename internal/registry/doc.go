// Package registry collects the pipeline's step definitions.
//
// A StepDefinition pairs a Go function with the names it consumes and the
// names it produces. The registry stores the mapping from every produced
// output name to the one step that produces it; the dag package uses that
// mapping to wire steps together by name, and the executor uses it to call
// them.
//
// Registration is strict: an output name can only be produced by one step.
// The first invalid registration poisons the registry so that no resolution
// can run against a half-valid set of steps.
package registry
