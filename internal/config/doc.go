// Package config defines the format-agnostic pipeline configuration: a flat
// set of named scalar values supplied before execution begins, along with the
// Loader interface that concrete formats (HCL, YAML) implement.
//
// Values never change once loaded. They are the leaves of the dependency
// graph: the resolver treats any name present here as satisfied without
// scheduling a step.
package config
