// Package dag turns a step registry into an execution order. Build produces
// the whole dependency graph for validation and rendering; Resolve walks only
// what a set of requested names needs and returns the steps in dependency
// order.
package dag
