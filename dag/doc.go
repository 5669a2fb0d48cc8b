// Package dag groups the nodes of a dependency graph into levels using
// Kahn's algorithm. Workflow validation uses it to check that step
// dependencies resolve, contain no cycles, and form the expected shape.
package dag
