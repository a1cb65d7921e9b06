// Package tensorcity procedurally synthesizes a street network, city
// blocks, and building lots from an editable 2D tensor field.
//
// 🚀 What is tensorcity?
//
//	An in-memory generative-geometry pipeline that brings together:
//		• Tensor fields: grid and radial basis primitives with decay falloff
//		• Streamline tracing: RK4 integration of major/minor eigenvectors
//		• Road separation: O(1) bucketed spatial indices per road tier
//		• Topology: planar-graph construction from near-intersecting polylines
//		• Parcels: face extraction, inward offsetting, recursive lot division
//
// ✨ Why choose tensorcity?
//
//   - Pure functions over immutable snapshots — edit primitives freely,
//     regenerate without shared mutable state
//   - Cooperative stepping — one Update() per tick for animated hosts,
//     Run() for blocking hosts, identical algorithm either way
//   - No hard failures — exhaustion and degeneracy always degrade to a
//     smaller, rougher city rather than an error
//
// The pipeline is organized as one package per stage:
//
//	vec/        — 2D vector value type shared by every stage
//	tensor/     — field primitives, summation, exclusion blending
//	integrate/  — RK4/Euler eigenvector integration, land predicate
//	gridindex/  — bucketed separation index (dsep/dtest queries)
//	trace/      — the streamline tracer state machine
//	planegraph/ — polylines → snapped nodes and non-crossing edges
//	blocks/     — faces → shrunk blocks → subdivided lots
//	citygen/    — facade wiring the stages into one generator
//
// Data flows strictly forward:
//
//	tensor → integrate → trace → planegraph → blocks
//
// Dive into examples/ for runnable scenarios, from a single radial
// primitive growing a ring-and-spoke town to a stepwise animated grid.
package tensorcity
