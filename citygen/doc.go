// Package citygen assembles the full map-generation pipeline behind a
// single facade.
//
// What
//
//   - Generator: owns the tensor field, the integrator, one streamline
//     tracer per road tier, and the downstream graph/block/lot stages.
//   - TierSpec: names one road tier and carries its tracing parameters
//     and modifiers.
//   - Options: domain bound, integration step, exclusion rings, and
//     the per-stage option sets.
//
// Why
//
// The lower packages are deliberately independent: tensor knows
// nothing about tracing, trace nothing about graphs. citygen is the
// one place that wires them in the right order and exposes the
// incremental Update loop an interactive caller needs.
//
// Pipeline
//
//	field → integrate → trace (per tier, densest first) →
//	planegraph → blocks.Find → blocks.Shrink → blocks.Divide
//
// Each Update call performs one bounded unit of work: one streamline
// of the current tier, one graph build, one block-extraction pass, or
// the division of one block into lots. Run loops Update to
// completion. All result accessors return deep copies, so a renderer
// may hold onto them across further Updates.
//
// Determinism
//
// Equal Options (including every Seed) reproduce identical output,
// whether driven by Run or by single Update steps.
//
// Errors
//
//	ErrNoTiers    – Options carries no tier specs
//	ErrEmptyBound – the domain bound has no area
package citygen
