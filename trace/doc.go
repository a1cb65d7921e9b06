// Package trace implements the streamline tracer: the seeding,
// integration, and termination state machine that grows road polylines
// from a tensor field.
//
// What:
//
//   - Tracer: owns one road tier's streamlines and its Pair of
//     per-eigen-direction separation indices, with a read-only
//     reference to the previous tier's pair for cross-tier density
//     checks. Major and minor samples live in separate grids so
//     perpendicular streets cross; with probability CollideEarly a
//     streamline also tests the opposite direction's grid and
//     terminates at crossings instead.
//   - Seeding: uniform candidates, rejected within Dsep of accepted
//     samples of either direction, off land, outside the domain, or
//     outside an optional region predicate; a bounded retry budget
//     ends the tier.
//   - Bidirectional integration: forward and backward fronts advance
//     simultaneously from the seed; each step resolves eigenvector
//     sign by continuity, stops on domain exit, water, Dtest
//     proximity to accepted samples, degeneracy, a cumulative turn
//     beyond 180° (anti-spiral guard), or DCircleJoin proximity to
//     the streamline's own earlier points in either front, the
//     trailing NLookBack merged steps exempt.
//   - Circle closure: once the fronts separate beyond DCircleJoin and
//     later re-approach within it, the streamline closes into a ring —
//     compensating for the bounded integration error two independent
//     fronts accumulate around a true loop.
//   - Directional modifiers: multi-octave coherent-noise angle
//     perturbation, terrain-avoidance contour nudging, center-scaled
//     strength, and a noise-masked constant bias, composed by angle
//     addition and renormalized to the step length.
//   - Acceptance: short streamlines are discarded; accepted ones feed
//     the index and are simplified (Douglas–Peucker via orb/simplify)
//     for graph building, with the raw form retained for queries.
//   - Dangling-end joining: a post-pass splices open endpoints onto
//     compatible nearby samples within DLookahead.
//
// Why:
//
//   - Update() performs one bounded unit of work (one streamline
//     attempt) and reports whether more remains; Run() loops to
//     completion. One algorithm, two host modes.
//
// Options: Params (separation and budget knobs, clamped at
// construction) and Modifiers (all disabled by default), both with
// Default* constructors and explicit seeds for reproducibility.
//
// Errors:
//
//   - ErrIntegratorNil, ErrIndexNil: constructor validation.
//   - Seeding exhaustion and integrator degeneracy are local outcomes
//     (smaller network, shorter streamline), never errors.
package trace
