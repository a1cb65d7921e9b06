// Package integrate turns tensor-field samples into step directions
// for the streamline tracer.
//
// What:
//
//   - Integrator: Integrate(p, prev, major) → a step vector of the
//     configured length along the field's major or minor eigenvector.
//   - RK4: classic 4th-order Runge–Kutta over the eigenvector field,
//     smoothing sharp field transitions that a single-point sample
//     would alias into kinked streamlines.
//   - Euler: the one-sample variant for hosts trading quality for
//     speed.
//   - LandMask: OnLand(p) → false inside sea/river exclusion rings,
//     used by the tracer to reject samples and terminate streamlines.
//
// Why:
//
//   - Eigenvectors carry a sign ambiguity. Every stencil sample is
//     aligned (by dot product) to the caller's previous direction —
//     never resolved independently — so streamlines cannot reverse
//     abruptly between steps.
//
// Errors:
//
//   - None at runtime: degenerate field points yield a near-zero step
//     vector, and callers must treat LengthSq() below DegenerateSq as
//     a hard stop rather than a divide-by-zero hazard.
//   - ErrFieldNil: constructor input validation.
//
// Non-positive step sizes are clamped to a small default at
// construction; misconfiguration produces rougher output, never a
// runtime fault.
package integrate
