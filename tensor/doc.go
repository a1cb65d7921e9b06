// Package tensor models the editable 2D tensor field that street
// networks are traced from.
//
// What:
//
//   - Tensor: a trace-free symmetric 2×2 tensor stored as (A, B) for
//     [[A, B], [B, -A]], with closed-form major/minor eigenvectors.
//   - Primitives: Grid (uniform basis at a fixed orientation) and
//     Radial (isotropic basis whose major direction points away from
//     its center), each with a size and a decay exponent.
//   - Field: an immutable snapshot of primitives plus exclusion rings
//     (sea, rivers, parks); SampleTensor sums all weighted primitive
//     contributions and blends them out smoothly near exclusions.
//
// Why:
//
//   - Grid primitives yield rectilinear street patterns, radial
//     primitives yield ring-and-spoke patterns; summation with decay
//     lets patterns dominate locally and blend where they meet.
//   - The field is recomputed per sample with no cached state, so the
//     host's editing loop never invalidates anything: a regeneration
//     simply takes a fresh snapshot.
//
// Complexity:
//
//   - SampleTensor: O(P + E·V) per call (P primitives, E exclusion
//     rings of V vertices); integration step counts are bounded, so
//     per-sample recomputation stays cheap in practice.
//
// Options:
//
//   - FieldOptions.BlendWidth: distance over which directions fade to
//     degenerate outside an exclusion ring (0 disables blending; the
//     field is then suppressed only strictly inside rings).
//
// Errors: none — a field with no primitives is legal and degenerate
// everywhere; consumers treat degenerate samples as hard stops.
package tensor
