// Package blocks extracts city blocks from the planar street graph
// and subdivides them into building lots.
//
// What:
//
//   - Find(graph): traces the minimal cycles (faces) of the planar
//     graph by walking, from every untraversed directed edge, the
//     most-counterclockwise next edge at each node until the walk
//     returns to its start. Bounded faces (positive signed area) are
//     the blocks; the unbounded outer face falls out for free.
//   - Shrink(blocks, spacing): offsets each block inward by a fixed
//     spacing (sidewalks, setbacks), dropping any polygon that
//     degenerates.
//   - Divide(blocks, opts): recursively bisects each polygon along
//     its longest edge's perpendicular bisector while the longest
//     edge exceeds MaxLength and both halves keep at least MinArea,
//     skipping a division with probability ChanceNoDivide to vary
//     lot sizes.
//
// Why:
//
//   - Every directed edge belongs to exactly one face walk, so the
//     face set is complete without double counting; dead-end spurs
//     cancel out and are pruned so blocks stay simple polygons.
//
// Options: DivideOptions with DefaultDivideOptions(); values are
// clamped, and a seeded rng makes lot layouts reproducible.
//
// Errors: none at runtime — degenerate offsets and failed splits
// yield fewer or coarser polygons, never a failure. Find(nil) returns
// nil.
//
// Decisions recorded in DESIGN.md: the face-walk tie-break under
// collinear edges (sharpest left turn, then lowest edge ID) and the
// exactly-two-crossings restriction of the division split.
package blocks
