// Package planegraph turns finished streamline polylines into a
// topological planar graph of nodes and non-crossing edges.
//
// What:
//
//   - Build(streamlines, opts): scans all polyline segments for proper
//     intersections and near-coincident endpoints, splits segments at
//     crossing points, and unifies points within SnapTolerance into
//     single nodes.
//   - Graph: nodes (point + incident edges) and edges (exactly two
//     distinct nodes each, no interior crossings).
//
// Why:
//
//   - Streamlines end near — not exactly on — the roads they collide
//     with; snapping endpoint clusters into shared nodes is what turns
//     a drawing into a topology that faces can be traced from.
//   - Segment pairs are matched through the same spatial-bucket
//     strategy as the separation index, and node lookup goes through
//     an orb quadtree, so construction stays near-linear in segments.
//
// Complexity:
//
//   - Build: O(S·k + X log N) for S segments with k average bucket
//     occupancy and X crossings over N nodes.
//
// Invariant: the output graph has no dangling edge unless the source
// streamline was genuinely open at the map boundary; the graph owns
// copies of every coordinate and never aliases the input slices.
//
// Errors:
//
//   - ErrNoSegments: no input polyline contributed a usable segment.
package planegraph
