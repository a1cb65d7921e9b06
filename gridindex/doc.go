// Package gridindex maintains the bucketed spatial index of accepted
// streamline sample points that enforces road-separation rules.
//
// What:
//
//   - Index: a uniform grid of cells over a rectangular domain; each
//     cell holds the accepted samples falling inside it.
//   - IsValidSample(p, minDistSq): true iff no stored sample lies
//     within the given squared distance of p.
//   - Nearby(p, radius): all stored samples within radius of p.
//   - AddSample / AddPolyline: insertion, one grid per road tier.
//
// Why:
//
//   - Cells are sized to half the separation distance, so a validity
//     query only touches a fixed neighborhood of cells: amortized O(1)
//     per query regardless of total sample count.
//   - Tiers keep independently addressable indices; cross-tier density
//     checks read a sibling index without merging storage, preserving
//     each tier's clear/rebuild lifecycle.
//
// Complexity:
//
//   - AddSample: O(1). IsValidSample/Nearby: O(k) over the samples in
//     the covered cell neighborhood (expected O(1) under the dsep
//     invariant).
//
// Errors: none — points outside the domain clamp to the border cells,
// so callers never need to pre-filter; domain membership is the
// tracer's concern, not the index's.
package gridindex
