// Package scene holds the editable electrostatics scene: point charges,
// dielectric rectangles and conducting shields.
//
// The scene is the input boundary of the lab. Every edit is validated here so
// that the field evaluator and the line tracer can stay total:
//
//   - [Scene.AddCharge] rejects zero or non-finite magnitudes
//   - [Scene.AddDielectric] rejects non-positive permittivity
//   - [Scene.AddShield] rejects non-finite rectangles
//
// # Region order
//
// Dielectrics and shields are stored in insertion order and that order is
// part of the model: when regions overlap, the first inserted region that
// contains a point wins. Removal by point likewise removes the first match.
//
// # Snapshots
//
// Computations never see a live [Scene]. They receive a [Snapshot], a copy
// taken between edits, so one frame always reads a complete scene.
package scene
