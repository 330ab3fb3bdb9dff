// Package field evaluates the electric field of a scene.
//
// The field at a point is the superposition of Coulomb contributions
//
//	E_i = k q_i / (r_i^2 εr) r̂_i
//
// where εr is the relative permittivity of the medium at the query point:
// vacuum (1), the first dielectric containing the point, or a very large
// value inside a shield. The shield value approximates field expulsion from
// a conductor; induced surface charges are not modeled.
//
// All functions are pure. They read a [scene.Snapshot] and return plain
// values.
package field
