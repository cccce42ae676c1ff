// Package geometry provides small fixed-dimension vector value types.
//
// [Vector2] is the workhorse of the simulation: plane kinematics, polar
// construction for orbital seeding, and the screen transforms used by
// the display layers:
//
//   - [Vector2.LeftUp]: centered world coordinates to left-up screen space
//   - [Vector2.Centered]: left-up screen space back to centered world
//
// [Vector4] packs a (position, velocity) pair for the integrator.
// [Vector3] completes the family for spatial quantities; the dynamics
// themselves stay planar.
//
// All operations are pure and allocation-free. Equality is approximate:
// two vectors compare equal when their squared distance falls below the
// smallest positive float, never bitwise.
package geometry
