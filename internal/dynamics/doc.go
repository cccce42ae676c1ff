// Package dynamics implements the gravitational n-body engine.
//
// The building blocks, smallest first:
//
//   - [Point]: kinematic state (position, velocity, acceleration) plus a
//     fixed 256-sample trajectory ring buffer for trail rendering
//   - [Orbit]: Keplerian elements with closed-form position and velocity
//     at a true anomaly, used once to seed initial body state
//   - [Body]: named point mass with a drawable [Circle] shape
//   - [Cluster]: the body collection, synthetic barycenter, reference
//     frame and selection cursor, hosting the integrator
//
// # Integration
//
// [Cluster.Advance] runs an acceleration-averaging Runge-Kutta scheme:
// four derivative evaluations per body are combined into one corrected
// acceleration, then a single semi-implicit Euler step commits position
// and velocity across the cluster. This is deliberately not a textbook
// full-state RK4 advance; changing it alters the energy and momentum
// drift characteristics of existing seeds.
//
// Evaluation happens in absolute coordinates: Advance adds the frame
// origin back into every body first and subtracts the recomputed origin
// afterwards, so display-centered state never feeds the force model.
package dynamics
