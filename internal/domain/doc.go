// Package domain models a time-stepped nuclear incident: the radiation
// field produced by a detonation, wind-driven fallout deposition between
// city zones, and the derived emergency-response state.
//
// # Model Conventions
//
// Zones are integer indices in [0, N). The default topology arranges them
// along a line; distance between zones a and b is |a-b|, so adjacent zones
// receive a large but finite radiation value rather than a singularity.
// Zero distance occurs only at ground zero itself.
//
// Radiation is expressed in sieverts per hour (Sv/h) and capped at
// [RadiationCap] (1000 Sv/h). Ground zero is always pinned to the cap
// regardless of yield; every other zone receives
//
//	min(yield_kt * 100 / distance², RadiationCap)
//
// Fallout deposition is a separate N×N matrix: entry [source][target] is the
// intensity deposited from one zone onto another, biased by wind alignment
// and capped at [FalloutCap]. The diagonal is always zero. The field and the
// matrix are computed independently from the same incident and are never
// combined into a single exposure figure.
//
// # Decay
//
// Both quantities decay linearly per simulated hour: the field at
// [DecayRate], the matrix at the slower [DispersionRate]. Linear decay is an
// approximation valid only for small time steps (dt ≤ 1 hour); values are
// clamped at zero after each step so an oversized dt cannot flip the sign.
//
// # Classification
//
// Two independently-thresholded schemes coexist and are both part of the
// contract:
//
//	System threat level, from peak radiation across all zones:
//	  <0.1 NORMAL | <1.0 ELEVATED | <10 HIGH | <100 SEVERE | ≥100 CRITICAL
//
//	Per-zone safety status, for user-facing reporting:
//	  <0.01 SAFE | <0.1 CAUTION | <1.0 DANGER | ≥1.0 CRITICAL
//
// Evacuation membership uses hysteresis rather than a single threshold: a
// zone enters the evacuation set above 1.0 Sv/h and leaves below 0.1 Sv/h.
// Inside the [0.1, 1.0] dead band prior membership is preserved, which keeps
// the set from flapping while radiation decays across the boundary.
//
// # ID Generation
//
// Incident IDs are deterministic SHA-256 hashes of the trigger parameters
// and trigger time. Downstream consumers of published snapshots can upsert
// idempotently (ON CONFLICT DO NOTHING) without distributed coordination.
// See [GenerateIncidentID].
package domain
