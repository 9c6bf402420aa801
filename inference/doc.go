// Package inference defines the contract shared by all inference engines
// (exact junction tree, likelihood-weighted sampling, and decorators) and the
// bookkeeping they have in common:
//
//   - Inferer: SetNetwork / SetEvidence / AddEvidence / RemoveEvidence /
//     ClearEvidence / Evidence / Beliefs.
//   - Base: evidence map, the single "beliefs valid" flag and the belief
//     cache, embedded by concrete engines.
//   - Normalize: belief normalization that reports ErrZeroProbability instead
//     of returning NaN or a uniform vector when evidence is impossible.
//   - Telemetry: OpenTelemetry spans and metrics around compile/propagate.
//     They are no-ops until the host installs tracer and meter providers.
//
// Beliefs are recomputed lazily: any evidence change or network mutation
// (observed through bayesnet.Network.Version) invalidates all of them at once.
package inference
