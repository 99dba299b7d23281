// Package analysis decodes the analysis service's response: per-method scalar
// features plus an optional precomputed spectrogram, and converts the
// spectrogram into a render.Input.
package analysis
