// Package analysis provides offline diagnostics for recorded runs.
//
//   - [Describe]: summary statistics of a metric series
//   - [PowerSpectrum]: Hann-windowed power spectrum of a series
//   - [Spectrum.Dominant]: strongest non-DC frequency component
//
// Dump's rolling tilt walks the pellet centroid around the bed center,
// so its spectrum shows a clear peak at the cycle rate.
package analysis
