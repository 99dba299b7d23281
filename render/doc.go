// Package render turns dB spectrogram matrices into calibrated, color-mapped
// raster images.
//
// A render is a single synchronous pass: the Input is normalized and color
// mapped cell by cell, block-replicated into a pixel buffer with the lowest
// frequency at the bottom, framed by frequency and time axes with evenly
// spaced labeled ticks, and accompanied by a gradient legend. Nothing is
// cached between calls. Surface adds "last trigger wins" semantics for a
// display target fed by overlapping updates.
package render
