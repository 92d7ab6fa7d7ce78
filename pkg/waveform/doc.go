// Package waveform computes normalized lung-volume curves for breathing
// techniques. It contains:
//
//   - Generate: input validation plus dense sampling over a time axis
//   - Volume: the closed-form curve of each technique at a single instant
//   - RenderBars: an ASCII bar chart of a sampled curve
//
// Every sample is computed independently of its neighbours, so a curve
// never carries state between calls.
package waveform
