// SPDX-License-Identifier: EPL-2.0

// Package filter designs and applies the IIR filters used by the retro
// conversion chain: Butterworth high-pass and low-pass filters of any order
// up to MaxOrder, and second-order notch filters for mains hum.
//
// Coefficients are kept as cascaded second-order sections. FiltFilt runs
// them forward and backward for zero phase distortion.
package filter
