// Package preflight provides readiness checks for the external tools and
// filesystem paths submerge depends on.
//
// These checks run in two contexts:
//   - The merge and batch commands call RunAll before starting any job and
//     stop early when a required check fails.
//   - The doctor command renders every result, including filter capabilities.
package preflight
