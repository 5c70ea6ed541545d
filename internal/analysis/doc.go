// Package analysis characterises the long-run behaviour of a body roster.
//
// [LyapunovExponent] estimates the largest Lyapunov exponent by following a
// twin trajectory that starts a tiny distance away and renormalising the
// gap after every step. Regular orbits grow the gap slowly and give a value
// near zero for long runs; close encounters in three or more bodies give
// clearly positive values:
//
//	lambda, err := analysis.LyapunovExponent(cfg, bodies, 0.001, 5, 1e-8)
//
// [Divergence] reports how far each body has drifted between two rosters.
package analysis
