// Package occupancy forecasts near-term facility busyness. The heuristic
// predictor combines time-of-day patterns with the reported charger state and
// is fully deterministic for a given (facility, timestamp) pair.
package occupancy
