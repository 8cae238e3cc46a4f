// Package domain contains the core entities of the injury-risk engine: risk
// factors, injury patterns, daily training samples and the assessments derived
// from them. It is independent of any storage or delivery mechanism.
package domain
