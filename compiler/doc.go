// Package compiler runs build-time passes over a di.Registry.
//
// Passes are grouped in phases (BeforeOptimization, Optimize, BeforeRemoving,
// Remove, AfterRemoving). Inside a phase, higher priority runs first and ties
// keep registration order, so a given set of passes always mutates the
// registry in the same sequence.
//
// Compile stops at the first failing pass and returns a go-errors envelope
// with text code COMPILER_PASS_FAILED and the pass name/phase as metadata.
package compiler
