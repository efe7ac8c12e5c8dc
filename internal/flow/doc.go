// Package flow orchestrates the lifecycle of feature, fix, and release branches.
//
// Branches are cut from the development branch on start and merged back with a
// merge commit on finish. Every merge is rehearsed on a throwaway branch before
// it runs, so conflicting merges fail without modifying the real branches.
// Branch naming, base branches, and the remote are settable through
// Configuration, overridable per repository by a .gflow.yaml file at the
// repository root.
package flow
