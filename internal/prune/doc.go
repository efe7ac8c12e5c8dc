// Package prune removes local flow branches that already merged into the
// development branch.
package prune
