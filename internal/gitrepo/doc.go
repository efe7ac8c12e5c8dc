// Package gitrepo contains helpers for interrogating and manipulating Git repositories.
//
// It exposes RepositoryManager for inspecting branches, tags, and worktree
// status and for driving the merge, tag, and push porcelain consumed by flow
// and release services. Every operation addresses the repository through an
// explicit filesystem path.
package gitrepo
