// Package release orchestrates the release branch pipeline: semantic-version
// computation, release branch preparation, the squash-onto-main finish with
// its version tag, and hosted pull request publication.
package release
