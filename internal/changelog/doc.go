// Package changelog collects conventional commits between two references and
// renders Markdown release entries into the repository changelog file.
package changelog
