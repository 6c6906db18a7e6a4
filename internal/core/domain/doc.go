// Package domain contains the core entities of the Inkwell note store:
// documents, projects, tags, and the derived statistics and settings that
// belong to them. It has no dependencies on storage or presentation.
package domain
