// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.2.0"

// Milestones:
// 0.2.0 - Lazy region paging, JSON snapshot export, query dashboard
// 0.1.0 - Initial release: fixed-point octree, catalogue loading, starfield TUI
