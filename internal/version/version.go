// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Aspectarian browser TUI, orb file hot reload, chart view
// 0.2.0 - Cusp and fixed-star aspects, Raman houses, Saturn royal stars index
// 0.1.0 - Initial release: stations, aspects, ingresses, years between dates
