// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.4.0"

// Milestones:
// 0.4.0 - TOML job files, star finder, interactive sight form
// 0.3.0 - Least-squares fix with error ellipse, Meeus and table almanac sources
// 0.2.0 - Hourly almanac tables (JSON/msgpack), noon sight workflow, Moon sights
// 0.1.0 - Initial release: altitude corrections, Hc/Zn, Sun/Aries/star almanac, CLI
