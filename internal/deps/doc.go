// Package deps probes the external encoder toolchain av1studio drives.
package deps
