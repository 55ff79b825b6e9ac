// Package settings holds the encoding parameters av1studio collects and
// persists.
//
// The Settings type mirrors the knobs the Av1an orchestrator and the
// SVT-AV1-PSY encoder expose: input and output paths, the frame source
// library, output shaping, encoder tuning, and worker controls. Construction
// starts from documented defaults, Validate enforces every range invariant
// without clamping, and the TOML codec round-trips files so a saved preset
// loads back byte-for-byte equivalent.
//
// Obtain instances through Default or Load so absent fields always carry
// their defaults; the command synthesizer relies on that to omit
// default-valued flags.
package settings
