// Package av1an synthesizes and runs invocations of the Av1an orchestrator.
//
// BuildCommand maps validated settings onto the av1an-verbosity argument
// list deterministically, omitting every flag whose settings field still
// carries its default so the printed command stays minimal. The Runner
// launches that invocation, holds a per-output lock so concurrent encodes
// cannot race on one file, and streams the orchestrator's verbose frame
// lines back as progress updates.
//
// The package never second-guesses Av1an: scene detection, chunked encoding,
// and concatenation all happen inside the external tool.
package av1an
