package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/spf13/cobra"

	"av1studio/internal/av1an"
)

func newEncodeCommand(ctx *commandContext) *cobra.Command {
	flags := &settingsFlags{}
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Synthesize the Av1an command and run it to completion",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			resolved, err := resolveSettings(cmd, cfg, flags)
			if err != nil {
				return err
			}
			inv, err := av1an.BuildCommand(cfg.Tools.Av1an, resolved)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if dryRun {
				fmt.Fprintln(out, inv.String())
				return nil
			}

			if hint, ok := workerHint(resolved.Workers); ok {
				fmt.Fprintln(out, hint)
			}
			fmt.Fprintf(out, "Encoding %s -> %s\n", resolved.InputFile, resolved.OutputFile)

			runner := av1an.NewRunner(logger, cfg.Paths.LogDir)
			progress := newProgressSink(out)
			result, err := runner.Encode(cmd.Context(), inv, progress.update)
			progress.finish()
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Finished %s in %s (%d frames, %.1f fps average, %s)\n",
				result.OutputPath,
				av1an.FormatDuration(result.Elapsed),
				result.Frames,
				result.AverageFPS,
				humanize.Bytes(uint64(result.OutputBytes)))
			return nil
		},
	}

	registerSettingsFlags(cmd, flags)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the command instead of running it")
	return cmd
}

// workerHint describes the machine's parallelism when the worker count is
// left to Av1an. Av1an sizes its worker pool from the physical core count,
// so the hint tells the user what to expect.
func workerHint(workers int) (string, bool) {
	if workers != 0 {
		return "", false
	}
	physical, err := cpu.Counts(false)
	if err != nil || physical <= 0 {
		return "", false
	}
	return fmt.Sprintf("Workers: letting Av1an decide (%d physical cores available)", physical), true
}

// progressSink renders frame reports as a terminal progress bar, or stays
// silent when stdout is not a TTY (the structured log carries the updates
// there).
type progressSink struct {
	bar     *progressbar.ProgressBar
	enabled bool
}

func newProgressSink(out io.Writer) *progressSink {
	file, ok := out.(*os.File)
	if !ok {
		return &progressSink{}
	}
	fd := file.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return &progressSink{}
	}
	return &progressSink{enabled: true}
}

func (p *progressSink) update(u av1an.ProgressUpdate) {
	if !p.enabled {
		return
	}
	if p.bar == nil {
		total := int64(u.TotalFrames)
		if total <= 0 {
			total = -1
		}
		p.bar = progressbar.NewOptions64(total,
			progressbar.OptionSetDescription("encoding"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetRenderBlankState(true),
			progressbar.OptionThrottle(200*time.Millisecond),
		)
	}
	if total := int64(u.TotalFrames); total > 0 && total != p.bar.GetMax64() {
		p.bar.ChangeMax64(total)
	}
	_ = p.bar.Set64(int64(u.EncodedFrames))
}

func (p *progressSink) finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
		fmt.Println()
	}
}
