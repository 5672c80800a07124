package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"

	"pkg.jsn.cam/logsynth/internal/generator"
	"pkg.jsn.cam/logsynth/internal/sink"
)

// Fixed base time so fixture content is stable across machines and runs.
var baseTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// How many records between progress bar updates.
const progressStep = 1000

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("logsynth", flag.ContinueOnError)
	fs.SetOutput(stderr)
	output := fs.String("output", "-", "output path ('-' for stdout)")
	codec := fs.String("compress", sink.CodecNone, "compress output: none|gzip|zstd")
	progress := fs.Bool("progress", false, "show a progress bar on stderr (file output only)")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [flags] <count>\n", fs.Name())
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 1
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return 1
	}
	count, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil || count < 0 {
		fmt.Fprintf(stderr, "Error: count must be a non-negative integer, got %q\n", fs.Arg(0))
		return 1
	}

	out, err := sink.Build(*output, *codec, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	var bar *progressbar.ProgressBar
	if *progress && out.IsFile() {
		bar = progressbar.NewOptions64(count,
			progressbar.OptionSetWriter(stderr),
			progressbar.OptionSetDescription("generating"),
			progressbar.OptionShowCount(),
		)
	}

	gen := generator.New(baseTime)
	for i := int64(0); i < count; i++ {
		if err := gen.WriteLine(out, i); err != nil {
			fmt.Fprintf(stderr, "Error: write record %d: %v\n", i, err)
			out.Close()
			return 1
		}
		if bar != nil && (i+1)%progressStep == 0 {
			bar.Set64(i + 1)
		}
	}
	if bar != nil {
		bar.Finish()
		fmt.Fprintln(stderr)
	}

	if err := out.Close(); err != nil {
		fmt.Fprintf(stderr, "Error: close output: %v\n", err)
		return 1
	}
	if out.IsFile() {
		fmt.Fprintf(stderr, "Wrote %d lines (%s) to %s\n",
			count, humanize.Bytes(uint64(out.Bytes())), *output)
	}
	return 0
}
