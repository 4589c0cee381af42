package main

import (
	"bufio"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/docpipe/docmerge"
	"github.com/docpipe/docmerge/internal/office"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the merge-convert-count pipeline",
	Long: `Run executes the full pipeline: enumerate the input folder, convert
DOC/DOCX files to PDF, merge all PDFs in filename order, convert the merged
PDF back to DOCX, and count target words in the result.

Folder, output name and target words are prompted for interactively when
the corresponding flags are not given; the target-word prompt ends on a
blank line.`,
	RunE:          runPipeline,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	runCmd.Flags().String("input", "", "input folder containing DOC, DOCX and PDF files (prompted when omitted)")
	runCmd.Flags().String("output", "", "name of the final DOCX file (prompted when omitted)")
	runCmd.Flags().StringSlice("words", nil, "target words to count in the final document")
	runCmd.Flags().String("output-dir", "", "destination directory (default: your Documents folder)")
	runCmd.Flags().String("backend", "auto", "conversion backend: auto, soffice, docker, podman, or none")
	runCmd.Flags().String("image", "", "container image for the docker/podman backends")
	runCmd.Flags().Duration("timeout", 2*time.Minute, "per-file conversion timeout (0 disables)")
	runCmd.Flags().String("report", "", "also write an XLSX run report with this filename")
	runCmd.Flags().BoolP("verbose", "v", false, "enable diagnostic logging")

	must(viper.BindPFlag("output_dir", runCmd.Flags().Lookup("output-dir")))
	must(viper.BindPFlag("backend", runCmd.Flags().Lookup("backend")))
	must(viper.BindPFlag("image", runCmd.Flags().Lookup("image")))
	must(viper.BindPFlag("timeout", runCmd.Flags().Lookup("timeout")))

	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")
	words, _ := cmd.Flags().GetStringSlice("words")
	report, _ := cmd.Flags().GetString("report")
	verbose, _ := cmd.Flags().GetBool("verbose")

	stdin := bufio.NewReader(cmd.InOrStdin())
	stdout := cmd.OutOrStdout()

	interactive := input == "" || output == ""
	if interactive {
		printBanner(stdout)
	}
	var err error
	if input == "" {
		if input, err = promptLine(stdin, stdout, "Enter the path to the folder containing the files: "); err != nil {
			return err
		}
	}
	if output == "" {
		if output, err = promptLine(stdin, stdout, "Enter the name for the final output DOCX file (e.g. final_document.docx): "); err != nil {
			return err
		}
	}
	if interactive && !cmd.Flags().Changed("words") {
		if words, err = promptWords(stdin, stdout); err != nil {
			return err
		}
	}

	logger := zap.NewNop()
	if verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer logger.Sync() //nolint:errcheck
	}

	backend, err := selectBackend(cmd, viper.GetString("backend"), viper.GetString("image"))
	if err != nil {
		return err
	}
	if backend != nil {
		// Release the external handle on every exit path.
		defer backend.Close()
		logger.Info("conversion backend selected", zap.String("backend", backend.Name()))
	}

	opts := []docmerge.Option{
		docmerge.WithLogger(logger),
		docmerge.WithOutputDir(viper.GetString("output_dir")),
		docmerge.WithConvertTimeout(viper.GetDuration("timeout")),
	}
	if backend != nil {
		opts = append(opts, docmerge.WithConverter(backend))
	}
	if report != "" {
		opts = append(opts, docmerge.WithReport(report))
	}

	pipeline := docmerge.New(opts...)
	rep, runErr := pipeline.Run(cmd.Context(), docmerge.Job{
		InputDir:   input,
		OutputName: output,
		Words:      words,
	})

	if rep.Words != nil && rep.Words.Len() > 0 {
		fmt.Fprintln(stdout, "\nWord frequency results:")
		for _, w := range rep.Words.Words() {
			fmt.Fprintf(stdout, "  %q: %d occurrence(s)\n", w, rep.Words.Count(w))
		}
	}
	fmt.Fprintln(stdout, rep.Summary())

	return runErr
}

// selectBackend maps the backend name to a concrete converter. "none" runs
// the pipeline without one: PDFs still merge, DOC/DOCX files are skipped.
func selectBackend(cmd *cobra.Command, name, image string) (office.Backend, error) {
	ctx := cmd.Context()
	switch name {
	case "auto":
		return office.DetectWithImage(ctx, image)
	case "soffice":
		return office.NewSoffice()
	case "docker", "podman":
		return office.NewContainer(ctx, name, image)
	case "none":
		return nil, nil
	}
	return nil, fmt.Errorf("unknown backend %q (want auto, soffice, docker, podman, or none)", name)
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
