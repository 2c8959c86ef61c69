package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/untoldecay/easyowl/internal/config"
	"github.com/untoldecay/easyowl/internal/download"
	"github.com/untoldecay/easyowl/internal/ui"
)

var (
	downloadDir      string
	downloadFilename string
	downloadForce    bool
)

type downloadResult struct {
	URL  string `json:"url" yaml:"url"`
	Path string `json:"path" yaml:"path"`
}

var downloadCmd = &cobra.Command{
	Use:     "download <url>",
	GroupID: "files",
	Short:   "Fetch an ontology file over HTTP",
	Long: `Download an ontology into the data directory (download.dir, default "data").

The file name comes from the last URL path segment unless --filename is
given. Concurrent downloads of the same file are serialised with a lock
file, and the destination is only replaced once the transfer succeeds.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(runDownload(os.Stdout, args[0]))
	},
}

func downloadOptions() download.Options {
	opts := download.Options{
		Dir:         downloadDir,
		Filename:    downloadFilename,
		Timeout:     config.GetDuration("download.timeout"),
		LockTimeout: config.GetDuration("download.lock-timeout"),
	}
	if opts.Dir == "" {
		opts.Dir = config.GetString("download.dir")
	}
	return opts
}

func runDownload(w io.Writer, rawURL string) error {
	opts := downloadOptions()

	if !downloadForce && outputFormat == formatText {
		name, err := download.Filename(rawURL, opts.Filename)
		if err != nil {
			return err
		}
		dir := opts.Dir
		if dir == "" {
			dir = download.DefaultDir
		}
		dest := filepath.Join(dir, name)
		if _, err := os.Stat(dest); err == nil {
			if !ui.PromptYesNo(fmt.Sprintf("%s exists. Overwrite?", dest), true) {
				return fmt.Errorf("not overwriting %s", dest)
			}
		}
	}

	path, err := download.Fetch(commandContext(), rawURL, opts)
	if err != nil {
		return err
	}

	res := downloadResult{URL: rawURL, Path: path}
	return writeOutput(w, res, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "%s Downloaded %s\n", ui.RenderPass(ui.Emoji("✓", "OK")), path)
		return err
	})
}

func init() {
	downloadCmd.Flags().StringVar(&downloadDir, "dir", "", "Target directory (default from download.dir)")
	downloadCmd.Flags().StringVar(&downloadFilename, "filename", "", "Local file name (default: last URL path segment)")
	downloadCmd.Flags().BoolVarP(&downloadForce, "force", "f", false, "Overwrite an existing file without asking")
	rootCmd.AddCommand(downloadCmd)
}
