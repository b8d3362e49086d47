package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var (
	injectName   string
	injectFormat string
)

var injectCmd = &cobra.Command{
	Use:   "inject [file]",
	Short: "Add ad-hoc content to the unified index",
	Long: `Adds content to the unified index without touching the catalogue:
no change tracking, no per-document index. Useful for transient
content such as a web page or a pasted note.

With a file argument the matching reader is used. Without one,
content is read from stdin; --name is then required and --format
selects the reader (default: txt).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInject,
}

func init() {
	injectCmd.Flags().StringVar(&injectName, "name", "", "source name for stdin content")
	injectCmd.Flags().StringVar(&injectFormat, "format", "txt", "format of stdin content (md, html, txt, ...)")
	rootCmd.AddCommand(injectCmd)
}

func runInject(cmd *cobra.Command, args []string) error {
	if services == nil || services.Injector == nil {
		return errors.New("injector not configured")
	}

	ctx := cmd.Context()

	if len(args) == 1 {
		path, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("resolving %s: %w", args[0], err)
		}
		if err := services.Injector.InjectFile(ctx, path); err != nil {
			return fmt.Errorf("inject failed: %w", err)
		}
		cmd.Printf("Injected %s into the unified index.\n", filepath.Base(path))
		return nil
	}

	if strings.TrimSpace(injectName) == "" {
		return errors.New("--name is required when reading from stdin")
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}

	if err := services.Injector.InjectBytes(ctx, data, injectName, injectFormat); err != nil {
		return fmt.Errorf("inject failed: %w", err)
	}
	cmd.Printf("Injected %s into the unified index.\n", injectName)
	return nil
}
