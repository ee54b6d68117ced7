package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/threatgrid/jqcore"
	"go.uber.org/zap"
)

var logStyle string

var runCmd = &cobra.Command{
	Use:   "run <name>",
	Short: "Run a named example filter over JSON values read from stdin",
	Long: `Run reads one JSON value per line from stdin, runs the named
example filter against each, and writes each JSON-encoded result to
stdout on its own line.

Available filters: ` + strings.Join(filterNames(), ", "),
	Args: cobra.ExactArgs(1),
	RunE: runFilter,
}

func init() {
	runCmd.Flags().StringVar(&logStyle, "log-style", "noop", "logging style: terminal, json, noop")
}

func filterNames() []string {
	names := make([]string, 0, len(namedFilters))
	for n := range namedFilters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func newLogger(style string) (*zap.Logger, error) {
	switch style {
	case "noop", "":
		return zap.NewNop(), nil
	case "json":
		return zap.NewProductionConfig().Build()
	case "terminal":
		return zap.NewDevelopmentConfig().Build()
	default:
		return nil, fmt.Errorf("invalid log style %q: must be one of terminal, json, noop", style)
	}
}

func runFilter(cmd *cobra.Command, args []string) error {
	name := args[0]
	build, ok := namedFilters[name]
	if !ok {
		return fmt.Errorf("unknown filter %q (available: %s)", name, strings.Join(filterNames(), ", "))
	}

	logger, err := newLogger(logStyle)
	if err != nil {
		return err
	}
	defer logger.Sync()

	runID := uuid.NewString()
	logger.Info("jqcore.run.start", zap.String("run", runID), zap.String("filter", name))

	vm, err := jqcore.Compile(build())
	if err != nil {
		return fmt.Errorf("compile %q: %w", name, err)
	}
	if logStyle != "noop" {
		vm.UseTracer(jqcore.NewZapTracer(logger))
	}

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var runErr error
		for result := range vm.Run([]byte(line), &runErr) {
			fmt.Fprintln(out, string(result))
		}
		if runErr != nil {
			logger.Error("jqcore.run.error", zap.String("run", runID), zap.Error(runErr))
			return runErr
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	logger.Info("jqcore.run.done", zap.String("run", runID))
	return nil
}
