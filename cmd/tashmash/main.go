package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/ch8101040/tashmash/internal/config"
	"github.com/ch8101040/tashmash/internal/output"
	"github.com/ch8101040/tashmash/internal/sentryutil"
	"github.com/ch8101040/tashmash/internal/server"
	"github.com/ch8101040/tashmash/internal/validation"
	"github.com/ch8101040/tashmash/internal/wizard"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "tashmash",
	Short: "Family support benefit eligibility calculator",
	Long:  "Calculates monthly family-support benefit eligibility and amounts from income, savings, and asset details.",
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [application-file]",
	Short: "Calculate eligibility for a saved application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rulesFile, _ := cmd.Flags().GetString("rules")
		format, _ := cmd.Flags().GetString("format")
		outPath, _ := cmd.Flags().GetString("output")

		rules, err := config.LoadRules(rulesFile)
		if err != nil {
			return err
		}
		st, err := config.LoadApplication(args[0])
		if err != nil {
			return err
		}

		result, errs := wizard.ComputeFinal(st, rules)
		if !errs.Empty() {
			fmt.Fprintln(os.Stderr, "The application is incomplete or invalid:")
			for _, field := range errs.Fields() {
				fmt.Fprintf(os.Stderr, "  %s: %s\n", field, errs[field].Message)
			}
			os.Exit(1)
		}

		formatter, err := output.NewFormatter(format)
		if err != nil {
			return err
		}
		data, err := formatter.Format(result)
		if err != nil {
			return err
		}
		if outPath != "" {
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outPath, err)
			}
			fmt.Printf("Report written to %s\n", outPath)
			return nil
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [application-file]",
	Short: "Validate one wizard step of a saved application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rulesFile, _ := cmd.Flags().GetString("rules")
		step, _ := cmd.Flags().GetInt("step")

		rules, err := config.LoadRules(rulesFile)
		if err != nil {
			return err
		}
		st, err := config.LoadApplication(args[0])
		if err != nil {
			return err
		}

		errs := validation.ValidateStep(step, st, rules)
		if errs.Empty() {
			fmt.Printf("Step %d is valid.\n", step)
			return nil
		}
		for _, field := range errs.Fields() {
			fmt.Printf("%s: %s\n", field, errs[field].Message)
		}
		os.Exit(1)
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the eligibility engine over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadServer()
		sentryutil.Init(cfg.SentryDSN, cfg.SentryEnvironment, cfg.SentryRelease)
		defer sentryutil.Flush()

		rulesFile, _ := cmd.Flags().GetString("rules")
		if rulesFile == "" {
			rulesFile = cfg.RulesPath
		}
		rules, err := config.LoadRules(rulesFile)
		if err != nil {
			return err
		}
		return server.New(rules, cfg).ListenAndServe()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tashmash %s (commit %s, built %s)\n", version, commit, date)
		if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
			fmt.Println(bi.Main.Path)
		}
	},
}

func init() {
	calculateCmd.Flags().String("rules", "", "YAML file overriding the built-in rule figures")
	calculateCmd.Flags().String("format", "console", "Output format: console, json, or pdf")
	calculateCmd.Flags().String("output", "", "Write the report to a file instead of stdout")

	validateCmd.Flags().String("rules", "", "YAML file overriding the built-in rule figures")
	validateCmd.Flags().Int("step", 2, "Wizard step to validate (1-4)")

	serveCmd.Flags().String("rules", "", "YAML file overriding the built-in rule figures")

	rootCmd.AddCommand(calculateCmd, validateCmd, serveCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
