package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopower/domain/power"
	"gopower/internal"
	"gopower/internal/analysis"
	"gopower/internal/config"
	apperrors "gopower/internal/errors"
	"gopower/internal/report"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// .env is optional; environment wins when both are present.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		internal.DefaultLogger.Error("%s: %v", apperrors.GetCode(err), err)
		os.Exit(1)
	}
	logger := internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel))

	rootCmd := &cobra.Command{
		Use:   "gopower",
		Short: "Sample-size calculator for common hypothesis-test families",
		Long: `gopower computes minimum sample sizes from closed-form power-analysis
formulas for two-sample and paired t-tests, one-way ANOVA,
proportion/chi-square tests and correlation tests, including a fixed
20% dropout adjustment.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.AddCommand(
		newCalculateCmd(cfg, logger),
		newCurveCmd(cfg, logger),
		newReportCmd(cfg, logger),
	)

	if err := rootCmd.Execute(); err != nil {
		logger.Error("%s: %v", apperrors.GetCode(err), err)
		os.Exit(1)
	}
}

// paramFlags wires the shared parameter flags onto a command and
// returns the bound Params, pre-filled from configuration defaults.
func paramFlags(cmd *cobra.Command, cfg *config.Config) *power.Params {
	params := &power.Params{
		TestType: cfg.Defaults.TestType,
		Power:    cfg.Defaults.Power,
		Alpha:    cfg.Defaults.Alpha,
		Groups:   cfg.Defaults.Groups,
	}
	cmd.Flags().StringVar(&params.TestType, "test", params.TestType, "test family (e.g. \"two-sample t-test\", \"paired t-test\", \"one-way ANOVA\", \"proportion test\", \"correlation test\")")
	cmd.Flags().Float64Var(&params.EffectSize, "effect-size", 0, "expected effect size (d, f, proportion difference or r depending on family)")
	cmd.Flags().Float64Var(&params.Power, "power", params.Power, "target statistical power (0-1)")
	cmd.Flags().Float64Var(&params.Alpha, "alpha", params.Alpha, "significance level (0-1)")
	cmd.Flags().IntVar(&params.Groups, "groups", params.Groups, "number of groups")
	return params
}

func newCalculateCmd(cfg *config.Config, logger *internal.Logger) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Compute the minimum sample size for one scenario",
	}
	params := paramFlags(cmd, cfg)
	_ = cmd.MarkFlagRequired("effect-size")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the result as JSON")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if err := params.Validate(); err != nil {
			return apperrors.ValidationError(err.Error())
		}
		result := power.Calculate(*params)
		logger.Debug("calculated %s: per-group=%v total=%v adjusted=%v",
			result.Family, result.SampleSize, result.TotalSampleSize, result.AdjustedSampleSize)

		if asJSON {
			return printJSON(cmd, result)
		}
		printResult(cmd, *params, result)
		return nil
	}
	return cmd
}

func newCurveCmd(cfg *config.Config, logger *internal.Logger) *cobra.Command {
	var (
		asJSON bool
		from   float64
		to     float64
		step   float64
	)

	cmd := &cobra.Command{
		Use:   "curve",
		Short: "Sweep sample sizes across an effect-size grid",
	}
	params := paramFlags(cmd, cfg)
	// The sweep supplies its own effect sizes.
	_ = cmd.Flags().MarkHidden("effect-size")
	cmd.Flags().Float64Var(&from, "from", 0.2, "smallest effect size on the grid")
	cmd.Flags().Float64Var(&to, "to", 0.8, "largest effect size on the grid")
	cmd.Flags().Float64Var(&step, "step", 0.1, "grid step")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the curve as JSON")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		probe := *params
		probe.EffectSize = from
		if err := probe.Validate(); err != nil {
			return apperrors.ValidationError(err.Error())
		}

		points := analysis.Sweep(*params, analysis.Grid(from, to, step))
		summary := analysis.Summarize(points)
		logger.Debug("swept %d scenarios (%d finite)", summary.Points, summary.FinitePoints)
		if summary.FinitePoints < summary.Points {
			logger.Warn("%d of %d scenarios produced non-finite sizes and are excluded from the summary",
				summary.Points-summary.FinitePoints, summary.Points)
		}

		if asJSON {
			return printJSON(cmd, struct {
				Points  []analysis.CurvePoint `json:"points"`
				Summary analysis.CurveSummary `json:"summary"`
			}{points, summary})
		}

		cmd.Printf("%-12s %-10s %-10s %-10s %s\n", "effect", "per-group", "total", "adjusted", "achieved power")
		for _, pt := range points {
			cmd.Printf("%-12.3g %-10.4g %-10.4g %-10.4g %.3f\n",
				pt.EffectSize, pt.SampleSize, pt.TotalSampleSize, pt.AdjustedSampleSize, pt.AchievedPower)
		}
		cmd.Printf("\nadjusted sizes: min %.4g, median %.4g, mean %.1f, max %.4g (%d/%d finite)\n",
			summary.MinAdjusted, summary.MedianAdjusted, summary.MeanAdjusted, summary.MaxAdjusted,
			summary.FinitePoints, summary.Points)
		return nil
	}
	return cmd
}

func newReportCmd(cfg *config.Config, logger *internal.Logger) *cobra.Command {
	var (
		out       string
		withCurve bool
		from      float64
		to        float64
		step      float64
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write a calculation report (.md, .html or .xlsx)",
	}
	params := paramFlags(cmd, cfg)
	_ = cmd.MarkFlagRequired("effect-size")
	cmd.Flags().StringVar(&out, "out", "sample-size.md", "output file; extension selects the format")
	cmd.Flags().BoolVar(&withCurve, "with-curve", false, "include an effect-size sweep in the report")
	cmd.Flags().Float64Var(&from, "from", 0.2, "smallest effect size on the curve")
	cmd.Flags().Float64Var(&to, "to", 0.8, "largest effect size on the curve")
	cmd.Flags().Float64Var(&step, "step", 0.1, "curve grid step")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if err := params.Validate(); err != nil {
			return apperrors.ValidationError(err.Error())
		}

		r := report.New(*params, power.Calculate(*params))
		if withCurve {
			r.WithCurve(analysis.Sweep(*params, analysis.Grid(from, to, step)))
		}

		path := out
		if !filepath.IsAbs(path) {
			path = filepath.Join(cfg.OutputDir, path)
		}
		if err := writeReport(r, path); err != nil {
			return err
		}
		logger.Info("report %s written to %s", r.ID, path)
		cmd.Println(path)
		return nil
	}
	return cmd
}

func writeReport(r *report.Report, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return r.WriteExcel(path)
	case ".html":
		return writeFile(path, r.HTML())
	case ".md", "":
		return writeFile(path, []byte(r.Markdown()))
	default:
		return apperrors.InvalidInput(fmt.Sprintf("unsupported report format %q (use .md, .html or .xlsx)", filepath.Ext(path)))
	}
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return apperrors.ReportError(fmt.Sprintf("failed to write %s", path), err)
	}
	return nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return apperrors.Wrap(err, "failed to encode JSON")
	}
	cmd.Println(string(data))
	return nil
}

func printResult(cmd *cobra.Command, params power.Params, result power.Result) {
	cmd.Printf("Test family:        %s\n", params.TestType)
	cmd.Printf("Formula:            %s\n", result.Formula)
	cmd.Printf("z_α/2 = %.4g, z_β = %.4g\n\n", result.ZAlpha, result.ZBeta)
	cmd.Printf("Per-group sample size:   %.4g\n", result.SampleSize)
	cmd.Printf("Total sample size:       %.4g\n", result.TotalSampleSize)
	cmd.Printf("Adjusted (20%% dropout):  %.4g\n", result.AdjustedSampleSize)
	if result.FCritical != 0 {
		cmd.Printf("F-critical (diagnostic): %.2f\n", result.FCritical)
	}
	cmd.Println("\nAssumptions:")
	for i, assumption := range result.Assumptions {
		cmd.Printf("  %d. %s\n", i+1, assumption)
	}
}
