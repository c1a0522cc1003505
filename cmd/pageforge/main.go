// pageforge turns a free-text business brief into a deployed landing page.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"pageforge/pkg/brief"
	"pageforge/pkg/deploy"
	"pageforge/pkg/designtokens"
	"pageforge/pkg/generate"
	"pageforge/pkg/pipeline"
	"pageforge/pkg/progress"
	"pageforge/pkg/research"
	"pageforge/pkg/settings"
	"pageforge/pkg/sitegen"
	"pageforge/pkg/textgen"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:           "pageforge",
		Short:         "Generate and deploy a landing page from a business brief",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd(), newCheckCmd(), newVersionCmd())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var (
		briefFile string
		palette   string
		target    string
		user      string
	)
	cmd := &cobra.Command{
		Use:   "run [brief text]",
		Short: "Run the full pipeline for one brief",
		Long: `Run the full pipeline: extract business details from the brief,
research the industry, write a plan and design system, generate the
site, and deploy it. Prints the live URL on success.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			briefText, err := readBrief(args, briefFile)
			if err != nil {
				return err
			}

			s, existed := settings.LoadWithFallback()
			if !existed && !s.HasGenerationProvider() {
				settings.PrintSetupInstructions()
				return fmt.Errorf("no configuration found")
			}
			if target != "" {
				s.DeployTarget = target
			}
			if err := s.Validate(); err != nil {
				return err
			}

			log, err := newLogger()
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			display := progress.NewDisplay(os.Stdout)
			display.Header("", "")
			ctrl, err := buildController(s, palette, display, log)
			if err != nil {
				return err
			}
			sess, err := ctrl.Run(ctx, user, briefText)
			if err != nil {
				return err
			}
			if sess.Deploy != nil {
				fmt.Println(sess.Deploy.URL)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&briefFile, "file", "f", "", "read the brief from a file instead of arguments")
	cmd.Flags().StringVar(&palette, "palette", designtokens.DefaultPalette,
		fmt.Sprintf("color palette (%s)", strings.Join(designtokens.Names(), ", ")))
	cmd.Flags().StringVar(&target, "target", "", "deploy target: pages or sandbox (overrides settings)")
	cmd.Flags().StringVar(&user, "user", "cli", "session key; concurrent runs for one key replace each other")
	return cmd
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify configuration and credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, existed := settings.LoadWithFallback()
			if !existed {
				settings.PrintSetupInstructions()
			}
			fmt.Printf("config file:        %s (found: %v)\n", settings.GetConfigPath(), existed)
			fmt.Printf("deploy target:      %s\n", s.DeployTarget)
			fmt.Printf("generation keys:    %v\n", s.HasGenerationProvider())
			fmt.Printf("deploy credentials: %v\n", s.HasDeployCredentials())
			fmt.Printf("usable candidates:  %d\n", len(s.UsableCandidates(s.Candidates)))
			fmt.Printf("runs directory:     %s\n", s.RunsDir)
			if err := s.Validate(); err != nil {
				return err
			}
			fmt.Println("ok")
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("pageforge %s\n", version)
		},
	}
}

func readBrief(args []string, file string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read brief file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return "", fmt.Errorf("no brief given: pass it as arguments or with --file")
	}
	return text, nil
}

// buildController wires the full pipeline from settings.
func buildController(s *settings.Settings, palette string, display *progress.Display, log *zap.Logger) (*pipeline.Controller, error) {
	client, err := textgen.NewClient(s, log)
	if err != nil {
		return nil, err
	}

	extractor := brief.NewExtractor(client, log)
	researcher := research.NewResearcher(
		research.NewSearcher(log),
		research.NewScraper(s.Limits.WebsiteContentCap, log),
		s.Limits.FindingCap, s.Limits.ReputationCap, log)
	writer := generate.NewWriter(client, s.Limits.WebsiteContentCap, log)
	builder := sitegen.NewBuilder(client, nil, palette, s.Limits.RepairMinRatio, log)

	var deployer deploy.Deployer
	if s.DeployTarget == settings.TargetSandbox {
		deployer = deploy.NewSandboxDeployer(log)
	} else {
		deployer = deploy.NewPagesDeployer(s.Credentials.CFAPIToken, s.Credentials.CFAccountID, log)
	}
	verifier := deploy.NewVerifier(s.Limits.VerifyAttempts,
		time.Duration(s.Limits.VerifyDelaySec)*time.Second, log)

	return pipeline.NewController(extractor, researcher, writer, builder, deployer,
		s.Limits, s.RunsDir, log,
		pipeline.WithNotifier(display),
		pipeline.WithVerifier(verifier)), nil
}

// newLogger builds a console logger at the level named by
// PAGEFORGE_LOG_LEVEL, defaulting to warn so progress output stays clean.
func newLogger() (*zap.Logger, error) {
	level := zapcore.WarnLevel
	if raw := settings.GetEnvLogLevel(); raw != "" {
		parsed, err := zapcore.ParseLevel(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid PAGEFORGE_LOG_LEVEL %q: %w", raw, err)
		}
		level = parsed
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}
