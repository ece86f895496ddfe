package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Mechse/turbomigrate/internal/core/target"
	"github.com/Mechse/turbomigrate/internal/platform/cli"
	"github.com/Mechse/turbomigrate/internal/ui"
	"github.com/Mechse/turbomigrate/internal/ui/prompt"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	console := ui.NewConsole(os.Stderr)
	if err := newRootCmd(console).ExecuteContext(ctx); err != nil {
		if errors.Is(err, prompt.ErrCancelled) || ctx.Err() != nil {
			console.Noticef("Cancelled.")
		} else {
			console.Errorf("%v", err)
		}
		os.Exit(1)
	}
}

func newRootCmd(console *ui.Console) *cobra.Command {
	var (
		local         bool
		remote        bool
		dir           string
		environment   string
		generate      bool
		envFile       string
		vaultPassword string
		verbose       bool
	)

	cmd := &cobra.Command{
		Use:   "turbomigrate",
		Short: "Apply drizzle migrations to Cloudflare D1 databases",
		Long: `turbomigrate reads the wrangler and drizzle-kit configs of the current
project, resolves which D1 database to target, and applies a generated
migration with wrangler d1 execute. Anything the configs and flags do not
pin down is asked interactively; fully determined runs never prompt.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := logrus.New()
			logger.SetOutput(os.Stderr)
			logger.SetLevel(logrus.WarnLevel)
			if verbose {
				logger.SetLevel(logrus.DebugLevel)
			}
			logE := logrus.NewEntry(logger).WithField("version", version)

			var mode target.Mode
			switch {
			case local:
				mode = target.ModeLocal
			case remote:
				mode = target.ModeRemote
			}

			cfg := cli.RunConfig{
				Dir:           dir,
				Mode:          mode,
				Environment:   environment,
				Generate:      generate,
				EnvFile:       envFile,
				VaultPassword: vaultPassword,
				Interactive: term.IsTerminal(int(os.Stdin.Fd())) &&
					term.IsTerminal(int(os.Stdout.Fd())),
			}

			return cli.NewApp(cfg, console, logE).Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVarP(&local, "local", "l", false, "apply to the local development database")
	cmd.Flags().BoolVarP(&remote, "remote", "r", false, "apply to the deployed database")
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "project root containing the wrangler and drizzle configs")
	cmd.Flags().StringVar(&environment, "env", "", "wrangler environment to target")
	cmd.Flags().BoolVarP(&generate, "generate", "g", false, "run drizzle-kit generate before applying")
	cmd.Flags().StringVar(&envFile, "env-file", "", "env file to load first (.vault files are decrypted)")
	cmd.Flags().StringVar(&vaultPassword, "vault-password", "", "password for a vault-encrypted --env-file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	cmd.MarkFlagsMutuallyExclusive("local", "remote")

	return cmd
}
