package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"mindlink/internal/config"
	"mindlink/internal/server"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Fatal(err)
	}
	cobra.CheckErr(newCmd(config.Load()).Execute())
}

func newCmd(cfg config.Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("MINDLINK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "mindlink",
		Short:         "A two-player picture matching game over websockets.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Port < 1 || cfg.Port > 65535 {
				return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", cfg.Port)
			}
			return serve(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.Bind, "bind", "b", cfg.Bind, "address to bind to (env: MINDLINK_BIND)")
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on (env: MINDLINK_PORT)")
	fs.DurationVar(&cfg.RoundDuration, "round-duration", cfg.RoundDuration, "time players have to submit a word each round (env: MINDLINK_ROUND_DURATION)")
	fs.DurationVar(&cfg.Intermission, "intermission", cfg.Intermission, "pause between rounds and before the final score (env: MINDLINK_INTERMISSION)")
	fs.IntVar(&cfg.DefaultRounds, "rounds", cfg.DefaultRounds, "rounds per game when the creator does not choose (env: MINDLINK_ROUNDS)")
	fs.IntVar(&cfg.MaxRounds, "max-rounds", cfg.MaxRounds, "upper bound on rounds per game (env: MINDLINK_MAX_ROUNDS)")
	fs.StringVar(&cfg.PromptURL, "prompt-url", cfg.PromptURL, "image source queried once per round (env: MINDLINK_PROMPT_URL)")
	fs.DurationVar(&cfg.PromptTimeout, "prompt-timeout", cfg.PromptTimeout, "timeout for each prompt fetch (env: MINDLINK_PROMPT_TIMEOUT)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})

	return cmd
}

func serve(ctx context.Context, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:        net.JoinHostPort(cfg.Bind, strconv.Itoa(cfg.Port)),
		Handler:     server.New(cfg).Handler(),
		IdleTimeout: 10 * time.Minute,
	}

	go func() {
		log.Printf("mindlink listening on http://%s/", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("serve error: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
