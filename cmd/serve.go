package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inference-sim/schedsim/api"
	"github.com/inference-sim/schedsim/sim"
)

var serveConfigFile string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the scheduling engine over HTTP",
	Long: `Serve the scheduling engine over HTTP under /api/v1.

Configuration is read from --config (or ./schedsim.yaml when present), then from
SCHEDSIM_* environment variables, then from flags. Keys: port, policies (policy
bundle path), max_events, round_robin.quantum, mlfq.quanta, mlfq.boost_interval.`,
	Run: func(cmd *cobra.Command, args []string) {
		v := viper.New()
		for key, flag := range map[string]string{"port": "port", "policies": "policies", "max_events": "max-events"} {
			if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
				logrus.Fatalf("Binding flag --%s: %v", flag, err)
			}
		}
		cfg, err := loadServerConfig(v, serveConfigFile)
		if err != nil {
			logrus.Fatalf("Invalid server configuration: %v", err)
		}

		app := api.NewApp(api.NewSchedulerHandlerImpl(cfg))
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		go func() {
			<-ctx.Done()
			logrus.Info("Shutting down")
			_ = app.Shutdown()
		}()

		logrus.Infof("Listening on :%d", cfg.Port)
		if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
			logrus.Fatalf("Server stopped: %v", err)
		}
	},
}

// loadServerConfig resolves the server configuration from v.
// A missing default config file is not an error; a missing explicit one is.
func loadServerConfig(v *viper.Viper, configFile string) (*api.Config, error) {
	v.SetDefault("port", 9095)
	v.SetDefault("max_events", 0)
	v.SetDefault("policies", "")
	v.SetEnvPrefix("SCHEDSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("schedsim")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		} else {
			logrus.Infof("Using config file %s", v.ConfigFileUsed())
		}
	}

	bundle, err := loadBundle(v.GetString("policies"))
	if err != nil {
		return nil, err
	}
	if v.IsSet("round_robin.quantum") {
		q := v.GetInt64("round_robin.quantum")
		bundle.RoundRobin.Quantum = &q
	}
	if v.IsSet("mlfq.quanta") {
		quanta, err := configQuanta(v)
		if err != nil {
			return nil, err
		}
		bundle.MLFQ.Quanta = quanta
	}
	if v.IsSet("mlfq.boost_interval") {
		b := v.GetInt64("mlfq.boost_interval")
		bundle.MLFQ.BoostInterval = &b
	}
	if err := bundle.Validate(); err != nil {
		return nil, err
	}

	cfg := &api.Config{
		Port:      v.GetInt("port"),
		Bundle:    bundle,
		MaxEvents: v.GetInt("max_events"),
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port must be in 1..65535, got %d", cfg.Port)
	}
	if cfg.MaxEvents < 0 {
		return nil, fmt.Errorf("max_events must be non-negative, got %d", cfg.MaxEvents)
	}
	logrus.Debugf("server config: port=%d max_events=%d policies=%v", cfg.Port, cfg.MaxEvents, bundle.Policies)
	return cfg, nil
}

// configQuanta reads mlfq.quanta either as a YAML list or, from the
// environment, as a comma-separated string like "2,4,8". An empty list is an error.
func configQuanta(v *viper.Viper) ([]int64, error) {
	var quanta []int64
	if raw, ok := v.Get("mlfq.quanta").(string); ok {
		parsed, err := sim.ParseQuanta(raw)
		if err != nil {
			return nil, fmt.Errorf("mlfq.quanta: %w", err)
		}
		quanta = parsed
	} else {
		ints, err := cast.ToIntSliceE(v.Get("mlfq.quanta"))
		if err != nil {
			return nil, fmt.Errorf("mlfq.quanta: %w", err)
		}
		for _, q := range ints {
			quanta = append(quanta, int64(q))
		}
	}
	if len(quanta) == 0 {
		return nil, fmt.Errorf("mlfq.quanta: %w: empty list", sim.ErrConfigMismatch)
	}
	return quanta, nil
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigFile, "config", "", "Server config file (YAML)")
	serveCmd.Flags().Int("port", 9095, "Listen port")
	serveCmd.Flags().String("policies", "", "Policy bundle YAML used for defaults and /compare")
	serveCmd.Flags().Int("max-events", 0, "Maximum number of timeline events per run (0 = unbounded)")
	rootCmd.AddCommand(serveCmd)
}
