package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/cuemby/skipstore/pkg/log"
	"github.com/cuemby/skipstore/pkg/metrics"
	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "skipctl",
	Short: "skipctl drives a skipstore engine and its Raft log adaptor",
	Long: `skipctl is an operator-facing CLI over an in-process skipstore engine.

It exercises the key/value engine directly (kv: put, get, delete, scan) and
the Raft Log Adaptor (raftlog append, fetch, gc), and can stand up a
single-node hashicorp/raft cluster backed by the adaptor (demo-raft). State
lives only in this process: skipctl is a driver and inspection tool, not a
persistence-facing service.`,
	Version: Version,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("skipctl version %s\ncommit: %s\n", Version, Commit))

	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().String("metrics-addr", "", "If set, serve Prometheus metrics at this address (e.g. 127.0.0.1:9090)")

	cobra.OnInitialize(initLogging, maybeServeMetrics)

	rootCmd.AddCommand(kvCmd)
	rootCmd.AddCommand(raftLogCmd)
	rootCmd.AddCommand(demoRaftCmd)
}

func initLogging() {
	level, _ := rootCmd.PersistentFlags().GetString("log-level")
	jsonOut, _ := rootCmd.PersistentFlags().GetBool("log-json")
	log.Init(log.Config{Level: log.Level(level), JSONOutput: jsonOut})
}

func maybeServeMetrics() {
	addr, _ := rootCmd.PersistentFlags().GetString("metrics-addr")
	if addr == "" {
		return
	}
	metrics.SetVersion(Version)
	metrics.RegisterComponent("engine", true, "ready")

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	mux.Handle("/health", metrics.HealthHandler())
	mux.Handle("/ready", metrics.ReadyHandler())
	mux.Handle("/live", metrics.LivenessHandler())
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Logger.Error().Err(err).Str("addr", addr).Msg("metrics server exited")
		}
	}()
	log.Logger.Info().Str("addr", addr).Msg("serving metrics")
}
