/*
 * Copyright 2026 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package cli implements the godrac command-line tool: subcommand parsing,
// client construction, and table rendering for the management surface
// exposed by pkg/client.
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/carverauto/godrac/pkg/client"
	"github.com/carverauto/godrac/pkg/config"
	"github.com/carverauto/godrac/pkg/logger"
	"github.com/carverauto/godrac/pkg/version"
)

// GlobalFlags holds options shared by every subcommand. Values not set on
// the command line fall through to the config file and GODRAC_* environment
// variables.
type GlobalFlags struct {
	ConfigFile string
	Host       string
	Port       int
	Username   string
	Password   string
	Insecure   bool
	CAFile     string
	Timeout    time.Duration
	LogLevel   string
	Debug      bool
	NoWait     bool
	NoCache    bool
}

// command runs one subcommand against a connected client.
type command func(ctx context.Context, c *client.Client, args []string) error

func commands() map[string]command {
	return map[string]command{
		"power":     runPower,
		"boot":      runBoot,
		"bios":      runBIOS,
		"raid":      runRAID,
		"inventory": runInventory,
		"jobs":      runJobs,
		"lc":        runLC,
	}
}

// Run is the entry point for cmd/godrac. It parses global flags, resolves
// configuration, and dispatches the subcommand. The returned error is
// already user-presentable.
func Run(args []string) error {
	// A missing .env is the common case, not an error.
	_ = godotenv.Load()

	gf, rest, err := parseGlobalFlags(args)
	if err != nil {
		return err
	}

	if len(rest) == 0 {
		ShowHelp()
		return errNoCommand
	}

	cmd, rest := rest[0], rest[1:]

	switch cmd {
	case "help", "-h", "--help":
		ShowHelp()
		return nil
	case "version":
		fmt.Println("godrac " + version.GetFullVersion())
		return nil
	}

	handler, ok := commands()[cmd]
	if !ok {
		return fmt.Errorf("%w: %q", errUnknownCommand, cmd)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := buildClient(ctx, gf)
	if err != nil {
		return err
	}

	return handler(ctx, c, rest)
}

func parseGlobalFlags(args []string) (*GlobalFlags, []string, error) {
	gf := &GlobalFlags{}

	fs := flag.NewFlagSet("godrac", flag.ContinueOnError)
	fs.Usage = ShowHelp
	fs.StringVar(&gf.ConfigFile, "config", "", "path to JSON config file")
	fs.StringVar(&gf.Host, "host", "", "controller hostname or IP")
	fs.IntVar(&gf.Port, "port", 0, "controller HTTPS port")
	fs.StringVar(&gf.Username, "username", "", "controller username")
	fs.StringVar(&gf.Password, "password", "", "controller password (prompted when absent)")
	fs.BoolVar(&gf.Insecure, "insecure", false, "skip TLS certificate verification")
	fs.StringVar(&gf.CAFile, "ca-file", "", "PEM bundle pinning the controller CA")
	fs.DurationVar(&gf.Timeout, "timeout", 0, "per-request timeout")
	fs.StringVar(&gf.LogLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	fs.BoolVar(&gf.Debug, "debug", false, "shorthand for -log-level debug")
	fs.BoolVar(&gf.NoWait, "no-wait", false, "skip the Lifecycle Controller readiness gate")
	fs.BoolVar(&gf.NoCache, "no-cache", false, "disable the enumeration read cache")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return gf, fs.Args(), nil
}

// buildClient layers flag overrides on the loaded config, prompts for a
// password when none arrived by any path, and wires the client.
func buildClient(ctx context.Context, gf *GlobalFlags) (*client.Client, error) {
	cfg, err := config.Load(gf.ConfigFile)
	if err != nil {
		return nil, err
	}

	applyOverrides(&cfg, gf)

	if cfg.Password == "" {
		password, perr := PromptPassword()
		if perr != nil {
			return nil, perr
		}

		cfg.Password = password
	}

	level := gf.LogLevel
	if level == "" {
		level = "warn"
	}

	log, err := logger.New(ctx, &logger.Config{
		Level:  level,
		Debug:  gf.Debug,
		Output: "stderr",
	})
	if err != nil {
		return nil, err
	}

	return client.New(cfg, log)
}

func applyOverrides(cfg *config.Config, gf *GlobalFlags) {
	if gf.Host != "" {
		cfg.Host = gf.Host
	}

	if gf.Port != 0 {
		cfg.Port = gf.Port
	}

	if gf.Username != "" {
		cfg.Username = gf.Username
	}

	if gf.Password != "" {
		cfg.Password = gf.Password
	}

	if gf.Insecure {
		cfg.Insecure = true
	}

	if gf.CAFile != "" {
		cfg.CAFile = gf.CAFile
	}

	if gf.Timeout > 0 {
		cfg.Timeout = config.Duration(gf.Timeout)
	}

	if gf.NoWait {
		cfg.Readiness.Wait = false
	}

	if gf.NoCache {
		cfg.CacheTTL = 0
	}
}

// waitFlags are the shared flags of every command that can block on a job.
type waitFlags struct {
	Wait         bool
	PollInterval time.Duration
	Timeout      time.Duration
}

func (w *waitFlags) register(fs *flag.FlagSet) {
	fs.BoolVar(&w.Wait, "wait", false, "block until the created job reaches a terminal state")
	fs.DurationVar(&w.PollInterval, "poll-interval", 10*time.Second, "job poll interval with -wait")
	fs.DurationVar(&w.Timeout, "job-timeout", 30*time.Minute, "polling deadline with -wait")
}

// finishJob prints the created job id and, with -wait, polls it to a
// terminal state, failing when the job itself failed.
func finishJob(ctx context.Context, c *client.Client, jobID string, w *waitFlags) error {
	fmt.Println(jobID)

	if !w.Wait {
		return nil
	}

	job, err := c.WaitForJob(ctx, jobID, w.PollInterval, w.Timeout)
	if err != nil {
		return err
	}

	printJob(job)

	if !job.Status.Succeeded() {
		return fmt.Errorf("%w: %s: %s", errJobFailed, job.Status, job.Message)
	}

	return nil
}
