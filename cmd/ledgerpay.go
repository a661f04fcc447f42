// Copyright © 2021 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof" // serves /debug/pprof on the debug port
	"os"
	"os/signal"
	"syscall"

	"github.com/ghodss/yaml"
	"github.com/kaleido-io/ledgerpay/internal/apiserver"
	"github.com/kaleido-io/ledgerpay/internal/config"
	"github.com/kaleido-io/ledgerpay/internal/i18n"
	"github.com/kaleido-io/ledgerpay/internal/log"
	"github.com/kaleido-io/ledgerpay/internal/orchestrator"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var sigs = make(chan os.Signal, 1)

var rootCmd = &cobra.Command{
	Use:   "ledgerpay",
	Short: "ledgerpay reconciles purchase orders against transfers on a public ledger",
	Long:  ``,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

var cfgFile string

var showConfigCommand = &cobra.Command{
	Use:     "showconfig",
	Aliases: []string{"showconf"},
	Short:   "List out the configuration options",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := readConfig(); err != nil {
			return err
		}
		getOrchestrator()
		settings := make(map[string]interface{})
		for _, k := range config.GetKnownKeys() {
			if v := config.Get(config.RootKey(k)); v != nil {
				settings[k] = v
			}
		}
		b, err := yaml.Marshal(settings)
		if err != nil {
			return err
		}
		fmt.Print(string(b))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "f", "", "config file")
	rootCmd.AddCommand(showConfigCommand)
}

var _utOrchestrator orchestrator.Orchestrator

func getOrchestrator() orchestrator.Orchestrator {
	if _utOrchestrator != nil {
		return _utOrchestrator
	}
	return orchestrator.NewOrchestrator()
}

// Execute is called by the main method of the package
func Execute() error {
	return rootCmd.Execute()
}

func readConfig() error {
	if err := config.ReadConfig(cfgFile); err != nil {
		return i18n.WrapError(context.Background(), err, i18n.MsgConfigFailed, err)
	}
	return nil
}

func run() error {

	// Read the configuration first of all
	err := readConfig()

	// Setup logging after reading config (even if failed), to output header correctly
	ctx, cancelCtx := context.WithCancel(context.Background())
	defer cancelCtx()
	ctx = log.WithLogger(ctx, logrus.WithField("pid", os.Getpid()))
	config.SetupLogging(ctx)
	log.L(ctx).Infof("ledgerpay")
	log.L(ctx).Infof("© Copyright 2021 Kaleido, Inc.")

	// Deferred error return from reading config
	if err != nil {
		return err
	}

	debugPort := config.GetInt(config.DebugPort)
	if debugPort > 0 {
		go func() {
			log.L(ctx).Debugf("Debug HTTP endpoint listening on localhost:%d: %s", debugPort, http.ListenAndServe(fmt.Sprintf("localhost:%d", debugPort), nil))
		}()
	}

	// Setup signal handling to cancel the context, which shuts down the API Server
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	o := getOrchestrator()
	if err = o.Init(ctx); err != nil {
		return err
	}
	if err = o.Start(); err != nil {
		return err
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- apiserver.NewAPIServer().Serve(ctx, o)
	}()

	select {
	case sig := <-sigs:
		log.L(ctx).Infof("Shutting down due to %s", sig.String())
		cancelCtx()
		err = <-errChan
	case err = <-errChan:
		cancelCtx()
	}
	o.WaitStop()
	return err
}
