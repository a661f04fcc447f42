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
	"encoding/json"
	"fmt"
	"io"
	"runtime/debug"

	"github.com/ghodss/yaml"
	"github.com/kaleido-io/ledgerpay/internal/i18n"
	"github.com/spf13/cobra"
)

var shortened, output = false, "json"

// Set at link time by release builds
var BuildDate string
var BuildCommit string
var BuildVersionOverride string

type Info struct {
	Module  string `json:"Module,omitempty" yaml:"Module,omitempty"`
	Version string `json:"Version,omitempty" yaml:"Version,omitempty"`
	Commit  string `json:"Commit,omitempty" yaml:"Commit,omitempty"`
	Date    string `json:"Date,omitempty" yaml:"Date,omitempty"`
	License string `json:"License,omitempty" yaml:"License,omitempty"`
}

func setBuildInfo(info *Info, buildInfo *debug.BuildInfo, ok bool) {
	if !ok || buildInfo == nil {
		return
	}
	info.Module = buildInfo.Main.Path
	if info.Version == "" {
		info.Version = buildInfo.Main.Version
	}
}

func versionInfo() *Info {
	info := &Info{
		Date:    BuildDate,
		Commit:  BuildCommit,
		Version: BuildVersionOverride,
		License: "Apache-2.0",
	}
	// go install stamps the module version, release builds pass it explicitly
	buildInfo, ok := debug.ReadBuildInfo()
	setBuildInfo(info, buildInfo, ok)
	return info
}

func writeVersion(w io.Writer, info *Info, format string, short bool) error {
	if short {
		_, err := fmt.Fprintln(w, info.Version)
		return err
	}
	var b []byte
	var err error
	switch format {
	case "json":
		b, err = json.MarshalIndent(info, "", "  ")
	case "yaml":
		b, err = yaml.Marshal(info)
	default:
		err = i18n.NewError(context.Background(), i18n.MsgInvalidOutputOption, format)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Prints the version info",
	Long:  "Prints the version info of the ledgerpay binary",
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeVersion(cmd.OutOrStdout(), versionInfo(), output, shortened)
	},
}

func init() {
	versionCmd.Flags().BoolVarP(&shortened, "short", "s", false, "Prints only the version number")
	versionCmd.Flags().StringVarP(&output, "output", "o", "json", "output format (\"yaml\"|\"json\")")
	rootCmd.AddCommand(versionCmd)
}
