// Copyright 2026 Docpipe Authors
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

// Package main is the entry point for the docmerge CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the docmerge CLI.
var rootCmd = &cobra.Command{
	Use:   "docmerge",
	Short: "Merge office documents into one PDF, convert it to DOCX, and count words",
	Long: `docmerge batch-converts the DOC, DOCX and PDF files of a folder into a
single merged PDF, converts that PDF back into a DOCX, counts the frequency
of user-specified words in the final document, and writes a timestamped
audit log of all operations.

DOC/DOCX files are exported to PDF through LibreOffice, either a local
install or a container image; files already in PDF format pass through
unchanged. Files that cannot be converted are skipped and logged, never
aborting the run.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./docmerge.yaml or ~/.config/docmerge/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("docmerge")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "docmerge"))
		}
	}

	viper.SetEnvPrefix("DOCMERGE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
