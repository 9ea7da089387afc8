/*
 * main.go, part of gostoich.
 *
 *
 * Copyright 2026 Raul Mera <rauldotmeraatusachdotcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 * gostoich is developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

//gostoich balances chemical equations and computes theoretical yields, from the
//command line, from files with one reaction per line, or as an HTTP service.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	stoich "github.com/rmera/gostoich"
)

const defaultPort = "4000"

func main() {
	//a missing .env file is fine.
	_ = godotenv.Load()
	log.SetPrefix("gostoich: ")
	log.SetFlags(0)
	if err := newRootCmd(viper.New()).Execute(); err != nil {
		os.Exit(1)
	}
}

//newRootCmd builds the command tree. All the settings are read through v, so flags,
//GOSTOICH_* environment variables and the configuration file can set any of them.
func newRootCmd(v *viper.Viper) *cobra.Command {
	root := &cobra.Command{
		Use:          "gostoich",
		Short:        "Balance chemical equations and compute theoretical yields",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v)
		},
	}
	root.PersistentFlags().Bool("strict", false, "treat warnings (unknown masses, missing arrows, unknown targets) as errors")
	root.PersistentFlags().String("compounds", "", "YAML file with additional compounds")
	root.PersistentFlags().String("config", "", "configuration file (default: ./gostoich.yaml, if present)")
	_ = v.BindPFlag("strict", root.PersistentFlags().Lookup("strict"))
	_ = v.BindPFlag("compounds", root.PersistentFlags().Lookup("compounds"))
	_ = v.BindPFlag("config", root.PersistentFlags().Lookup("config"))

	root.AddCommand(newBalanceCmd(v), newMassCmd(v), newStoichCmd(v), newBatchCmd(v), newServeCmd(v))
	return root
}

//initConfig sets the defaults, the environment bindings and reads the configuration file.
func initConfig(v *viper.Viper) error {
	v.SetEnvPrefix("GOSTOICH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	v.SetDefault("history", "memory")
	v.SetDefault("cpus", 0)
	v.SetDefault("s3.region", "us-east-1")
	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}
	v.SetDefault("addr", ":"+port)

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading configuration: %w", err)
		}
		return nil
	}
	v.SetConfigName("gostoich")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("reading configuration: %w", err)
		}
	}
	return nil
}

//loadOptions builds the stoich options from the configuration.
func loadOptions(v *viper.Viper) (*stoich.Options, error) {
	o := stoich.DefaultOptions()
	o.Strict = v.GetBool("strict")
	if file := v.GetString("compounds"); file != "" {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		extra, err := stoich.LoadCompounds(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		o.Compounds = o.Compounds.Merge(extra)
	}
	return o, nil
}
