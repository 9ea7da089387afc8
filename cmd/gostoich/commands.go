/*
 * commands.go, part of gostoich.
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

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	stoich "github.com/rmera/gostoich"
	"github.com/rmera/gostoich/batch"
	"github.com/rmera/gostoich/history"
	"github.com/rmera/gostoich/server"
	"github.com/rmera/gostoich/stoichjson"
)

func printWarnings(w io.Writer, warnings []string) {
	for _, v := range warnings {
		fmt.Fprintf(w, "warning: %s\n", v)
	}
}

func newBalanceCmd(v *viper.Viper) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "balance <reaction>",
		Short: "Balance a chemical equation",
		Example: `  gostoich balance "KMnO4 + HCl -> KCl + MnCl2 + H2O + Cl2"
  gostoich balance C8H18 + O2 '=>' CO2 + H2O`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := loadOptions(v)
			if err != nil {
				return err
			}
			input := strings.Join(args, " ")
			R, err := stoich.ParseReaction(input, o)
			if err == nil {
				R, err = stoich.Balance(R, o)
			}
			if asJSON {
				if jerr := stoichjson.Send(cmd.OutOrStdout(), stoichjson.FromReaction(input, R, err)); jerr != nil {
					return jerr
				}
				return err
			}
			if err != nil {
				return err
			}
			printWarnings(cmd.ErrOrStderr(), R.Warnings)
			fmt.Fprintln(cmd.OutOrStdout(), R.Pretty())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

func newMassCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "mass <formula>...",
		Short: "Print molar masses",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := loadOptions(v)
			if err != nil {
				return err
			}
			for _, f := range args {
				f = stoich.Normalize(f)
				m, err := o.MolarMass(f)
				if err != nil && o.Strict {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.3f g/mol\t(%s)\n", f, m.Value, m.Source)
				if w := m.Warning(f); w != "" {
					printWarnings(cmd.ErrOrStderr(), []string{w})
				}
			}
			return nil
		},
	}
}

//parseMasses reads amounts given as Formula=grams.
func parseMasses(specs []string) ([]stoich.Entry, error) {
	ret := make([]stoich.Entry, 0, len(specs))
	for _, s := range specs {
		f, g, ok := strings.Cut(s, "=")
		f = strings.TrimSpace(f)
		if !ok || f == "" {
			return nil, fmt.Errorf("invalid amount %q, expected Formula=grams", s)
		}
		mass, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(g), "g")), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid mass in %q: %w", s, err)
		}
		ret = append(ret, stoich.Entry{Compound: f, Mass: mass})
	}
	return ret, nil
}

func printResult(w io.Writer, res *stoich.Result) {
	fmt.Fprintln(w, res.Equation)
	for _, s := range res.Steps {
		fmt.Fprintf(w, "  %s\n", s)
	}
	fmt.Fprintf(w, "Theoretical yield: %.2f g %s (%.3f mol)\n", res.TheoreticalYield, res.Target, res.TheoreticalMoles)
	if res.LimitingReagent != "" {
		fmt.Fprintf(w, "Limiting reagent: %s\n", res.LimitingReagent)
	}
	names := make([]string, 0, len(res.Excess))
	for k := range res.Excess {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		fmt.Fprintf(w, "Excess %s: %.3f mol\n", k, res.Excess[k])
	}
}

func newStoichCmd(v *viper.Viper) *cobra.Command {
	var masses []string
	var target string
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "stoich <reaction>",
		Short:   "Compute the theoretical yield of a reaction",
		Example: `  gostoich stoich "H2 + O2 -> H2O" --mass H2=4 --mass O2=32`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := loadOptions(v)
			if err != nil {
				return err
			}
			entries, err := parseMasses(masses)
			if err != nil {
				return err
			}
			R, res, err := stoich.Calculate(strings.Join(args, " "), entries, target, o)
			if err != nil {
				return err
			}
			if asJSON {
				if jerr := stoichjson.Send(cmd.OutOrStdout(), stoichjson.FromResult(R, res)); jerr != nil {
					return jerr
				}
				return nil
			}
			printWarnings(cmd.ErrOrStderr(), res.Warnings)
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&masses, "mass", "m", nil, "reactant amount as Formula=grams (repeatable)")
	cmd.Flags().StringVarP(&target, "target", "t", "", "product to compute the yield for (default: the first product)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

func newBatchCmd(v *viper.Viper) *cobra.Command {
	var out string
	var verbose bool
	cmd := &cobra.Command{
		Use:   "batch <input>",
		Short: "Balance a file with one reaction per line",
		Long: `Balance every reaction in <input> ("-" for the standard input) and write the
results as JSON lines. Files ending in .zst, .gz or .zz are (de)compressed.
The output can be a file or an s3://bucket/key URI.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := loadOptions(v)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			in, err := batch.Open(args[0])
			if err != nil {
				return err
			}
			defer in.Close()
			var putter batch.ObjectPutter
			if batch.IsS3URI(out) {
				client, err := batch.NewS3Client(ctx, batch.S3Config{
					Region:    v.GetString("s3.region"),
					Endpoint:  v.GetString("s3.endpoint"),
					PathStyle: v.GetBool("s3.path_style"),
				})
				if err != nil {
					return err
				}
				putter = client
			}
			sink, err := batch.CreateSink(ctx, out, putter)
			if err != nil {
				return err
			}
			sum, err := batch.Run(ctx, in, sink, &batch.Options{Cpus: v.GetInt("cpus"), Stoich: o, Verbose: verbose})
			if cerr := sink.Close(); err == nil {
				err = cerr
			}
			fmt.Fprintln(cmd.ErrOrStderr(), sum)
			return err
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file or s3://bucket/key")
	cmd.Flags().Int("cpus", 0, "number of workers (default: all CPUs)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every reaction that fails")
	_ = v.BindPFlag("cpus", cmd.Flags().Lookup("cpus"))
	return cmd
}

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := loadOptions(v)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			store, err := history.Open(ctx, v.GetString("history"))
			if err != nil {
				return err
			}
			defer store.Close()
			return server.ListenAndServe(ctx, v.GetString("addr"), server.New(o, store))
		},
	}
	cmd.Flags().String("addr", "", "address to listen on (default :$PORT, or :4000)")
	cmd.Flags().String("history", "", `where to keep the history: "memory", a SQLite file or a postgres:// URL`)
	_ = v.BindPFlag("addr", cmd.Flags().Lookup("addr"))
	_ = v.BindPFlag("history", cmd.Flags().Lookup("history"))
	return cmd
}
