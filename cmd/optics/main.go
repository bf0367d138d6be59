// Copyright 2024 The Optics Authors
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

// Command optics is a small driver around the select/transform
// evaluators: it reads a YAML (or JSON, a subset of YAML) document from
// a file or stdin, evaluates a path against it, and prints the result.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/opticpath/optics/optics"
)

func main() {
	os.Exit(Main())
}

// Main runs the optics command line and returns its exit code. It is
// exported so cmd/optics's testscript harness can run the command
// in-process, the way cmd/cue's script tests run Main under
// testscript.RunMain.
func Main() int {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "optics: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "optics",
		Short:         "evaluate optics paths against structured data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("file", "f", "", "input file (defaults to stdin)")
	root.PersistentFlags().Bool("trace", false, "write a trace of the evaluation to stderr")

	root.AddCommand(newSelectCmd())
	root.AddCommand(newTransformCmd())
	return root
}

func newSelectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select <path>",
		Short: "select the focus of a path against the input document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, opts, err := loadArgs(cmd)
			if err != nil {
				return err
			}
			out, err := optics.Select(data, args[0], opts...)
			if err != nil {
				return err
			}
			return printValue(cmd, out)
		},
	}
	return cmd
}

func newTransformCmd() *cobra.Command {
	var setTo string
	cmd := &cobra.Command{
		Use:   "transform <path>",
		Short: "replace the focus of a path with a literal value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, opts, err := loadArgs(cmd)
			if err != nil {
				return err
			}
			var repl interface{}
			if err := yaml.Unmarshal([]byte(setTo), &repl); err != nil {
				return fmt.Errorf("--set value: %w", err)
			}
			replVal, err := optics.FromGo(repl)
			if err != nil {
				return err
			}
			out, err := optics.Transform(data, args[0], func(optics.Value) (optics.Value, error) {
				return replVal, nil
			}, opts...)
			if err != nil {
				return err
			}
			return printValue(cmd, out)
		},
	}
	cmd.Flags().StringVar(&setTo, "set", "null", "YAML literal to replace the focus with")
	return cmd
}

func loadArgs(cmd *cobra.Command) (optics.Value, []optics.Option, error) {
	file, _ := cmd.Flags().GetString("file")
	trace, _ := cmd.Flags().GetBool("trace")

	r := os.Stdin
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()
		r = f
	}

	var raw interface{}
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, nil, fmt.Errorf("decoding input: %w", err)
	}
	data, err := optics.FromGo(normalizeYAML(raw))
	if err != nil {
		return nil, nil, err
	}

	var opts []optics.Option
	if trace {
		opts = append(opts, optics.WithTraceEnabled(true))
	}
	return data, opts, nil
}

// normalizeYAML rewrites the map[interface{}]interface{} shapes that
// gopkg.in/yaml.v3 can still produce for untyped any-documents into the
// map[string]interface{} shape optics.FromGo understands.
func normalizeYAML(v interface{}) interface{} {
	switch x := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(x))
		for k, e := range x {
			out[k] = normalizeYAML(e)
		}
		return out
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(x))
		for k, e := range x {
			out[fmt.Sprint(k)] = normalizeYAML(e)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(x))
		for i, e := range x {
			out[i] = normalizeYAML(e)
		}
		return out
	default:
		return v
	}
}

func printValue(cmd *cobra.Command, v optics.Value) error {
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	defer enc.Close()
	return enc.Encode(optics.ToGo(v))
}
