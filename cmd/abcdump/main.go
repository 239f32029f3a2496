// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abcfile/abc"
)

var (
	wantPools   bool
	wantMethods bool
	wantClasses bool
	wantScripts bool
	wantBodies  bool
	wantDisasm  bool
	wantJSON    bool
)

func openAndParse(path string) (*abc.ABCFile, error) {
	f, err := abc.Open(path, &abc.Options{})
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.Parse()
}

func dumpJSON(v interface{}) {
	b, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		fmt.Fprintln(os.Stderr, "json error:", err)
		return
	}
	fmt.Println(string(b))
}

func dumpFile(path string) {
	file, err := openAndParse(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", path, err)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "file\t%s\n", path)
	fmt.Fprintf(w, "version\t%d.%d\n", file.MajorVersion, file.MinorVersion)
	fmt.Fprintf(w, "size\t%d\n", file.Size)
	fmt.Fprintf(w, "anomalies\t%d\n", len(file.Anomalies))
	w.Flush()

	if wantPools {
		if wantJSON {
			dumpJSON(map[string]int{
				"ints":       file.IntCount(),
				"uints":      file.UIntCount(),
				"doubles":    file.DoubleCount(),
				"strings":    file.StringCount(),
				"namespaces": file.NamespaceCount(),
				"nssets":     file.NamespaceSetCount(),
				"multinames": file.MultinameCount(),
			})
		} else {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "int_pool\t%d\n", file.IntCount())
			fmt.Fprintf(w, "uint_pool\t%d\n", file.UIntCount())
			fmt.Fprintf(w, "double_pool\t%d\n", file.DoubleCount())
			fmt.Fprintf(w, "string_pool\t%d\n", file.StringCount())
			fmt.Fprintf(w, "namespace_pool\t%d\n", file.NamespaceCount())
			fmt.Fprintf(w, "ns_set_pool\t%d\n", file.NamespaceSetCount())
			fmt.Fprintf(w, "multiname_pool\t%d\n", file.MultinameCount())
			w.Flush()
		}
	}

	if wantMethods {
		if wantJSON {
			dumpJSON(file.Methods)
		} else {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "index\tname\tparams\tflags")
			for i, m := range file.Methods {
				fmt.Fprintf(w, "%d\t%s\t%d\t%d\n", i, m.Name, len(m.ParamTypes), m.Flags)
			}
			w.Flush()
		}
	}

	if wantClasses {
		if wantJSON {
			dumpJSON(file.Classes)
		} else {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "index\tname\tflags\tinstance_traits\tstatic_traits")
			for _, c := range file.Classes {
				fmt.Fprintf(w, "%d\t%s\t%v\t%d\t%d\n", c.Index, file.Render(c.Name), c.Flags, len(c.InstanceTraits), len(c.StaticTraits))
			}
			w.Flush()
		}
	}

	if wantScripts {
		if wantJSON {
			dumpJSON(file.Scripts)
		} else {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "index\ttraits")
			for _, s := range file.Scripts {
				fmt.Fprintf(w, "%d\t%d\n", s.Index, len(s.Traits))
			}
			w.Flush()
		}
	}

	if wantBodies {
		if wantJSON {
			dumpJSON(file.MethodBodies)
		} else {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "max_stack\tlocal_count\tcode_len\texceptions")
			for _, b := range file.MethodBodies {
				fmt.Fprintf(w, "%d\t%d\t%d\t%d\n", b.MaxStack, b.LocalCount, len(b.Code), len(b.Exceptions))
			}
			w.Flush()
		}
	}

	if wantDisasm {
		for bi, body := range file.MethodBodies {
			fmt.Printf("method_body[%d] code=%d bytes\n", bi, len(body.Code))
			for off := 0; off < len(body.Code); off++ {
				info := abc.Opcodes[body.Code[off]]
				if !info.Valid {
					fmt.Printf("  %04x  <unknown 0x%02x>\n", off, body.Code[off])
					continue
				}
				fmt.Printf("  %04x  %s\n", off, info.Name)
			}
		}
	}
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Dumps the contents of an ABC file",
		Long:  "Dumps the constant pools, method signatures, classes, scripts, and method bodies of an ActionScript ABC file",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			for _, path := range args {
				dumpFile(path)
			}
		},
	}
	cmd.Flags().BoolVar(&wantPools, "pools", false, "dump constant pool sizes")
	cmd.Flags().BoolVar(&wantMethods, "methods", false, "dump method signatures")
	cmd.Flags().BoolVar(&wantClasses, "classes", false, "dump classes")
	cmd.Flags().BoolVar(&wantScripts, "scripts", false, "dump scripts")
	cmd.Flags().BoolVar(&wantBodies, "bodies", false, "dump method bodies")
	cmd.Flags().BoolVar(&wantDisasm, "disasm", false, "disassemble method body code")
	cmd.Flags().BoolVar(&wantJSON, "json", false, "emit JSON instead of tabular text")
	return cmd
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "abcdump",
		Short: "An ActionScript ABC file parser",
		Long:  "A parser for ActionScript 3 ABC bytecode files, built for inspection and disassembly",
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("You are using version 0.1.0")
		},
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newDumpCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
