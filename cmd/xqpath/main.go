// Copyright 2024 The xqpath Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command xqpath evaluates queries against XML documents and prints the
// matching nodes as XML fragments.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/cli"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/viper"

	"github.com/xqpath/xqpath"
)

const version = "1.0.0"

func main() {
	os.Exit(realMain())
}

func realMain() int {
	v := viper.New()
	v.SetDefault("indent", "  ")
	v.SetDefault("log-level", "warn")
	v.SetDefault("dir", "")
	v.SetEnvPrefix("xqpath")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetConfigName(".xqpath")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "xqpath",
		Level: hclog.LevelFromString(v.GetString("log-level")),
	})

	c := cli.NewCLI("xqpath", version)
	c.Args = os.Args[1:]
	c.Commands = map[string]cli.CommandFactory{
		"run": func() (cli.Command, error) {
			return &runCommand{config: v, logger: logger}, nil
		},
		"ast": func() (cli.Command, error) {
			return &astCommand{}, nil
		},
	}

	exitStatus, err := c.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	return exitStatus
}

// readQuery resolves the -e/-xpath/-doc flags and positional query file
// shared by the run and ast commands.
func readQuery(name string, args []string) (*xqpath.Query, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(os.Stderr)
	expr := flags.String("e", "", "query text, instead of a query file")
	xpathExpr := flags.String("xpath", "", "standard XPath expression; requires -doc")
	docFile := flags.String("doc", "", "document file for -xpath")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	switch {
	case *xpathExpr != "":
		if *docFile == "" {
			return nil, fmt.Errorf("%s: -xpath requires -doc", name)
		}
		return xqpath.CompileXPath(*docFile, *xpathExpr)
	case *expr != "":
		return xqpath.Compile(*expr)
	default:
		if flags.NArg() != 1 {
			return nil, fmt.Errorf("%s: expected a query file, -e or -xpath", name)
		}
		data, err := os.ReadFile(flags.Arg(0))
		if err != nil {
			return nil, err
		}
		return xqpath.Compile(strings.TrimSpace(string(data)))
	}
}

type runCommand struct {
	config *viper.Viper
	logger hclog.Logger
}

func (c *runCommand) Synopsis() string {
	return "Evaluate a query and print the matching nodes"
}

func (c *runCommand) Help() string {
	return strings.TrimSpace(`
Usage: xqpath run [options] [queryfile]

  Evaluates a query and prints the matching nodes as XML fragments,
  framed by node-count comments.

Options:

  -e <query>      Query text instead of a query file.
  -xpath <expr>   Standard XPath expression; translated to the dialect.
  -doc <file>     Document the -xpath expression runs against.

Configuration (.xqpath.yaml, overridden by XQPATH_* environment):

  indent          Indent unit for output fragments (default two spaces).
  dir             Base directory for doc() references.
  log-level       hclog level for loader diagnostics (default warn).
`)
}

func (c *runCommand) Run(args []string) int {
	q, err := readQuery("run", args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	loader := xqpath.NewLoader(c.logger)
	loader.Dir = c.config.GetString("dir")
	ns, err := xqpath.NewEvaluator(loader).Eval(q)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	indent := c.config.GetString("indent")
	fmt.Printf("<!-- Number of nodes: %d -->\n", len(ns))
	for i, n := range ns {
		fmt.Printf("<!-- Node #%d -->\n", i+1)
		fmt.Print(xqpath.SerializeIndent(xqpath.NodeSet{n}, indent))
	}
	return 0
}

type astCommand struct{}

func (c *astCommand) Synopsis() string {
	return "Parse a query and print its AST"
}

func (c *astCommand) Help() string {
	return strings.TrimSpace(`
Usage: xqpath ast [options] [queryfile]

  Parses a query and prints the AST as an indented tree, without
  evaluating it. Accepts the same -e, -xpath and -doc options as run.
`)
}

func (c *astCommand) Run(args []string) int {
	q, err := readQuery("ast", args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Print(xqpath.Dump(q.AST()))
	return 0
}
