// Command machlink-inspect loads a MachLink device definition and
// inspects the resulting device model.
//
// It runs the full build+resolve cycle on the definition, prints the
// resolved component tree, and reports any references that could not be
// bound. With -interactive it drops into a readline shell for browsing
// the tree.
//
// Usage:
//
//	machlink-inspect [flags] <definition.yaml>
//
// Flags:
//
//	-attributes      Show each component's attribute view
//	-assign-uuids    Generate UUIDs for components declared without one
//	-snapshot FILE   Write the CBOR probe snapshot to FILE
//	-interactive     Enable interactive browsing
//	-log-level       Log level: debug, info, warn, error (default "warn")
//
// Examples:
//
//	# Print the resolved tree
//	machlink-inspect mill-1.yaml
//
//	# Browse interactively
//	machlink-inspect -interactive mill-1.yaml
//
//	# Export a probe snapshot
//	machlink-inspect -snapshot mill-1.cbor mill-1.yaml
//
// Interactive Commands:
//
//	tree          - Print the component tree
//	show <path>   - Show the entity at a path (e.g. Axes/X/Xpos)
//	attrs <id>    - Show a component's attribute view
//	refs          - List unbound references
//	quit          - Exit
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"go.uber.org/zap"

	"github.com/machlink-protocol/machlink-go/pkg/inspect"
	"github.com/machlink-protocol/machlink-go/pkg/loader"
	"github.com/machlink-protocol/machlink-go/pkg/model"
	"github.com/machlink-protocol/machlink-go/pkg/registry"
	"github.com/machlink-protocol/machlink-go/pkg/wire"
)

func main() {
	var (
		showAttributes = flag.Bool("attributes", false, "show each component's attribute view")
		assignUUIDs    = flag.Bool("assign-uuids", false, "generate UUIDs for components declared without one")
		snapshotPath   = flag.String("snapshot", "", "write the CBOR probe snapshot to FILE")
		interactive    = flag.Bool("interactive", false, "enable interactive browsing")
		logLevel       = flag.String("log-level", "warn", "log level: debug, info, warn, error")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: machlink-inspect [flags] <definition.yaml>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	log, err := newLogger(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	l, err := loader.New(loader.Options{
		AssignUUIDs: *assignUUIDs,
		Logger:      log,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating loader: %v\n", err)
		os.Exit(1)
	}

	result, err := l.LoadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading %s: %v\n", flag.Arg(0), err)
		os.Exit(1)
	}

	reg := registry.New(log)
	snapshot, err := reg.Publish(result.Device, result.Graph, result.Issues)
	if err != nil {
		fmt.Fprintf(os.Stderr, "publishing: %v\n", err)
		os.Exit(1)
	}

	if *snapshotPath != "" {
		if err := writeSnapshot(*snapshotPath, snapshot); err != nil {
			fmt.Fprintf(os.Stderr, "writing snapshot: %v\n", err)
			os.Exit(1)
		}
	}

	inspector := inspect.NewInspector(result.Device, result.Graph)
	formatter := inspect.NewFormatter()
	formatter.ShowAttributes = *showAttributes

	if *interactive {
		runInteractive(inspector, formatter)
		return
	}

	fmt.Print(formatter.FormatDevice(result.Device))
	printIssues(result, os.Stdout)
}

func newLogger(level string) (*zap.Logger, error) {
	var lvl zap.AtomicLevel
	switch level {
	case "debug":
		lvl = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		lvl = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		lvl = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		lvl = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		return nil, fmt.Errorf("unknown log level %q", level)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = lvl
	return cfg.Build()
}

func writeSnapshot(path string, snapshot *registry.Snapshot) error {
	probe := wire.NewProbeSnapshot("machlink-inspect", snapshot)
	data, err := wire.EncodeSnapshot(probe)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func printIssues(result *loader.Result, w *os.File) {
	for _, issue := range result.Issues {
		fmt.Fprintf(w, "unbound: %v\n", issue)
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "vocabulary: %s\n", warning)
	}
}

func runInteractive(inspector *inspect.Inspector, formatter *inspect.Formatter) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "inspect> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create readline: %v\n", err)
		return
	}
	defer rl.Close()

	printHelp(rl)

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(rl.Stdout(), "Exiting...")
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			printHelp(rl)

		case "tree", "t":
			fmt.Fprint(rl.Stdout(), formatter.FormatDevice(inspector.Device()))

		case "show", "s":
			if len(args) != 1 {
				fmt.Fprintln(rl.Stdout(), "usage: show <path>")
				continue
			}
			cmdShow(rl, inspector, formatter, args[0])

		case "attrs", "a":
			if len(args) != 1 {
				fmt.Fprintln(rl.Stdout(), "usage: attrs <id>")
				continue
			}
			cmdAttrs(rl, inspector, args[0])

		case "refs", "r":
			cmdRefs(rl, inspector)

		case "quit", "q", "exit":
			return

		default:
			fmt.Fprintf(rl.Stdout(), "unknown command %q (try help)\n", cmd)
		}
	}
}

func printHelp(rl *readline.Instance) {
	fmt.Fprintln(rl.Stdout(), "Commands:")
	fmt.Fprintln(rl.Stdout(), "  tree          - print the component tree")
	fmt.Fprintln(rl.Stdout(), "  show <path>   - show the entity at a path")
	fmt.Fprintln(rl.Stdout(), "  attrs <id>    - show a component's attribute view")
	fmt.Fprintln(rl.Stdout(), "  refs          - list unbound references")
	fmt.Fprintln(rl.Stdout(), "  quit          - exit")
}

func cmdShow(rl *readline.Instance, inspector *inspect.Inspector, formatter *inspect.Formatter, path string) {
	entity, err := inspector.Find(path)
	if err != nil {
		fmt.Fprintln(rl.Stdout(), err)
		return
	}

	switch entity.Kind {
	case model.EntityComponent:
		fmt.Fprint(rl.Stdout(), formatter.FormatComponent(entity.Component))
	case model.EntityDataItem:
		item := entity.DataItem
		fmt.Fprintf(rl.Stdout(), "[%s] %s %q (%s)\n",
			item.Category(), item.Type(), item.ID(), item.Name())
	}
}

func cmdAttrs(rl *readline.Instance, inspector *inspect.Inspector, id string) {
	entity, err := inspector.ByID(id)
	if err != nil {
		fmt.Fprintln(rl.Stdout(), err)
		return
	}
	if entity.Kind != model.EntityComponent {
		fmt.Fprintf(rl.Stdout(), "%q is a %s, not a component\n", id, entity.Kind)
		return
	}
	for k, v := range entity.Component.Attributes() {
		fmt.Fprintf(rl.Stdout(), "%s = %s\n", k, v)
	}
}

func cmdRefs(rl *readline.Instance, inspector *inspect.Inspector) {
	unbound := inspector.UnboundReferences()
	if len(unbound) == 0 {
		fmt.Fprintln(rl.Stdout(), "all references bound")
		return
	}
	for _, u := range unbound {
		fmt.Fprintf(rl.Stdout(), "component %q -> %s %q (%s)\n",
			u.Component.ID(), u.Reference.Kind(), u.Reference.ID(), u.Reference.Name())
	}
}
