package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fatih/color"

	"meetnote/internal/config"
	"meetnote/internal/ics"
	appLog "meetnote/internal/log"
	"meetnote/internal/note"
	"meetnote/internal/occurrence"
	"meetnote/internal/record"
	"meetnote/internal/render"
)

// flagConfig holds CLI flag values.
type flagConfig struct {
	configPath string
	root       string
	folder     string
	date       string
	verbose    bool
}

func main() {
	flags, invitePath := parseFlags()

	if flags.verbose {
		appLog.SetLevel(appLog.ParseLevel("DEBUG"))
	}
	appLog.Info("meetnote starting", "invite", invitePath)

	conf, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}

	// CLI -folder overrides the configured notes folder if provided.
	if flags.folder != "" {
		conf.NotesFolder = flags.folder
	}

	template, err := conf.ResolveTemplate()
	if err != nil {
		appLog.Error("failed to read template file", err, "template_file", conf.TemplateFile)
		os.Exit(1)
	}

	// Root context with cancellation on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rec, err := readRecord(invitePath)
	if err != nil {
		appLog.Error("failed to read invite", err, "path", invitePath)
		os.Exit(1)
	}

	var asker occurrence.Asker = terminalAsker{}
	if flags.date != "" {
		asker = &presetAsker{date: flags.date}
	}

	creator := &note.Creator{
		Root:            flags.root,
		Folder:          conf.NotesFolder,
		FilenamePattern: conf.FilenamePattern,
		Template:        template,
		Replacement:     conf.InvalidCharReplacement,
		Helpers:         render.DefaultHelpers(),
		Asker:           asker,
		Notifier:        consoleNotifier{},
	}

	result, err := creator.Create(ctx, rec)
	if err != nil {
		appLog.Error("note creation failed", err)
		os.Exit(1)
	}
	if result.Cancelled {
		return
	}
	fmt.Println(result.Path)
}

func parseFlags() (flagConfig, string) {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", defaultConfigPath(), "Path to config file")
	flag.StringVar(&cfg.root, "root", ".", "Vault root directory for created notes")
	flag.StringVar(&cfg.folder, "folder", "", "Notes folder relative to the root (overrides config if set)")
	flag.StringVar(&cfg.date, "date", "", "Occurrence date (YYYY-MM-DD) for recurring invites, skips the prompt")
	flag.BoolVar(&cfg.verbose, "v", false, "Enable debug logging")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"Usage: meetnote [flags] <invite>\n\n"+
				"<invite> is an .ics invite file, a .json record file, or - for ICS on stdin.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	return cfg, flag.Arg(0)
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "meetnote.yaml"
	}
	return filepath.Join(dir, "meetnote", "config.yaml")
}

// readRecord produces the invite record from the given path: ICS by
// default, a pre-parsed JSON record for .json files, stdin for "-".
func readRecord(path string) (*record.Record, error) {
	if path == "-" {
		return ics.ReadInvite(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return record.FromJSON(f)
	}
	return ics.ReadInvite(f)
}

// consoleNotifier prints user-facing notices to stderr, colorized when the
// terminal supports it.
type consoleNotifier struct{}

func (consoleNotifier) Notify(msg string) {
	color.New(color.FgCyan).Fprintln(os.Stderr, msg)
}
