package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"

	"github.com/ByLCY/omrkit/binding"
	"github.com/ByLCY/omrkit/config"
	"github.com/ByLCY/omrkit/layout"
	"github.com/ByLCY/omrkit/numeral"
	"github.com/ByLCY/omrkit/renderer"
	canvasrenderer "github.com/ByLCY/omrkit/renderer/canvas"
	"github.com/ByLCY/omrkit/server"
	"github.com/ByLCY/omrkit/sheet"
	"github.com/ByLCY/omrkit/theme"
	"github.com/ByLCY/omrkit/wizard"
)

type cliFlags struct {
	sheetPath   string
	configPath  string
	out         string
	format      string
	debugPath   string
	dataPath    string
	interactive bool
	serve       bool

	variant   string
	questions int
	columns   int
	pages     int
	theme     string
	numerals  string
}

func main() {
	var f cliFlags
	flag.StringVar(&f.sheetPath, "in", "", "sheet file (.omr, .yaml or .json)")
	flag.StringVar(&f.configPath, "config", "", "service settings file; .env and OMR_* variables are always read")
	flag.StringVar(&f.out, "out", "", "output path, default output/omr-<type>-<questions>.<format>")
	flag.StringVar(&f.format, "format", "", "output format, pdf or svg")
	flag.StringVar(&f.debugPath, "debug", "", "write the layout document as JSON to this path")
	flag.StringVar(&f.dataPath, "data", "", "JSON data file for ${...} placeholders")
	flag.BoolVar(&f.interactive, "interactive", false, "ask for the sheet settings on the terminal")
	flag.BoolVar(&f.serve, "serve", false, "start the HTTP preview server")
	flag.StringVar(&f.variant, "type", "", "override the sheet type, board or normal")
	flag.IntVar(&f.questions, "questions", 0, "override the question count")
	flag.IntVar(&f.columns, "columns", 0, "override the column count (normal)")
	flag.IntVar(&f.pages, "pages", 0, "copies per page, 1 or 2 (normal)")
	flag.StringVar(&f.theme, "theme", "", "override the colour theme")
	flag.StringVar(&f.numerals, "numerals", "", "override the numerals, bengali or latin")
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "Usage: %s [flags]\n\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprint(out, `
Bengali numerals are the default. Only Latin fonts are embedded, so Bengali
labels need a Bengali TrueType font: set OMR_BENGALI_FONT (and optionally
OMR_BENGALI_BOLD_FONT) to its path, or pass -numerals latin.
`)
	}
	flag.Parse()

	svc, err := config.LoadService(config.WithConfigFile(f.configPath))
	if err != nil {
		log.Fatalf("load service settings: %v", err)
	}
	log.SetLevel(logLevel(svc.LogLevel))

	if f.serve {
		if err := serve(svc); err != nil {
			log.Fatalf("preview server: %v", err)
		}
		return
	}

	out, err := run(context.Background(), f, svc)
	if err != nil {
		if errors.Cause(err) == wizard.ErrAborted {
			os.Exit(130)
		}
		log.Fatalf("generate sheet: %v", err)
	}
	fmt.Printf("wrote %s\n", out)
}

// run chains loading, binding, composition and rendering and returns the
// output path.
func run(ctx context.Context, f cliFlags, svc config.Service) (string, error) {
	var cfg sheet.Config
	var err error
	switch {
	case f.interactive:
		cfg, err = wizard.Run(ctx, wizard.NewSurveyDriver())
	case f.sheetPath != "":
		cfg, err = config.LoadSheet(f.sheetPath)
	}
	if err != nil {
		return "", err
	}
	cfg = applyOverrides(cfg, f)

	dataPath := f.dataPath
	if dataPath == "" {
		dataPath = svc.DataFile
	}
	if dataPath != "" {
		data, err := binding.LoadFile(dataPath)
		if err != nil {
			return "", err
		}
		cfg = binding.Config(cfg, data)
	}

	doc := sheet.Compose(cfg)
	if err := sheet.Verify(doc); err != nil {
		return "", errors.Wrap(err, "verify layout")
	}
	log.Debugj(log.JSON{"variant": doc.Variant, "questions": doc.QuestionCount, "fingerprint": doc.Fingerprint})

	if f.debugPath != "" {
		if err := writeDebug(doc, f.debugPath); err != nil {
			return "", err
		}
	}

	formatName := f.format
	if formatName == "" {
		formatName = svc.Format
	}
	format, err := renderer.ParseFormat(formatName)
	if err != nil {
		return "", err
	}
	r := canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{Format: format, Fonts: fontResources(svc)})
	data, err := r.Render(doc)
	if err != nil {
		return "", errors.Wrap(err, "render")
	}

	out := f.out
	if out == "" {
		out = filepath.Join("output", fmt.Sprintf("omr-%s-%d.%s", doc.Variant, doc.QuestionCount, format))
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return "", errors.Wrap(err, "create output directory")
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return "", errors.Wrap(err, "write output")
	}
	return out, nil
}

// applyOverrides applies command-line flags on top of the file or wizard config.
func applyOverrides(c sheet.Config, f cliFlags) sheet.Config {
	if v := sheet.ParseVariant(f.variant); v != "" {
		c.Variant = v
	}
	if f.questions > 0 {
		c.QuestionCount = f.questions
	}
	if f.columns > 0 {
		c.Columns = f.columns
	}
	if f.pages > 0 {
		c.PagesPerSheet = f.pages
	}
	if n, ok := theme.Parse(f.theme); ok {
		c.Theme = n
	}
	if s := numeral.Parse(f.numerals); s != numeral.Unset {
		c.Numerals = s
	}
	return c
}

func serve(svc config.Service) error {
	var data map[string]any
	if svc.DataFile != "" {
		var err error
		if data, err = binding.LoadFile(svc.DataFile); err != nil {
			return err
		}
	}
	srv := server.NewServer(&server.Options{
		Address:  svc.Address,
		Debug:    svc.Debug,
		LogLevel: logLevel(svc.LogLevel),
		Fonts:    fontResources(svc),
		Data:     data,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()
	select {
	case err := <-errc:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Stop(shutdown)
}

func fontResources(svc config.Service) map[string]canvasrenderer.Resource {
	fonts := map[string]canvasrenderer.Resource{}
	if svc.BengaliFont != "" {
		fonts[canvasrenderer.FontBengali] = canvasrenderer.Resource{Path: svc.BengaliFont}
	}
	if svc.BengaliBoldFont != "" {
		fonts[canvasrenderer.FontBengaliBold] = canvasrenderer.Resource{Path: svc.BengaliBoldFont}
	}
	return fonts
}

func logLevel(name string) log.Lvl {
	switch name {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}

func writeDebug(doc *layout.Document, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return errors.Wrap(err, "create debug directory")
	}
	if err := layout.WriteDebugJSON(doc, debugPath); err != nil {
		return errors.Wrap(err, "write debug JSON")
	}
	return nil
}
