package main

import (
	"flag"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.design/x/clipboard"

	"panelcad/sitecfg"
)

func main() {
	configPath := flag.String("config", "", "Path to site config YAML (defaults apply if omitted)")
	watchDir := flag.String("watch", "", "Directory to watch for config/script changes (defaults to the config file's directory)")
	optimizerURL := flag.String("optimizer", "", "Optimizer service base URL (overrides config)")
	flag.Parse()

	cfg := sitecfg.Default()
	if *configPath != "" {
		c, err := sitecfg.Load(*configPath)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		cfg = c
	}
	if *optimizerURL != "" {
		cfg.OptimizerURL = *optimizerURL
	}

	clipboardOK := clipboard.Init() == nil
	if !clipboardOK {
		log.Print("clipboard unavailable; copy/paste disabled")
	}

	dir := *watchDir
	if dir == "" && *configPath != "" {
		dir = filepath.Dir(*configPath)
	}
	var watcher *sitecfg.Watcher
	if dir != "" {
		w, err := sitecfg.NewWatcher(sitecfg.ReloadFile, dir)
		if err != nil {
			log.Printf("watch %s: %v", dir, err)
		} else {
			watcher = w
			defer w.Close()
		}
	}

	app := NewApp(cfg, watcher, clipboardOK)

	ebiten.SetWindowSize(1280, 800)
	ebiten.SetWindowTitle("Panel Layout Editor")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(app); err != nil {
		log.Fatal(err)
	}
}
