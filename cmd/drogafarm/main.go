package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/drogafarm/internal/catalog"
	"github.com/jask/drogafarm/internal/config"
	"github.com/jask/drogafarm/internal/logging"
	"github.com/jask/drogafarm/internal/session"
	"github.com/jask/drogafarm/internal/tui"
)

func main() {
	forget := flag.Bool("forget", false, "clear the remembered sign-in and exit")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, logFile, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer logFile.Close()

	kv, closeKV, err := openBackend(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Error("open session store")
		log.Fatalf("store: %v", err)
	}
	defer closeKV()
	st := session.NewStore(kv)

	if *forget {
		if err := st.Clear(ctx); err != nil {
			log.Fatalf("forget: %v", err)
		}
		fmt.Println("remembered sign-in cleared")
		return
	}

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}

	machine := session.New(cat, st, session.WithLogger(logger))
	if res := machine.AttemptAutoLogin(ctx); res.State.Screen != session.Anonymous {
		logger.WithField("email", res.State.Identity.Email).Info("restored remembered sign-in")
	}

	p := tea.NewProgram(tui.New(ctx, cfg, machine, cat), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
