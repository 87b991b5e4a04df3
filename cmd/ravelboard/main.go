package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/RavelOrg/ravel"
	"github.com/RavelOrg/ravel/bind"
	"github.com/RavelOrg/ravel/changelog"
	"github.com/RavelOrg/ravel/journal"
	"github.com/RavelOrg/ravel/journal/sqlitejournal"
	"github.com/RavelOrg/ravel/route"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "ravelboard:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	symbols, err := loadWatchlist(cfg.Watchlist)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Diagnostics: in-memory ring, optional plain-text change log, optional
	// durable journal.
	ring := changelog.NewRing(cfg.Diagnostics.Ring)
	recorders := []ravel.Recorder{ring}

	if cfg.Diagnostics.Log != "" {
		logFile, err := os.OpenFile(cfg.Diagnostics.Log, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("open change log: %w", err)
		}
		defer logFile.Close()
		recorders = append(recorders, changelog.NewPlainPrinter(logFile))
	}

	var history journal.Journal
	if cfg.Journal.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Journal.Path), 0755); err != nil {
			return fmt.Errorf("create journal dir: %w", err)
		}
		jr, err := sqlitejournal.Open(cfg.Journal.Path)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer jr.Close()
		history = jr

		writer := journal.NewWriter(jr)
		defer writer.Close()
		recorders = append(recorders, writer)
	}

	store := ravel.New(
		newBoard(symbolNames(symbols), time.Now()),
		reduceBoard,
		ravel.WithName[board]("board"),
		ravel.WithRecorder[board](changelog.Multi(recorders...)),
		ravel.WithRunner[board](&alertRunner{thresholds: alertThresholds(symbols)}),
		ravel.WithRunner[board](&historyRunner{journal: history, timeout: 3 * time.Second}),
	)
	go store.Run(ctx)
	defer func() {
		store.Close()
		<-store.Done()
	}()

	router := route.New(nav{View: viewLoading}, navTable{}, ravel.WithName[nav]("nav"))
	go router.Run(ctx)
	defer func() {
		router.Close()
		<-router.Done()
	}()

	registry := route.NewRegistry()
	if err := registry.Register("main", router); err != nil {
		return err
	}
	handle := registry.MustResolve("main")

	if err := startFeeds(ctx, cfg.Endpoint, symbolNames(symbols), store); err != nil {
		return err
	}

	noteField := bind.New(store,
		func(s board) string { return s.Note },
		func(v string) ravel.Change { return noteEdited{Note: v} },
	)

	p := tea.NewProgram(newModel(store, router, handle, noteField, ring), tea.WithAltScreen())

	unsubStore := store.Subscribe(func(s board) { p.Send(stateMsg{state: s}) })
	defer unsubStore()
	unsubNav := router.Subscribe(func(n nav) { p.Send(navMsg{nav: n}) })
	defer unsubNav()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		p.Quit()
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
