// Package main starts the xmouse remote control server.
package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/halvex/xmouse/internal/app"
	"github.com/halvex/xmouse/internal/config"
	"github.com/halvex/xmouse/internal/display"
	"github.com/halvex/xmouse/internal/pointer"
	"github.com/halvex/xmouse/internal/profile"
	"github.com/halvex/xmouse/internal/rtc"
	"github.com/halvex/xmouse/internal/session"
	"github.com/halvex/xmouse/internal/signaling"
)

// run wires the application and blocks until shutdown.
func run(debug bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	rtc.SetDebugLogging(debug)
	if debug {
		log.Printf("debug: enabled")
	}

	conn, err := display.Open(cfg.Display)
	if err != nil {
		return err
	}

	prof, err := profile.Load(cfg.ProfilePath)
	if err != nil {
		_ = conn.Close()
		return err
	}

	logStartup(cfg, conn, prof)

	opts, err := prof.ControllerOptions()
	if err != nil {
		_ = conn.Close()
		return err
	}
	ctl, err := pointer.New(conn, opts)
	if err != nil {
		_ = conn.Close()
		return err
	}
	defer func() {
		if err := ctl.Close(); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	sess := session.New(cfg.UIPassword)
	appInstance, err := app.New(cfg, sess, conn, ctl, prof, signaling.ClientReplace)
	if err != nil {
		return err
	}
	if err := appInstance.Start(); err != nil {
		return err
	}
	defer appInstance.Stop()

	mux := http.NewServeMux()
	appInstance.RegisterRoutes(mux, "")
	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// logFatal prints and exits for startup failures.
func logFatal(err error) {
	log.Printf("fatal: %v", err)
	os.Exit(1)
}

// logStartup prints startup checks and connection info.
func logStartup(cfg config.Config, conn *display.Conn, prof profile.Profile) {
	log.Printf("xmouse starting")
	logEnvStatus(cfg)
	logDisplayStatus(conn)
	log.Printf("profile: %s (policy %s)", cfg.ProfilePath, prof.MovePolicy)
	logListenStatus(cfg.ListenAddr)
}

// logEnvStatus reports whether a .env file was found and required values are set.
func logEnvStatus(cfg config.Config) {
	envPath := filepath.Join(cfg.DataDir, ".env")
	if fileExists(envPath) {
		log.Printf("env check: ok (%s)", envPath)
	} else {
		log.Printf("env check: missing (%s)", envPath)
	}
	if strings.TrimSpace(os.Getenv("UI_PASSWORD")) == "" {
		log.Printf("env UI_PASSWORD: missing")
	} else {
		log.Printf("env UI_PASSWORD: set")
	}
}

// logDisplayStatus reports the X connection and its input capabilities.
func logDisplayStatus(conn *display.Conn) {
	width, height := conn.Geometry()
	log.Printf("display check: ok (%s, %dx%d)", conn.Name(), width, height)
	if conn.HasXTest() {
		log.Printf("xtest check: ok")
	} else {
		log.Printf("xtest check: missing (moves fall back to warps, buttons unavailable)")
	}
}

// logListenStatus reports the listen address and a local URL helper.
func logListenStatus(addr string) {
	log.Printf("listen addr: %s", addr)
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	log.Printf("local url: http://%s", net.JoinHostPort(host, port))
}

// fileExists reports whether a path exists and is a file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
