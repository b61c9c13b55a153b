// Package main is the xmouse command line pointer tool.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
)

// usage prints the command summary.
func usage() {
	fmt.Fprintf(os.Stderr, `usage: xmouse [flags] <command> [args]

commands:
  location              print the pointer position
  move <x> <y>          warp to absolute root coordinates
  moveby <dx> <dy>      shift the pointer by a delta
  click [button]        click a button (default left)
  press <button>        press and hold a button
  release <button>      release a held button
  drag <x> <y> [button]     drag to absolute coordinates
  dragby <dx> <dy> [button] drag by a delta
  scroll <dy>           scroll vertically (or: scroll <dx> <dy>)
  monitors              list monitors
  center [monitor]      warp to a monitor center (default primary)
  watch                 poll and print the pointer position
  drive                 interactive keyboard control
  profile               print the active pointer profile

flags:
`)
	flag.PrintDefaults()
}

// main parses global flags and dispatches the subcommand.
func main() {
	displayName := flag.String("display", "", "X display to connect to (defaults to $DISPLAY)")
	profilePath := flag.String("profile", "", "pointer profile to load")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	if err := run(*displayName, *profilePath, args[0], args[1:]); err != nil {
		log.Printf("fatal: %v", err)
		os.Exit(1)
	}
}

// run opens the display where needed and executes one subcommand.
func run(displayName, profilePath, command string, args []string) error {
	if command == "profile" {
		return cmdProfile(profilePath, args)
	}

	ctl, conn, err := openController(displayName, profilePath)
	if err != nil {
		return err
	}
	defer func() { _ = ctl.Close() }()

	switch command {
	case "location":
		return cmdLocation(ctl)
	case "move":
		return cmdMove(ctl, args)
	case "moveby":
		return cmdMoveBy(ctl, args)
	case "click":
		return cmdClick(ctl, args)
	case "press":
		return cmdPress(ctl, args)
	case "release":
		return cmdRelease(ctl, args)
	case "drag":
		return cmdDrag(ctl, args)
	case "dragby":
		return cmdDragBy(ctl, args)
	case "scroll":
		return cmdScroll(ctl, args)
	case "monitors":
		return cmdMonitors(conn)
	case "center":
		return cmdCenter(ctl, conn, args)
	case "watch":
		return cmdWatch(ctl, args)
	case "drive":
		return runDrive(ctl)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}
