package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. App satisfies it; tests
// provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Mood(ctx context.Context) error
	Checkin(ctx context.Context, kind string) error
	Dashboard(ctx context.Context) error
	Watch(ctx context.Context) error
	Journal(ctx context.Context) error
	Entries(ctx context.Context) error
	Breathe(ctx context.Context, cycles string) error
	Sessions(ctx context.Context) error
	Settings(ctx context.Context) error
	Export(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, help, exit"
	helpLoggedIn  = "Available commands: mood, checkin <type>, dashboard, watch, journal, entries, " +
		"breathe <cycles>, sessions, settings, export, logout, help, exit"
)

// runREPL reads commands from reader and dispatches them to a until EOF,
// "exit"/"quit" or ctx cancellation.
//
// Commands that need a session are refused while logged out. Errors returned
// by handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("mk %s> ", statusFn()))

		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if needsSession(cmd) && !a.isLoggedIn() {
			printlnFn("Please log in first")
			continue
		}

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "mood":
			cmdErr = a.Mood(ctx)

		case "checkin":
			if len(args) != 1 {
				printlnFn("Usage: checkin <type>")
				continue
			}
			cmdErr = a.Checkin(ctx, args[0])

		case "dashboard", "d":
			cmdErr = a.Dashboard(ctx)

		case "watch":
			cmdErr = a.Watch(ctx)

		case "journal":
			cmdErr = a.Journal(ctx)

		case "entries":
			cmdErr = a.Entries(ctx)

		case "breathe":
			if len(args) != 1 {
				printlnFn("Usage: breathe <cycles>")
				continue
			}
			cmdErr = a.Breathe(ctx, args[0])

		case "sessions":
			cmdErr = a.Sessions(ctx)

		case "settings":
			cmdErr = a.Settings(ctx)

		case "export":
			cmdErr = a.Export(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", describe(cmdErr))
		}
	}
}

func needsSession(cmd string) bool {
	switch cmd {
	case "logout", "mood", "checkin", "dashboard", "d", "watch", "journal", "entries",
		"breathe", "sessions", "settings", "export":
		return true
	}
	return false
}
