// ABOUTME: Entry point for the newspulse client
// ABOUTME: Dispatches account, chat, dashboard, and terminal UI subcommands

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

// Version is set at build time.
var version = "dev"

func usage() {
	fmt.Println("Usage: newspulse [--config PATH] <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  signup [--first F --last L --email E]")
	fmt.Println("                         Create an account (password is prompted)")
	fmt.Println("  signin [--email E]     Sign in and remember the session")
	fmt.Println("  signout                Sign out and forget the session")
	fmt.Println("  whoami                 Show the signed-in user id")
	fmt.Println("  dashboard [--html F]   Show the news dashboard, optionally writing an HTML report")
	fmt.Println("  chat [--ask TOPIC]     Chat with the news assistant")
	fmt.Println("  tui [--ask TOPIC]      Open the interactive dashboard and chat")
	fmt.Println("  version                Print the version")
}

func main() {
	// A missing .env is fine
	_ = godotenv.Load()

	global := flag.NewFlagSet("newspulse", flag.ExitOnError)
	configPath := global.String("config", "", "config file (default $NEWSPULSE_CONFIG or ~/.config/newspulse/config.yaml)")
	global.Usage = usage
	_ = global.Parse(os.Args[1:])

	args := global.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch args[0] {
	case "signup":
		err = runSignUp(ctx, *configPath, args[1:])
	case "signin":
		err = runSignIn(ctx, *configPath, args[1:])
	case "signout":
		err = runSignOut(ctx, *configPath)
	case "whoami":
		err = runWhoAmI(ctx, *configPath)
	case "dashboard":
		err = runDashboard(ctx, *configPath, args[1:])
	case "chat":
		err = runChat(ctx, *configPath, args[1:])
	case "tui":
		err = runTUI(ctx, *configPath, args[1:])
	case "version":
		fmt.Println("newspulse", version)
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
		os.Exit(1)
	}

	if err != nil {
		// Banners already told the user what went wrong
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// errReported marks failures that were already shown in a banner.
var errReported = errors.New("reported")
