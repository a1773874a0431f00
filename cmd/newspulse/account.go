// ABOUTME: Account subcommands: signup, signin, signout, whoami
// ABOUTME: Prompts for form fields and waits for the post-success redirect before exiting

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/newspulse/newspulse-client/internal/auth"
)

// redirectGrace is added to the redirect delay while waiting to exit.
const redirectGrace = 500 * time.Millisecond

func runSignUp(ctx context.Context, configPath string, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	first := fs.String("first", "", "first name")
	last := fs.String("last", "", "last name")
	email := fs.String("email", "", "email address")
	_ = fs.Parse(args)

	a, err := newConsoleApp(ctx, configPath)
	if err != nil {
		return err
	}
	defer a.Close()

	reader := bufio.NewReader(os.Stdin)
	form := auth.SignUpForm{
		FirstName: flagOrPrompt(reader, *first, "First name"),
		LastName:  flagOrPrompt(reader, *last, "Last name"),
		Email:     flagOrPrompt(reader, *email, "Email"),
		Password:  readPassword(reader, "Password"),
	}

	if err := a.forms.SubmitSignUp(ctx, form); err != nil {
		return errReported
	}
	a.navigator.Wait(ctx, a.cfg.Navigation.RedirectDelay+redirectGrace)
	return nil
}

func runSignIn(ctx context.Context, configPath string, args []string) error {
	fs := flag.NewFlagSet("signin", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	_ = fs.Parse(args)

	a, err := newConsoleApp(ctx, configPath)
	if err != nil {
		return err
	}
	defer a.Close()

	reader := bufio.NewReader(os.Stdin)
	form := auth.SignInForm{
		Email:    flagOrPrompt(reader, *email, "Email"),
		Password: readPassword(reader, "Password"),
	}

	if err := a.forms.SubmitSignIn(ctx, form); err != nil {
		return errReported
	}
	a.navigator.Wait(ctx, a.cfg.Navigation.RedirectDelay+redirectGrace)
	return nil
}

func runSignOut(ctx context.Context, configPath string) error {
	a, err := newConsoleApp(ctx, configPath)
	if err != nil {
		return err
	}
	defer a.Close()

	if _, ok := a.session.ID(); !ok {
		fmt.Println("Not signed in.")
	}
	return a.forms.Logout(ctx)
}

func runWhoAmI(ctx context.Context, configPath string) error {
	a, err := newConsoleApp(ctx, configPath)
	if err != nil {
		return err
	}
	defer a.Close()

	printSession(os.Stdout, a.session)
	return nil
}

func printSession(w io.Writer, session *auth.SessionContext) {
	if id, ok := session.ID(); ok {
		fmt.Fprintf(w, "Signed in as %s\n", id)
		return
	}
	fmt.Fprintln(w, "Not signed in.")
}

func flagOrPrompt(reader *bufio.Reader, value, question string) string {
	if value != "" {
		return value
	}
	return prompt(reader, question, "")
}

func prompt(reader *bufio.Reader, question, defaultVal string) string {
	if defaultVal != "" {
		fmt.Printf("%s [%s]: ", question, defaultVal)
	} else {
		fmt.Printf("%s: ", question)
	}

	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		// On EOF or error, return default
		fmt.Println()
		return defaultVal
	}
	input = strings.TrimRight(input, "\r\n")

	if strings.TrimSpace(input) == "" {
		return defaultVal
	}
	return input
}

// readPassword reads without echo from a terminal and falls back to a plain
// line read when stdin is piped.
func readPassword(reader *bufio.Reader, question string) string {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return prompt(reader, question, "")
	}

	fmt.Printf("%s: ", question)
	b, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return ""
	}
	return string(b)
}
