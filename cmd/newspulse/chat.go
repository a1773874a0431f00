// ABOUTME: Line-mode chat subcommand driving the chat widget controller
// ABOUTME: Reads lines from stdin, slash commands map onto widget events

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/newspulse/newspulse-client/internal/chat"
)

// lineView prints bot messages as they are appended.
type lineView struct {
	mu      sync.Mutex
	w       io.Writer
	printed int
}

func (v *lineView) Render(w chat.Widget) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, msg := range w.Transcript[v.printed:] {
		if msg.Sender == chat.SenderBot {
			fmt.Fprintf(v.w, "%s %s\n", color.GreenString("bot:"), msg.Text)
		}
	}
	v.printed = len(w.Transcript)
}

func (v *lineView) FocusInput()  {}
func (v *lineView) CaretToEnd()  {}
func (v *lineView) ScrollToEnd() {}

func runChat(ctx context.Context, configPath string, args []string) error {
	fs := flag.NewFlagSet("chat", flag.ExitOnError)
	topic := fs.String("ask", "", "start with a question about this topic")
	_ = fs.Parse(args)

	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := setupLogger(cfg.Logging, os.Stderr)

	client := chat.NewClient(cfg.Backend.BaseURL, nil)
	ctrl := chat.NewController(ctx, chat.NewHandlers(cfg.Backend.PageURL), client, &lineView{w: os.Stdout}, logger)

	fmt.Printf("newspulse chat connected to %s\n", cfg.Backend.BaseURL)
	fmt.Println("Type a message and press Enter. /help for commands. Ctrl+C to quit.")
	fmt.Println()

	if *topic != "" {
		ctrl.Dispatch(chat.AskAbout{Topic: *topic})
	} else {
		ctrl.Dispatch(chat.Toggle{})
	}

	return chatLoop(ctx, ctrl, os.Stdin)
}

func chatLoop(ctx context.Context, ctrl *chat.Controller, in io.Reader) error {
	scanner := bufio.NewScanner(in)

	for {
		w := ctrl.Widget()
		if w.Input.Text != "" {
			fmt.Printf("> %s", w.Input.Text)
		} else {
			fmt.Print("> ")
		}

		// Read input with context awareness
		inputCh := make(chan string, 1)
		errCh := make(chan error, 1)

		go func() {
			if scanner.Scan() {
				inputCh <- scanner.Text()
			} else {
				if err := scanner.Err(); err != nil {
					errCh <- err
				} else {
					errCh <- io.EOF
				}
			}
		}()

		var line string
		select {
		case <-ctx.Done():
			ctrl.Wait()
			return nil
		case err := <-errCh:
			ctrl.Wait()
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		case line = <-inputCh:
		}

		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "/quit" || trimmed == "/exit" || trimmed == "/q":
			ctrl.Wait()
			return nil
		case trimmed == "/help":
			printChatHelp()
			continue
		case trimmed == "/open" || trimmed == "/close":
			open := ctrl.Widget().Open
			if (trimmed == "/open") != open {
				ctrl.Dispatch(chat.Toggle{})
			}
			continue
		case strings.HasPrefix(trimmed, "/ask"):
			ctrl.Dispatch(chat.AskAbout{Topic: strings.TrimSpace(strings.TrimPrefix(trimmed, "/ask"))})
			continue
		}

		if !ctrl.Widget().Open {
			fmt.Println("Chat is closed. /open to reopen.")
			continue
		}

		// A prefilled question is completed by the typed line
		ctrl.Dispatch(chat.Edit{Text: w.Input.Text + line})
		ctrl.Dispatch(chat.Key{Name: "enter"})
		ctrl.Wait()
	}
}

func printChatHelp() {
	fmt.Println("Commands:")
	fmt.Println("  /ask [topic]   Prefill a question about a topic")
	fmt.Println("  /open          Open the chat")
	fmt.Println("  /close         Close the chat (pending replies still arrive)")
	fmt.Println("  /help          Show this help")
	fmt.Println("  /quit          Exit")
}
