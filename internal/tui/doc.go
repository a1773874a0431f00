// Package tui is the interactive terminal runtime of the newspulse client.
//
// The dashboard renders once at startup into a panel. The chat widget is
// toggled with ctrl+o; when it is closed, the number keys ask about the
// listed organizations. Network calls run as tea.Cmds and come back into
// Update as messages, so all widget state changes happen on the Bubble Tea
// loop.
package tui
