package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

// getStatus renders the prompt decoration: the username and role of the
// verified identity, or nothing while anonymous.
func (a *App) getStatus() string {
	identity := a.session.CurrentIdentity()
	if identity == nil {
		return ""
	}
	if identity.IsAdmin() {
		return fmt.Sprintf("(%s admin) ", identity.Username)
	}
	return fmt.Sprintf("(%s) ", identity.Username)
}

// Root verifies any persisted token, then hands control to the REPL. A
// stored token that fails verification is cleared silently: the user simply
// finds themselves on the login surface.
func (a *App) Root(ctx context.Context) {
	printlnFn("LesVieux portal (type 'help' for commands)")

	if a.session.Verify(ctx) {
		identity := a.session.CurrentIdentity()
		printlnFn("Welcome back,", identity.Username)
	} else if a.session.FirstSetupRequired(ctx) {
		printlnFn("The platform has no accounts yet. Run 'init' to create the first one.")
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
