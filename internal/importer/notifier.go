package importer

import "log"

// StandardNotifier routes parser dialogs to the application log and answers
// questions with a fixed default. The HTTP front end has nobody to block on, so
// imports run unattended; an interactive shell can substitute its own Notifier.
type StandardNotifier struct {
	// DefaultAnswer is returned for every question, e.g. "continue past a
	// failed table?".
	DefaultAnswer bool
}

// ShowMessage logs the batched diagnostics of one table.
func (n *StandardNotifier) ShowMessage(title, message, buttonLabel string) {
	log.Printf("[%s] %s", title, message)
}

// ShowQuestion logs the question and answers with the configured default.
func (n *StandardNotifier) ShowQuestion(title, message, yesLabel, noLabel string) bool {
	answer := noLabel
	if n.DefaultAnswer {
		answer = yesLabel
	}
	log.Printf("[%s] %s -> %s", title, message, answer)
	return n.DefaultAnswer
}
