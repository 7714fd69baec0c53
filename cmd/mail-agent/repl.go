package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

type promptProcessor interface {
	ProcessPrompt(ctx context.Context, prompt string) (bool, string)
}

const welcomeBanner = `Welcome to the Email Agent!
Please enter your email prompt (or 'x' to exit):

Example format:
send a mail to example@email.com subject:Your Subject content:Your message content`

// runPrompt runs the blocking read-evaluate loop: one utterance per
// line, processed start to finish before the next is accepted. The
// literal input "x" (any case) ends the session immediately; every
// other line is processed and its outcome printed. A bad utterance
// never terminates the loop.
func runPrompt(ctx context.Context, in io.Reader, out io.Writer, proc promptProcessor) error {
	fmt.Fprintln(out, welcomeBanner)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "\nYour prompt: ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(line, "x") {
			fmt.Fprintln(out, "Goodbye!")
			return nil
		}

		ok, msg := proc.ProcessPrompt(ctx, line)

		status := "Failed"
		if ok {
			status = "Success"
		}
		fmt.Fprintf(out, "\nStatus: %s\n", status)
		fmt.Fprintf(out, "Message: %s\n", msg)
	}

	return scanner.Err()
}
