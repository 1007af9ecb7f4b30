// Package bootstrap implements the interactive first-run admin creation flow.
package bootstrap

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// PromptAdmin asks for the admin username and a twice-entered password (read
// without echo) and returns the pair. It re-prompts until both password
// entries match.
func PromptAdmin(r *bufio.Reader, w io.Writer) (username, password string, err error) {
	fmt.Fprintln(w, "Creating admin user.....")

	username, err = readLine(r, "Enter admin username: ", w)
	if err != nil {
		return "", "", err
	}
	if username == "" {
		return "", "", errors.New("admin username must not be empty")
	}

	for {
		first, err := readSecret("Enter your new password: ", w)
		if err != nil {
			return "", "", err
		}
		second, err := readSecret("Enter your new password again: ", w)
		if err != nil {
			return "", "", err
		}
		if first == second {
			if first == "" {
				return "", "", errors.New("admin password must not be empty")
			}
			return username, first, nil
		}
		fmt.Fprintln(w, "Your passwords do not match try again")
	}
}

func readLine(r *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return "", err
	}
	line, err := r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func readSecret(prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return "", err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}
