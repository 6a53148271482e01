package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var errEmptyPassword = errors.New("password is required")

// PromptPassword asks for a password on stdin. Echo is disabled when stdin is
// a terminal; piped input is read as a plain line.
func PromptPassword(stdin *os.File, out io.Writer, prompt string) (string, error) {
	if stdin == nil {
		return "", errors.New("stdin unavailable")
	}
	fmt.Fprint(out, prompt)

	if restore, err := disableEcho(stdin); err == nil {
		defer func() {
			restore()
			fmt.Fprintln(out)
		}()
	}

	line, err := readLine(stdin)
	if err != nil {
		return "", err
	}
	password := strings.TrimSpace(line)
	if password == "" {
		return "", errEmptyPassword
	}
	return password, nil
}

func readLine(in io.Reader) (string, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
