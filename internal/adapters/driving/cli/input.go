package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// dateLayout is the layout of every date flag.
const dateLayout = "2006-01-02"

// lineReaders keeps one buffered reader per input so consecutive prompts
// do not lose buffered lines.
var lineReaders = map[io.Reader]*bufio.Reader{}

func lineReader(cmd *cobra.Command) *bufio.Reader {
	in := cmd.InOrStdin()
	if r, ok := lineReaders[in]; ok {
		return r
	}
	r := bufio.NewReader(in)
	lineReaders[in] = r
	return r
}

//nolint:errcheck // CLI helper, error ignored for UX
func prompt(cmd *cobra.Command, label string) string {
	fmt.Fprint(cmd.ErrOrStderr(), label)
	input, _ := lineReader(cmd).ReadString('\n')
	return strings.TrimSpace(input)
}

// readPassword reads without echo from a terminal and falls back to a
// plain line read.
//
//nolint:errcheck // CLI helper, error ignored for UX
func readPassword(cmd *cobra.Command, label string) string {
	fmt.Fprint(cmd.ErrOrStderr(), label)
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err == nil {
			return string(password)
		}
	}
	input, _ := lineReader(cmd).ReadString('\n')
	return strings.TrimRight(input, "\r\n")
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", value)
	}
	return t, nil
}

// optionalDate parses a date flag, nil when empty.
func optionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := parseDate(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseAmount(name, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(value, ",", "."))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q", name, value)
	}
	return d, nil
}
