package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/arthur-debert/modbisect/pkg/errors"
	"github.com/arthur-debert/modbisect/pkg/logging"
	"github.com/pterm/pterm"
)

type line struct {
	text string
	err  error
}

// Console asks questions on out and reads answers from in, one per line.
type Console struct {
	in     io.Reader
	out    io.Writer
	styled bool

	once  sync.Once
	lines chan line
}

// NewConsole creates a Console. When styled is true the question is
// rendered with pterm styles.
func NewConsole(in io.Reader, out io.Writer, styled bool) *Console {
	return &Console{in: in, out: out, styled: styled}
}

// Ask prints question and waits for a recognised answer. Unrecognised input
// asks again. End of input counts as Abort. When ctx ends first the returned
// error wraps ctx.Err().
func (c *Console) Ask(ctx context.Context, question string) (Answer, error) {
	logger := logging.GetLogger("prompt")

	for {
		c.print(c.question(question))

		text, err := c.readLine(ctx)
		if err == io.EOF {
			logger.Warn().Msg("Input closed, treating as abort")
			return Abort, nil
		}
		if err != nil {
			return Unknown, err
		}

		if answer, ok := ParseAnswer(text); ok {
			logger.Debug().Str("question", question).Stringer("answer", answer).Msg("Answered")
			return answer, nil
		}
		c.print(c.hint())
	}
}

// AskLine prints question and returns the trimmed line the user typed.
func (c *Console) AskLine(ctx context.Context, question string) (string, error) {
	if c.styled {
		c.print(pterm.Bold.Sprint(question) + " ")
	} else {
		c.print(question + " ")
	}
	text, err := c.readLine(ctx)
	if err == io.EOF {
		return "", errors.New(errors.ErrAborted, "input closed")
	}
	if err != nil {
		return "", err
	}
	return strings.Trim(text, "\"'"), nil
}

func (c *Console) question(q string) string {
	if c.styled {
		return fmt.Sprintf("%s %s ", pterm.Bold.Sprint(q), pterm.FgGray.Sprint("[y]es / [n]o / [a]bort:"))
	}
	return q + " [y/n/a]: "
}

func (c *Console) hint() string {
	msg := "Please answer y (yes), n (no) or a (abort)."
	if c.styled {
		return pterm.FgYellow.Sprint(msg) + "\n"
	}
	return msg + "\n"
}

func (c *Console) print(s string) {
	_, _ = io.WriteString(c.out, s)
}

// readLine returns the next input line. The reader goroutine is started on
// first use and outlives a cancelled call, so a later call sees the next
// line rather than losing it.
func (c *Console) readLine(ctx context.Context) (string, error) {
	c.once.Do(func() {
		c.lines = make(chan line)
		go c.read()
	})

	select {
	case <-ctx.Done():
		return "", errors.Wrap(ctx.Err(), errors.ErrInterrupted, "prompt interrupted")
	case l, ok := <-c.lines:
		if !ok {
			return "", io.EOF
		}
		return strings.TrimSpace(l.text), l.err
	}
}

func (c *Console) read() {
	defer close(c.lines)
	reader := bufio.NewReader(c.in)
	for {
		text, err := reader.ReadString('\n')
		if text != "" {
			c.lines <- line{text: text}
		}
		if err != nil {
			if err != io.EOF {
				c.lines <- line{err: errors.Wrap(err, errors.ErrPrompt, "cannot read input")}
			}
			return
		}
	}
}
