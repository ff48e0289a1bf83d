// Package worker runs the stage workers of the preprocessing flow as external commands.
package worker

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"text/template"

	"github.com/pkg/errors"

	"github.com/askiada/go-dataprep/internal/config"
)

var ErrCommandMustBeSet = errors.New("command must be set")

// Command is an external program whose arguments are rendered from the data of a stage.
type Command struct {
	name    string
	program string
	args    []*template.Template
	dir     string
	env     []string
	logger  *slog.Logger
}

// NewCommand parses the argument templates of cfg.
func NewCommand(name string, cfg config.CommandConfig, logger *slog.Logger) (*Command, error) {
	if cfg.Command == "" {
		return nil, errors.Wrap(ErrCommandMustBeSet, name)
	}

	if logger == nil {
		logger = slog.Default()
	}

	cmd := &Command{
		name:    name,
		program: cfg.Command,
		dir:     cfg.Dir,
		env:     cfg.Env,
		logger:  logger.With("worker", name),
	}

	for i, arg := range cfg.Args {
		tpl, err := template.New(name).Option("missingkey=error").Parse(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to parse argument %d of %s", i, name)
		}

		cmd.args = append(cmd.args, tpl)
	}

	return cmd, nil
}

// Args renders the arguments for data. Arguments rendering to an empty string are dropped.
func (c *Command) Args(data any) ([]string, error) {
	args := make([]string, 0, len(c.args))

	for i, tpl := range c.args {
		buf := &bytes.Buffer{}

		err := tpl.Execute(buf, data)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to render argument %d of %s", i, c.name)
		}

		if buf.Len() == 0 {
			continue
		}

		args = append(args, buf.String())
	}

	return args, nil
}

// Run runs the program with the arguments rendered for data and waits for it.
// Output lines are logged at debug level.
func (c *Command) Run(ctx context.Context, data any) error {
	args, err := c.Args(data)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, c.program, args...)
	cmd.Dir = c.dir
	cmd.Env = append(os.Environ(), c.env...)

	stdout := &lineLogger{logger: c.logger, stream: "stdout"}
	stderr := &lineLogger{logger: c.logger, stream: "stderr"}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	c.logger.DebugContext(ctx, "running command", "command", c.program, "args", args)

	err = cmd.Run()

	stdout.flush()
	stderr.flush()

	if err != nil && stderr.last != "" {
		return errors.Wrapf(err, "%s failed: %s", c.name, stderr.last)
	}

	if err != nil {
		return errors.Wrapf(err, "%s failed", c.name)
	}

	return nil
}

// lineLogger logs every complete line written to it.
type lineLogger struct {
	logger  *slog.Logger
	stream  string
	pending []byte
	last    string
}

func (l *lineLogger) Write(p []byte) (int, error) {
	l.pending = append(l.pending, p...)

	for {
		idx := bytes.IndexByte(l.pending, '\n')
		if idx < 0 {
			break
		}

		l.log(string(l.pending[:idx]))
		l.pending = l.pending[idx+1:]
	}

	return len(p), nil
}

func (l *lineLogger) flush() {
	if len(l.pending) > 0 {
		l.log(string(l.pending))
		l.pending = nil
	}
}

func (l *lineLogger) log(line string) {
	line = strings.TrimRight(line, "\r")
	if line == "" {
		return
	}

	l.last = line
	l.logger.Debug(line, "stream", l.stream)
}
