package scanner

import (
	"bufio"
	"context"
	"io"
	"strings"

	"go.uber.org/zap"
)

// Command is a single-letter interactive control instruction.
type Command byte

const (
	CmdQuit      Command = 'q'
	CmdPause     Command = 'p'
	CmdStatus    Command = 's'
	CmdIntegrity Command = 'i'
	CmdMetrics   Command = 'm'
	CmdQueue     Command = 'u'
	CmdHelp      Command = 'h'
)

// Console reads commands line by line and forwards them to the service.
// Unknown input is forwarded too; the service answers it with the help text.
type Console struct {
	input    io.Reader
	commands chan<- Command
	logger   *zap.Logger
}

func NewConsole(input io.Reader, commands chan<- Command, logger *zap.Logger) *Console {
	return &Console{
		input:    input,
		commands: commands,
		logger:   logger,
	}
}

func (c *Console) Run(ctx context.Context) {
	scanner := bufio.NewScanner(c.input)
	for scanner.Scan() {
		line := strings.TrimSpace(strings.ToLower(scanner.Text()))
		if line == "" {
			continue
		}
		cmd := Command(line[0])
		select {
		case c.commands <- cmd:
		case <-ctx.Done():
			return
		}
		if cmd == CmdQuit {
			return
		}
	}
	if err := scanner.Err(); err != nil {
		c.logger.Warn("console input closed", zap.Error(err))
	}
}
