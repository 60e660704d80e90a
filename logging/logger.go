package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gosuri/uilive"
)

// Record is written at the end of a logged episode
type Record struct {
	Steps         int     `json:"steps"`
	Episode       int     `json:"episode"`
	TotalReturn   float64 `json:"total_return"`
	EpisodeLen    int     `json:"episode_len"`
	EpisodeReturn float64 `json:"episode_return"`
}

func (r Record) String() string {
	fields := []string{
		fmt.Sprintf("steps = %d", r.Steps),
		fmt.Sprintf("episode = %d", r.Episode),
		fmt.Sprintf("total_return = %.3f", r.TotalReturn),
		fmt.Sprintf("episode_len = %d", r.EpisodeLen),
		fmt.Sprintf("episode_return = %.3f", r.EpisodeReturn),
	}
	return strings.Join(fields, " | ")
}

type Logger interface {
	Write(Record) error
}

// TerminalLogger prints one line per record
type TerminalLogger struct {
	out io.Writer
}

var _ Logger = &TerminalLogger{}

func NewTerminalLogger(out io.Writer) *TerminalLogger {
	return &TerminalLogger{
		out: out,
	}
}

func (t *TerminalLogger) Write(r Record) error {
	_, err := fmt.Fprintln(t.out, r.String())
	return err
}

// LiveTerminalLogger redraws the latest record in place
type LiveTerminalLogger struct {
	writer *uilive.Writer
}

var _ Logger = &LiveTerminalLogger{}

// NewLiveTerminalLogger writes to out, or to stdout when out is nil
func NewLiveTerminalLogger(out io.Writer) *LiveTerminalLogger {
	writer := uilive.New()
	if out != nil {
		writer.Out = out
	}
	return &LiveTerminalLogger{
		writer: writer,
	}
}

func (l *LiveTerminalLogger) Start() {
	l.writer.Start()
}

// Stop flushes the last record, only call it after Start
func (l *LiveTerminalLogger) Stop() {
	l.writer.Stop()
}

func (l *LiveTerminalLogger) Write(r Record) error {
	if _, err := fmt.Fprintln(l.writer, r.String()); err != nil {
		return err
	}
	return l.writer.Flush()
}

// SlogLogger emits records as structured log entries
type SlogLogger struct {
	logger *slog.Logger
	level  slog.Level
}

var _ Logger = &SlogLogger{}

func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogLogger{
		logger: logger,
		level:  slog.LevelInfo,
	}
}

func (s *SlogLogger) Write(r Record) error {
	s.logger.LogAttrs(context.Background(), s.level, "episode finished",
		slog.Int("steps", r.Steps),
		slog.Int("episode", r.Episode),
		slog.Float64("total_return", r.TotalReturn),
		slog.Int("episode_len", r.EpisodeLen),
		slog.Float64("episode_return", r.EpisodeReturn),
	)
	return nil
}
