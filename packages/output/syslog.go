//go:build !windows

package output

import (
	"fmt"
	"log/syslog"

	"github.com/specrun/specrun/packages/core/runner"
)

// syslogConn is the subset of *syslog.Writer the extension needs,
// extracted so tests can record messages without a syslog daemon.
type syslogConn interface {
	Info(m string) error
	Err(m string) error
	Close() error
}

// SyslogWriter logs run and scenario outcomes to the local syslog,
// tagged with the run marker so a run's lines can be correlated with
// its other artifacts.
type SyslogWriter struct {
	runner.BaseExtension

	conn   syslogConn
	marker string
}

func NewSyslogWriter() (*SyslogWriter, error) {
	conn, err := syslog.New(syslog.LOG_INFO|syslog.LOG_USER, "specrun")
	if err != nil {
		return nil, fmt.Errorf("connecting to syslog: %w", err)
	}
	return &SyslogWriter{conn: conn}, nil
}

func (s *SyslogWriter) RunStarted(marker string) {
	s.marker = marker
	_ = s.conn.Info(fmt.Sprintf("run %s started", marker))
}

func (s *SyslogWriter) ScenarioFinished(result *runner.ScenarioResult) {
	msg := fmt.Sprintf("run %s scenario %d %q %s",
		s.marker, result.Scenario.ID, result.Scenario.Name, scenarioStatus(result))
	if result.Passed || result.Skipped {
		_ = s.conn.Info(msg)
	} else {
		_ = s.conn.Err(msg)
	}
}

func (s *SyslogWriter) RunFinished(summary *runner.Summary) {
	_ = s.conn.Info(fmt.Sprintf("run %s finished: %d passed, %d failed, %d skipped",
		s.marker, summary.Passed, summary.Failed, summary.Skipped))
	_ = s.conn.Close()
}
