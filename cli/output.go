package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beka-birhanu/mazebot/board"
	"github.com/beka-birhanu/mazebot/simulation"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

var ErrUnknownFormat = errors.New("unknown output format")

func validFormat(f string) bool {
	return f == formatText || f == formatJSON || f == formatYAML
}

// writeResult prints res in the requested format. The text format also draws
// the board with the robot where it stopped.
func writeResult(w io.Writer, format string, b *board.Board, res simulation.Result) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	case formatText:
		return writeText(w, b, res)
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}

func writeText(w io.Writer, b *board.Board, res simulation.Result) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "run      %s\n", res.ID)
	fmt.Fprintf(&sb, "outcome  %s\n", res.Outcome)
	fmt.Fprintf(&sb, "steps    %d\n", res.Steps)
	fmt.Fprintf(&sb, "bumps    %d\n", res.Bumps)
	fmt.Fprintf(&sb, "duration %s\n", res.Duration)
	if res.Reason != "" {
		fmt.Fprintf(&sb, "reason   %s\n", res.Reason)
	}
	sb.WriteString("\n")
	sb.WriteString(b.String())
	if !strings.HasSuffix(sb.String(), "\n") {
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
