// Package output renders chipbuild results for terminals, plain text, and
// JSON consumers. Styled output applies the semantic styles from
// pkg/output/styles; plain text keeps the same layout without ANSI codes.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/chipbuild/chipbuild/pkg/builder"
	"github.com/chipbuild/chipbuild/pkg/errors"
	"github.com/chipbuild/chipbuild/pkg/output/styles"
)

// BuildResult captures the outcome of one target's build for summary
// rendering.
type BuildResult struct {
	Target   string
	Err      error
	Duration time.Duration
}

// Renderer writes formatted chipbuild output.
type Renderer struct {
	writer io.Writer
	format Format
}

// NewRenderer creates a Renderer for the given writer. FormatAuto resolves
// against the writer's terminal capabilities; non-file writers fall back to
// plain text.
func NewRenderer(w io.Writer, format Format) *Renderer {
	if format == FormatAuto {
		if f, ok := w.(*os.File); ok {
			format = DetectFormat(f)
		} else {
			format = FormatText
		}
	}
	return &Renderer{writer: w, format: format}
}

// Format returns the resolved output format.
func (r *Renderer) Format() Format {
	return r.format
}

// RenderTargets writes the list of buildable target names.
func (r *Renderer) RenderTargets(names []string) error {
	if r.format == FormatJSON {
		return r.renderJSON(map[string]interface{}{"targets": names})
	}

	header := "Available targets:"
	if r.format == FormatTerminal {
		header = styles.GetStyle("Header").Render(header)
	}
	if _, err := fmt.Fprintln(r.writer, header); err != nil {
		return err
	}

	for _, name := range names {
		line := "  " + name
		if r.format == FormatTerminal {
			line = "  " + styles.GetStyle("Target").Render(name)
		}
		if _, err := fmt.Fprintln(r.writer, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderArtifacts writes a target's artifact map, logical name first.
func (r *Renderer) RenderArtifacts(identifier string, artifacts builder.ArtifactMap) error {
	if r.format == FormatJSON {
		return r.renderJSON(map[string]interface{}{
			"target":    identifier,
			"artifacts": artifacts,
		})
	}

	header := fmt.Sprintf("Artifacts for %s:", identifier)
	if r.format == FormatTerminal {
		header = styles.GetStyle("Header").Render("Artifacts for ") +
			styles.GetStyle("Target").Render(identifier) +
			styles.GetStyle("Header").Render(":")
	}
	if _, err := fmt.Fprintln(r.writer, header); err != nil {
		return err
	}

	names := make([]string, 0, len(artifacts))
	for name := range artifacts {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		line := fmt.Sprintf("  %s -> %s", name, artifacts[name])
		if r.format == FormatTerminal {
			line = "  " + styles.GetStyle("Artifact").Render(name) +
				" -> " + styles.GetStyle("Path").Render(artifacts[name])
		}
		if _, err := fmt.Fprintln(r.writer, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderSummary writes per-target build outcomes and returns nothing more;
// callers decide the process exit status from the results themselves.
func (r *Renderer) RenderSummary(results []BuildResult) error {
	if r.format == FormatJSON {
		type jsonResult struct {
			Target     string `json:"target"`
			Status     string `json:"status"`
			DurationMS int64  `json:"duration_ms"`
			Error      string `json:"error,omitempty"`
		}
		out := make([]jsonResult, len(results))
		for i, res := range results {
			out[i] = jsonResult{
				Target:     res.Target,
				Status:     "ok",
				DurationMS: res.Duration.Milliseconds(),
			}
			if res.Err != nil {
				out[i].Status = "failed"
				out[i].Error = res.Err.Error()
			}
		}
		return r.renderJSON(map[string]interface{}{"results": out})
	}

	for _, res := range results {
		var line string
		switch {
		case res.Err == nil && r.format == FormatTerminal:
			line = fmt.Sprintf("%s %s (%s)",
				styles.GetStyle("Success").Render("✓"),
				styles.GetStyle("Target").Render(res.Target),
				res.Duration.Round(time.Millisecond))
		case res.Err == nil:
			line = fmt.Sprintf("ok     %s (%s)", res.Target, res.Duration.Round(time.Millisecond))
		case r.format == FormatTerminal:
			line = fmt.Sprintf("%s %s (%s): %v",
				styles.GetStyle("Error").Render("✗"),
				styles.GetStyle("Target").Render(res.Target),
				res.Duration.Round(time.Millisecond), res.Err)
		default:
			line = fmt.Sprintf("failed %s (%s): %v", res.Target, res.Duration.Round(time.Millisecond), res.Err)
		}
		if _, err := fmt.Fprintln(r.writer, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderError writes an error with appropriate styling. Coded errors show
// their code in muted text.
func (r *Renderer) RenderError(err error) error {
	if r.format == FormatJSON {
		payload := map[string]interface{}{"error": err.Error()}
		if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
			payload["code"] = string(code)
		}
		return r.renderJSON(payload)
	}

	prefix := "Error:"
	if r.format == FormatTerminal {
		prefix = styles.GetStyle("Error").Render("Error:")
	}

	line := fmt.Sprintf("%s %v", prefix, err)
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown && r.format == FormatTerminal {
		line += " " + styles.GetStyle("Muted").Render("["+string(code)+"]")
	}

	_, writeErr := fmt.Fprintln(r.writer, line)
	return writeErr
}

// RenderMessage renders a simple message with optional styling
func (r *Renderer) RenderMessage(styleName, message string) error {
	if r.format == FormatTerminal {
		message = styles.GetStyle(styleName).Render(message)
	}
	_, err := fmt.Fprintln(r.writer, message)
	return err
}

func (r *Renderer) renderJSON(payload interface{}) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "failed to encode output")
	}
	_, writeErr := fmt.Fprintln(r.writer, string(data))
	return writeErr
}
