package app

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/faasbench/internal/core/domain"
	"go.trai.ch/faasbench/internal/ui/output"
	"go.trai.ch/faasbench/internal/ui/style"
)

// secretKeys are masked when a configuration is printed.
var secretKeys = map[string]bool{
	"access_key": true,
	"secret_key": true,
}

func (a *App) renderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(a.out)
	r.SetColorProfile(output.ColorProfile())
	return r
}

func (a *App) writeJSON(v any) {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		a.logger.Error(err)
	}
}

type functionReport struct {
	Function string         `json:"function"`
	Runtime  string         `json:"runtime"`
	Memory   int            `json:"memory"`
	Updated  bool           `json:"updated"`
	Trigger  map[string]any `json:"trigger"`
}

func (a *App) reportFunction(fn *domain.Function, t domain.Trigger) {
	report := functionReport{
		Function: fn.Name,
		Runtime:  fn.Config.Runtime,
		Memory:   fn.Config.MemoryMB,
		Updated:  fn.UpdatedCode,
		Trigger:  t.Serialize(),
	}
	if a.json {
		a.writeJSON(report)
		return
	}

	r := a.renderer()
	state := "up to date"
	if fn.UpdatedCode {
		state = "updated"
	}
	_, _ = fmt.Fprintf(a.out, "%s %s %s\n",
		style.Success.Renderer(r).Render(style.Check),
		style.Heading.Renderer(r).Render(fn.Name),
		style.Key.Renderer(r).Render(fmt.Sprintf("(%s, %d MB, %s)", fn.Config.Runtime, fn.Config.MemoryMB, state)))
	_, _ = fmt.Fprintf(a.out, "  %s %s\n", style.Key.Renderer(r).Render(t.Type().String()+":"), triggerTarget(t))
}

func triggerTarget(t domain.Trigger) string {
	blob := t.Serialize()
	for _, key := range []string{"url", "function", "name"} {
		if v, ok := blob[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

type resultReport struct {
	Repetition int            `json:"repetition"`
	RequestID  string         `json:"request_id"`
	StatusCode int            `json:"status_code"`
	ClientTime int64          `json:"client_time_us"`
	Output     map[string]any `json:"output,omitempty"`
}

func (a *App) reportResults(fn *domain.Function, results []domain.ExecutionResult) {
	reports := make([]resultReport, 0, len(results))
	for i, res := range results {
		reports = append(reports, resultReport{
			Repetition: i,
			RequestID:  res.RequestID,
			StatusCode: res.StatusCode,
			ClientTime: res.ClientTime().Microseconds(),
			Output:     res.Output,
		})
	}
	if a.json {
		a.writeJSON(map[string]any{"function": fn.Name, "results": reports})
		return
	}

	r := a.renderer()
	key := style.Key.Renderer(r)
	for _, rep := range reports {
		if rep.StatusCode == 0 {
			_, _ = fmt.Fprintf(a.out, "%s %s\n", style.Failure.Renderer(r).Render(style.Cross),
				key.Render(fmt.Sprintf("#%d failed", rep.Repetition)))
			continue
		}
		_, _ = fmt.Fprintf(a.out, "%s %s %s %s\n",
			style.Success.Renderer(r).Render(style.Check),
			key.Render(fmt.Sprintf("#%d", rep.Repetition)),
			rep.RequestID,
			key.Render(fmt.Sprintf("status=%d client_time=%dus", rep.StatusCode, rep.ClientTime)))
	}
}

// renderTree writes tree as an indented key listing, masking secrets.
func renderTree(w io.Writer, r *lipgloss.Renderer, tree map[string]any, depth int) {
	key := style.Key.Renderer(r)
	secret := style.Secret.Renderer(r)
	indent := strings.Repeat("  ", depth)

	for _, k := range slices.Sorted(maps.Keys(tree)) {
		switch v := tree[k].(type) {
		case map[string]any:
			_, _ = fmt.Fprintf(w, "%s%s\n", indent, key.Render(k+":"))
			renderTree(w, r, v, depth+1)
		default:
			value := fmt.Sprint(v)
			if secretKeys[k] {
				value = secret.Render(mask(value))
			}
			_, _ = fmt.Fprintf(w, "%s%s %s\n", indent, key.Render(k+":"), value)
		}
	}
}

// maskTree returns a copy of tree with secrets masked.
func maskTree(tree map[string]any) map[string]any {
	out := make(map[string]any, len(tree))
	for k, v := range tree {
		switch v := v.(type) {
		case map[string]any:
			out[k] = maskTree(v)
		default:
			if secretKeys[k] {
				out[k] = mask(fmt.Sprint(v))
				continue
			}
			out[k] = v
		}
	}
	return out
}

func mask(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return s[:4] + strings.Repeat("*", len(s)-4)
}
