package envpanel

import (
	"fmt"
	"strings"

	"envmanager/internal/api"
	"envmanager/internal/client"
	"envmanager/internal/view"
)

const (
	placeholder = "—"
	barCells    = 30

	// OtherNodesToggleID and OtherNodesID identify the collapsible list in a rendered body.
	OtherNodesToggleID = "em-other-toggle"
	OtherNodesID       = "em-other-nodes"
)

// RenderInput is everything one render pass needs. A nil pointer means the
// section's data did not arrive.
type RenderInput struct {
	Runtime           *api.RuntimeInfo
	RuntimeError      *api.ErrorPayload
	Environments      *api.EnvironmentsReport
	EnvironmentsError *api.ErrorPayload
}

// InputFromStatus converts a fetched status into render input.
func InputFromStatus(status client.Status) RenderInput {
	var in RenderInput
	if status.Runtime.OK() {
		info := api.NewRuntimeInfo(*status.Runtime.Data)
		in.Runtime = &info
	} else {
		in.RuntimeError = status.Runtime.Failure
	}
	if status.Environments.OK() {
		report := api.NewEnvironmentsReport(*status.Environments.Data)
		in.Environments = &report
	} else {
		in.EnvironmentsError = status.Environments.Failure
	}
	return in
}

// Header builds the dialog title bar.
func Header() *view.Node {
	return view.El("div.em-header",
		view.El("span.em-header-title",
			view.El("span.em-header-icon", "⚙️"),
			view.El("span", "Environment Manager"),
		),
		view.El("span.em-header-actions",
			view.El("button.em-header-btn", view.Attrs{"title": "Refresh", "key": "r"}, "↻ Refresh"),
			view.El("button.em-header-btn", view.Attrs{"title": "Close", "key": "esc"}, "✕"),
		),
	)
}

// LoadingBody is the placeholder shown while both requests are in flight.
func LoadingBody() *view.Node {
	return view.El("div.em-body", view.El("div.em-loading", "Loading environment info..."))
}

// NetworkErrorBody replaces the whole body when a request never completed.
func NetworkErrorBody(err error) *view.Node {
	return view.El("div.em-body", view.El("div.em-error", fmt.Sprintf("Network error: %v", err)))
}

// Render builds the dialog body. Sections always appear in the order
// Main Environment, GPU(s), Node Environments.
func Render(in RenderInput) *view.Node {
	var sections []*view.Node

	switch {
	case in.RuntimeError != nil:
		msg := in.RuntimeError.Error
		if msg == "" {
			msg = "Failed to detect environment"
		}
		sections = append(sections, section("Main Environment", view.El("div.em-error", msg)))
	case in.Runtime != nil:
		sections = append(sections, runtimeSection(in.Runtime), gpuSection(in.Runtime.GPUs))
	}

	switch {
	case in.EnvironmentsError != nil:
		msg := in.EnvironmentsError.Error
		if msg == "" {
			msg = "Failed to list node environments"
		}
		sections = append(sections, section("Node Environments", view.El("div.em-error", msg)))
	case in.Environments != nil:
		sections = append(sections, environmentsSection(in.Environments))
	}

	return view.El("div.em-body", sections)
}

func section(title string, children ...*view.Node) *view.Node {
	return view.El("div.em-section", view.El("div.em-section-title", title), children)
}

func kvRow(label, value string) *view.Node {
	return view.El("div.em-kv-row",
		view.El("span.em-kv-label", label),
		view.El("span.em-kv-value", value),
	)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func runtimeSection(rt *api.RuntimeInfo) *view.Node {
	osLine := fmt.Sprintf("%s (%s)", orDefault(rt.OSName, placeholder), orDefault(rt.Platform, placeholder))
	return section("Main Environment", view.El("div.em-kv-grid",
		kvRow("Python", orDefault(rt.PythonVersion, placeholder)),
		kvRow("PyTorch", orDefault(rt.FrameworkVersion, "not installed")),
		kvRow("CUDA", orDefault(rt.AcceleratorRuntimeVersion, "CPU only")),
		kvRow("OS", osLine),
		kvRow("comfy-env", orDefault(rt.ExtensionVersion, placeholder)),
		kvRow("Detection", orDefault(rt.GPUDetectionMethod, placeholder)),
	))
}

func gpuSection(gpus []api.GPUInfo) *view.Node {
	if len(gpus) == 0 {
		return section("GPU", view.El("div.em-muted", "No GPU detected"))
	}
	title := "GPU"
	if len(gpus) > 1 {
		title = "GPUs"
	}
	cards := make([]*view.Node, 0, len(gpus))
	for _, g := range gpus {
		cards = append(cards, gpuCard(g))
	}
	return section(title, cards...)
}

func gpuCard(g api.GPUInfo) *view.Node {
	arch := orDefault(g.Architecture, placeholder)
	if g.HasComputeCapability {
		arch = fmt.Sprintf("%s (sm_%d%d)", arch, g.ComputeCapabilityMajor, g.ComputeCapabilityMinor)
	}
	vram := ComputeVRAM(g.VRAMTotalMB, g.VRAMFreeMB)

	return view.El("div.em-gpu-card",
		view.El("div.em-gpu-name", fmt.Sprintf("GPU %d: %s", g.Index, orDefault(g.Name, placeholder))),
		view.El("div.em-gpu-details",
			kvRow("Architecture", arch),
			kvRow("Driver", orDefault(g.DriverVersion, placeholder)),
		),
		view.El("div.em-vram-container",
			view.El("div.em-vram-label",
				fmt.Sprintf("VRAM: %s / %s GB used (%s GB free)", vram.UsedGB, vram.TotalGB, vram.FreeGB)),
			vramBar(vram),
		),
		precisionRow(g.Precision),
	)
}

func vramBar(v VRAM) *view.Node {
	filled := int(v.UsedPct/100*barCells + 0.5)
	return view.El("div.em-vram-bar", view.Attrs{"percent": fmt.Sprintf("%.1f", v.UsedPct)},
		view.El("span.em-vram-fill."+string(v.Tier), strings.Repeat("█", filled)),
		view.El("span.em-vram-track", strings.Repeat("░", barCells-filled)),
	)
}

func precisionRow(p api.Precision) *view.Node {
	badges := []struct {
		name string
		on   bool
	}{
		{"fp16", p.FP16},
		{"bf16", p.BF16},
		{"tf32", p.TF32},
		{"fp8", p.FP8E4M3},
		{"int8 TC", p.INT8TensorCore},
	}

	row := view.El("div.em-precision-row", view.El("span.em-precision-label", "Precision:"))
	for _, b := range badges {
		cls := "span.em-badge.em-badge-off"
		if b.on {
			cls = "span.em-badge.em-badge-on"
		}
		row.Children = append(row.Children, view.El(cls, b.name))
	}
	return row
}

func environmentsSection(report *api.EnvironmentsReport) *view.Node {
	if len(report.NodeEnvironments) == 0 {
		return section("Node Environments", view.El("div.em-muted", "No custom nodes loaded"))
	}

	var configured, others []*view.Node
	for _, env := range report.NodeEnvironments {
		if env.HasConfig {
			configured = append(configured, nodeEntry(env))
		} else {
			others = append(others, nodeEntry(env))
		}
	}

	children := configured
	if len(others) > 0 {
		toggle := view.El("div.em-toggle#"+OtherNodesToggleID,
			view.Attrs{"count": fmt.Sprint(len(others))},
			toggleLabel(len(others), false))
		container := view.El("div.em-other#"+OtherNodesID, others)
		container.Hidden = true
		children = append(children, toggle, container)
	}

	if n := len(report.CacheEnvironments); n > 0 {
		plural := "s"
		if n == 1 {
			plural = ""
		}
		children = append(children, view.El("div.em-cache",
			fmt.Sprintf("Cache: %s (%d environment%s)", report.CacheDir, n, plural)))
	}

	return section("Node Environments", children...)
}

func toggleLabel(count int, expanded bool) string {
	if expanded {
		return fmt.Sprintf("▼ Other nodes (%d)", count)
	}
	return fmt.Sprintf("▶ Other nodes (%d)", count)
}

// ToggleOtherNodes flips the "Other nodes" list in a rendered body and
// updates the toggle label. It returns false when body has no such list.
func ToggleOtherNodes(body *view.Node) bool {
	if body == nil {
		return false
	}
	toggle := body.FindByID(OtherNodesToggleID)
	container := body.FindByID(OtherNodesID)
	if toggle == nil || container == nil {
		return false
	}
	container.Hidden = !container.Hidden
	toggle.SetText(toggleLabel(len(container.Children), !container.Hidden))
	return true
}

func mark(ok bool) *view.Node {
	if ok {
		return view.El("span.em-check", "✓")
	}
	return view.El("span.em-cross", "✗")
}

func detail(ok bool, text string) *view.Node {
	return view.El("div.em-node-detail", mark(ok), view.El("span", text))
}

func nodeEntry(env api.NodeEnvironment) *view.Node {
	entry := view.El("div.em-node-entry", view.El("div.em-node-name", env.NodeName))

	if env.HasConfig {
		entry.Children = append(entry.Children,
			detail(true, fmt.Sprintf("Config: %s (%s)", orDefault(env.ConfigType, placeholder), api.BaseName(env.ConfigPath))))

		envText := "Env: not installed (run comfy-env install)"
		if env.HasEnv {
			envText = "Env: " + orDefault(api.BaseName(env.EnvDir), "installed")
		}
		entry.Children = append(entry.Children, detail(env.HasEnv, envText))
	} else {
		entry.Children = append(entry.Children, detail(false, "No comfy-env config"))
	}

	for _, sub := range env.IsolatedSubdirs {
		status := "(not installed)"
		if sub.HasEnv {
			status = "(" + orDefault(api.BaseName(sub.EnvDir), "installed") + ")"
		}
		entry.Children = append(entry.Children,
			view.El("div.em-node-sub", detail(sub.HasEnv, sub.Subdir+" "+status)))
	}

	return entry
}
