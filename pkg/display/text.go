package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/akabei/pkg/core"
	"github.com/arthur-debert/akabei/pkg/errors"
	"github.com/arthur-debert/akabei/pkg/executor"
	"github.com/arthur-debert/akabei/pkg/reconcile"
)

type textRenderer struct {
	w     io.Writer
	style styles
	err   error
}

func newTextRenderer(w io.Writer, plain bool) *textRenderer {
	return &textRenderer{w: w, style: newStyles(w, plain)}
}

// printf records only the first write error
func (r *textRenderer) printf(format string, args ...interface{}) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format, args...)
}

var dispositionMarks = map[reconcile.Disposition]string{
	reconcile.Install: "+",
	reconcile.Upgrade: "~",
	reconcile.Remove:  "-",
}

func (r *textRenderer) disposition(d reconcile.Disposition) string {
	label := fmt.Sprintf("%s %-7s", dispositionMarks[d], d)
	switch d {
	case reconcile.Install:
		return r.style.install.Render(label)
	case reconcile.Upgrade:
		return r.style.upgrade.Render(label)
	default:
		return r.style.remove.Render(label)
	}
}

func (r *textRenderer) RenderResult(result *core.Result) error {
	if result.DryRun {
		r.printf("%s\n\n", r.style.warning.Render("Dry run: nothing was changed (pass --apply to apply)"))
	}

	if len(result.Drifts) > 0 {
		r.printf("%s\n", r.style.heading.Render("Drift"))
		for _, d := range result.Drifts {
			line := fmt.Sprintf("  %s %-7s %s %s",
				r.style.warning.Render("!"), d.Kind, r.style.path.Render(d.Path), r.style.muted.Render("("+d.Package+")"))
			if d.Kind != reconcile.DriftMissing {
				line += r.style.muted.Render(fmt.Sprintf(" %s -> %s", short(d.Expected), short(d.Actual)))
			}
			r.printf("%s\n", line)
		}
		r.printf("\n")
	}

	if len(result.Unmanaged) > 0 {
		r.printf("%s\n", r.style.heading.Render("Unmanaged files to overwrite"))
		for _, path := range result.Unmanaged {
			r.printf("  %s %s\n", r.style.warning.Render("!"), r.style.path.Render(path))
		}
		r.printf("\n")
	}

	if result.Plan.Empty() {
		r.printf("%s\n", r.style.install.Render(
			fmt.Sprintf("Nothing to do, %d package(s) up to date", len(result.Desired.Packages))))
		return r.err
	}

	r.printf("%s\n", r.style.heading.Render("Plan"))
	for _, e := range result.Plan.Entries {
		r.printf("  %s %s\n", r.disposition(e.Disposition), r.style.pkg.Render(e.Name))
	}
	for _, path := range result.Plan.Orphans {
		r.printf("  %s %s\n", r.style.warning.Render("? orphan "), r.style.path.Render(path))
	}
	r.printf("\n")

	if result.Report != nil && len(result.Report.Steps) > 0 {
		r.printf("%s\n", r.style.heading.Render("Steps"))
		for _, step := range result.Report.Steps {
			r.renderStep(step)
		}
		r.printf("\n")
	}

	r.printf("%s\n", r.style.muted.Render(fmt.Sprintf("%d install, %d upgrade, %d remove, %d orphan(s)",
		result.Plan.Count(reconcile.Install),
		result.Plan.Count(reconcile.Upgrade),
		result.Plan.Count(reconcile.Remove),
		len(result.Plan.Orphans))))
	return r.err
}

func (r *textRenderer) renderStep(step executor.Step) {
	subject := step.Path
	if len(step.Command) > 0 {
		subject = strings.Join(step.Command, " ")
	} else {
		subject = r.style.path.Render(subject)
	}
	if step.Phase == executor.PhaseInstall {
		subject += r.style.muted.Render(" mode " + step.Mode.String())
	}

	status := string(step.Status)
	switch step.Status {
	case executor.StatusDone:
		status = r.style.install.Render(status)
	case executor.StatusFailed:
		status = r.style.errStyle.Render(status)
	default:
		status = r.style.muted.Render(status)
	}

	r.printf("  %-12s %-8s %-12s %s\n", step.Phase, status, step.Package, subject)
}

func (r *textRenderer) RenderList(infos []core.PackageInfo) error {
	if len(infos) == 0 {
		r.printf("%s\n", r.style.muted.Render("No packages installed or available"))
		return r.err
	}
	for _, info := range infos {
		mark := r.style.muted.Render("  available")
		switch {
		case info.Installed && !info.Available:
			mark = r.style.warning.Render("! installed, manifest missing")
		case info.Installed:
			mark = r.style.install.Render("* installed")
		}
		r.printf("%-24s %s %s\n", r.style.pkg.Render(info.Name), mark,
			r.style.muted.Render(fmt.Sprintf("(%d files, %d hooks)", info.Files, info.Hooks)))
	}
	return r.err
}

func (r *textRenderer) RenderError(err error) error {
	r.printf("%s %s\n", r.style.errStyle.Render("Error:"), message(err))
	return r.err
}

// message strips the code prefix from akabei errors
func message(err error) string {
	code := errors.GetErrorCode(err)
	msg := err.Error()
	if code != errors.ErrUnknown {
		msg = strings.TrimPrefix(msg, "["+string(code)+"] ")
	}
	return msg
}

func short(hexDigest string) string {
	if len(hexDigest) > 8 {
		return hexDigest[:8]
	}
	return hexDigest
}
