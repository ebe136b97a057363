package display

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/akabei/pkg/core"
	"github.com/arthur-debert/akabei/pkg/errors"
	"github.com/arthur-debert/akabei/pkg/executor"
	"github.com/arthur-debert/akabei/pkg/reconcile"
)

type jsonRenderer struct {
	encoder *json.Encoder
}

func newJSONRenderer(w io.Writer) *jsonRenderer {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return &jsonRenderer{encoder: encoder}
}

type planJSON struct {
	Install []string `json:"install"`
	Upgrade []string `json:"upgrade"`
	Remove  []string `json:"remove"`
	Orphans []string `json:"orphans"`
}

type resultJSON struct {
	DryRun    bool              `json:"dry_run"`
	Saved     bool              `json:"saved"`
	Packages  []string          `json:"packages"`
	Drifts    []reconcile.Drift `json:"drifts"`
	Unmanaged []string          `json:"unmanaged"`
	Plan      planJSON          `json:"plan"`
	Steps     []executor.Step   `json:"steps"`
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func (r *jsonRenderer) RenderResult(result *core.Result) error {
	out := resultJSON{
		DryRun:    result.DryRun,
		Saved:     result.Saved,
		Packages:  nonNil(result.Desired.Names()),
		Drifts:    result.Drifts,
		Unmanaged: nonNil(result.Unmanaged),
		Plan: planJSON{
			Install: []string{},
			Upgrade: []string{},
			Remove:  []string{},
			Orphans: nonNil(result.Plan.Orphans),
		},
		Steps: []executor.Step{},
	}
	if out.Drifts == nil {
		out.Drifts = []reconcile.Drift{}
	}
	for _, e := range result.Plan.Entries {
		switch e.Disposition {
		case reconcile.Install:
			out.Plan.Install = append(out.Plan.Install, e.Name)
		case reconcile.Upgrade:
			out.Plan.Upgrade = append(out.Plan.Upgrade, e.Name)
		case reconcile.Remove:
			out.Plan.Remove = append(out.Plan.Remove, e.Name)
		}
	}
	if result.Report != nil && result.Report.Steps != nil {
		out.Steps = result.Report.Steps
	}
	return r.encoder.Encode(out)
}

func (r *jsonRenderer) RenderList(infos []core.PackageInfo) error {
	if infos == nil {
		infos = []core.PackageInfo{}
	}
	return r.encoder.Encode(map[string]interface{}{"packages": infos})
}

func (r *jsonRenderer) RenderError(err error) error {
	obj := map[string]interface{}{
		"error": message(err),
		"code":  string(errors.GetErrorCode(err)),
	}
	if details := errors.GetErrorDetails(err); len(details) > 0 {
		obj["details"] = details
	}
	return r.encoder.Encode(obj)
}
