package deploy

import (
	"errors"
	"math"

	"github.com/tidwall/gjson"
)

// successFields are the response fields that signal success. The backend
// has shipped with the misspelled "succes", so both are accepted.
var successFields = []string{"success", "succes"}

// normalizeSubmitResponse maps a /build/lambda response body to a result.
// Bodies that are not JSON, or are JSON null, count as transport failures.
func normalizeSubmitResponse(body []byte) SubmitResult {
	if !gjson.ValidBytes(body) {
		return SubmitResult{Message: MsgSubmitFailed}
	}
	doc := gjson.ParseBytes(body)
	if doc.Type == gjson.Null {
		return SubmitResult{Message: MsgSubmitFailed}
	}
	for _, field := range successFields {
		if truthy(doc.Get(field)) {
			return SubmitResult{OK: true}
		}
	}
	if e := doc.Get("error"); truthy(e) {
		return SubmitResult{Message: e.String()}
	}
	return SubmitResult{Message: MsgBuildFailed}
}

// truthy follows JavaScript truthiness, which is what the backend's other
// clients apply to these fields.
func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.True:
		return true
	case gjson.Number:
		return r.Num != 0 && !math.IsNaN(r.Num)
	case gjson.String:
		return r.Str != ""
	case gjson.JSON:
		return true
	default:
		return false
	}
}

var errNullBody = errors.New("response body is null")

// parseApps extracts the apps array from a /apps response body. A missing
// or non-array "apps" yields an empty slice. Entries that are not objects
// are skipped.
func parseApps(body []byte) ([]DeployedApp, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("response body is not valid JSON")
	}
	doc := gjson.ParseBytes(body)
	if doc.Type == gjson.Null {
		return nil, errNullBody
	}
	list := doc.Get("apps")
	if !list.IsArray() {
		return []DeployedApp{}, nil
	}
	apps := make([]DeployedApp, 0, len(list.Array()))
	list.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			return true
		}
		app := DeployedApp{
			AppName:   item.Get("app_name").String(),
			URL:       item.Get("url").String(),
			Port:      int(item.Get("port").Int()),
			Framework: item.Get("framework").String(),
			Status:    item.Get("status").String(),
			EnvVars:   map[string]string{},
		}
		if env := item.Get("env_vars"); env.IsObject() {
			env.ForEach(func(k, v gjson.Result) bool {
				app.EnvVars[k.String()] = v.String()
				return true
			})
		}
		apps = append(apps, app)
		return true
	})
	return apps, nil
}
