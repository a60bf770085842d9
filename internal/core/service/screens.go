package service

import (
	"strings"

	"github.com/jobportal/portal-client/internal/core/guard"
)

// HookCall is one fetch hook a screen runs on mount.
type HookCall struct {
	Hook string `json:"hook"`
	ID   string `json:"id,omitempty"`
}

// ScreenHooks returns the fetch hooks the screen at path runs when mounted.
func ScreenHooks(path string) []HookCall {
	path = guard.Clean(path)
	seg := strings.Split(strings.TrimPrefix(path, "/"), "/")

	switch {
	case path == guard.PathHome, path == guard.PathJobs, path == guard.PathBrowse:
		return []HookCall{{Hook: HookJobs}}
	case path == guard.PathProfile:
		return []HookCall{{Hook: HookAppliedJobs}}
	case len(seg) == 2 && seg[0] == "description":
		return []HookCall{{Hook: HookJob, ID: seg[1]}}
	case path == guard.PathAdminCompanies:
		return []HookCall{{Hook: HookCompanies}}
	case len(seg) == 3 && seg[0] == "admin" && seg[1] == "companies" && seg[2] != "create":
		return []HookCall{{Hook: HookCompany, ID: seg[2]}}
	case path == guard.PathAdminJobs:
		return []HookCall{{Hook: HookAdminJobs}}
	case path == guard.PathAdminJobs+"/create":
		return []HookCall{{Hook: HookCompanies}}
	case len(seg) == 4 && seg[0] == "admin" && seg[1] == "jobs" && seg[3] == "applicants":
		return []HookCall{{Hook: HookApplicants, ID: seg[2]}}
	}
	return nil
}
