package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wkncstats/sitesync/pkg/executor"
	"github.com/wkncstats/sitesync/pkg/planner"
)

// PlanResult is the planned set of operations before execution.
type PlanResult struct {
	Files   []PlanFile  `json:"files"`
	Summary PlanSummary `json:"summary"`
}

type PlanFile struct {
	Action      string `json:"action"` // "skip", "create", "update", "delete"
	Source      string `json:"source,omitempty"`
	Target      string `json:"target"`
	ContentType string `json:"contentType,omitempty"`
	Reason      string `json:"reason"`
}

type PlanSummary struct {
	Skip   int `json:"skip"`
	Create int `json:"create"`
	Update int `json:"update"`
	Delete int `json:"delete"`
}

// SyncResult is what actually happened.
type SyncResult struct {
	Files   []ResultFile  `json:"files"`
	Errors  []ErrorFile   `json:"errors"`
	Summary ResultSummary `json:"summary"`

	bytesUploaded int64
}

type ResultFile struct {
	Action string `json:"action"` // "skipped", "created", "updated", "deleted"
	Source string `json:"source,omitempty"`
	Target string `json:"target"`
}

type ErrorFile struct {
	Action string `json:"action"`
	Source string `json:"source,omitempty"`
	Target string `json:"target"`
	Error  string `json:"error"`
}

type ResultSummary struct {
	Skipped int `json:"skipped"`
	Created int `json:"created"`
	Updated int `json:"updated"`
	Deleted int `json:"deleted"`
	Failed  int `json:"failed"`
}

func writePlanJSON(path string, plan planner.Plan, bucket, prefix string) error {
	result := PlanResult{Files: []PlanFile{}}

	for _, item := range plan.Uploads {
		action := uploadActionName(item.Reason)
		result.Files = append(result.Files, PlanFile{
			Action:      action,
			Source:      absolutePath(item.Asset.LocalPath),
			Target:      formatS3Path(bucket, prefix, item.Key),
			ContentType: item.Asset.ContentType,
			Reason:      string(item.Reason),
		})
		if action == "create" {
			result.Summary.Create++
		} else {
			result.Summary.Update++
		}
	}
	for _, item := range plan.Deletes {
		result.Files = append(result.Files, PlanFile{
			Action: "delete",
			Target: formatS3Path(bucket, prefix, item.Key),
			Reason: string(item.Reason),
		})
		result.Summary.Delete++
	}
	for _, item := range plan.Unchanged {
		result.Files = append(result.Files, PlanFile{
			Action: "skip",
			Source: absolutePath(item.Asset.LocalPath),
			Target: formatS3Path(bucket, prefix, item.Key),
			Reason: string(item.Reason),
		})
		result.Summary.Skip++
	}

	return writeJSON(path, result)
}

// summarize folds executor results and the plan's unchanged set into a
// SyncResult.
func summarize(plan planner.Plan, results []executor.Result, bucket, prefix string) SyncResult {
	out := SyncResult{
		Files:  []ResultFile{},
		Errors: []ErrorFile{},
	}

	for _, item := range plan.Unchanged {
		out.Files = append(out.Files, ResultFile{
			Action: "skipped",
			Source: absolutePath(item.Asset.LocalPath),
			Target: formatS3Path(bucket, prefix, item.Key),
		})
		out.Summary.Skipped++
	}

	for _, result := range results {
		item := result.Item
		if result.Error != nil {
			action := uploadActionName(item.Reason)
			if item.Action == planner.ActionDelete {
				action = "delete"
			}
			errorFile := ErrorFile{
				Action: action,
				Target: formatS3Path(bucket, prefix, item.Key),
				Error:  result.Error.Error(),
			}
			if item.Action == planner.ActionUpload {
				errorFile.Source = absolutePath(item.Asset.LocalPath)
			}
			out.Errors = append(out.Errors, errorFile)
			out.Summary.Failed++
			continue
		}

		switch item.Action {
		case planner.ActionUpload:
			file := ResultFile{
				Source: absolutePath(item.Asset.LocalPath),
				Target: formatS3Path(bucket, prefix, item.Key),
			}
			if uploadActionName(item.Reason) == "create" {
				file.Action = "created"
				out.Summary.Created++
			} else {
				file.Action = "updated"
				out.Summary.Updated++
			}
			out.Files = append(out.Files, file)
			out.bytesUploaded += item.Asset.Size
		case planner.ActionDelete:
			out.Files = append(out.Files, ResultFile{
				Action: "deleted",
				Target: formatS3Path(bucket, prefix, item.Key),
			})
			out.Summary.Deleted++
		}
	}

	return out
}

func writeResultJSON(path string, result SyncResult) error {
	return writeJSON(path, result)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

func uploadActionName(reason planner.Reason) string {
	if reason == planner.ReasonNewObject {
		return "create"
	}
	return "update"
}

func absolutePath(path string) string {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}
