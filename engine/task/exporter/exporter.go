// Package exporter renders task collections into downloadable chemistry
// formats.
package exporter

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/Keith9922/Ketcher-demo/engine/task"
	"github.com/Keith9922/Ketcher-demo/pkg/logger"
)

// Format is a supported export format.
type Format string

const (
	FormatSMILES Format = "smiles"
	FormatCSV    Format = "csv"
	FormatSDF    Format = "sdf"
)

// UnsupportedFormatError reports an export format the service cannot render.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported export format %q: must be smiles, csv or sdf", e.Format)
}

// ParseFormat accepts the format case-insensitively.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case FormatSMILES:
		return FormatSMILES, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatSDF:
		return FormatSDF, nil
	default:
		return "", &UnsupportedFormatError{Format: raw}
	}
}

// Artifact is a rendered export ready to serve as a download.
type Artifact struct {
	Data        []byte
	ContentType string
	Filename    string
}

var contentTypes = map[Format]string{
	FormatSMILES: "text/plain",
	FormatCSV:    "text/csv",
	FormatSDF:    "chemical/x-mdl-sdfile",
}

// Export renders the APPROVED subset of the given tasks in their original
// order. Approved tasks without usable structure data for the format are
// skipped with a log entry rather than failing the whole export.
func Export(ctx context.Context, tasks []*task.Task, format Format) (*Artifact, error) {
	approved := make([]*task.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Status == task.StatusApproved {
			approved = append(approved, t)
		}
	}
	tasks = approved
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatSMILES:
		data = renderSMILES(ctx, tasks)
	case FormatCSV:
		data, err = renderCSV(tasks)
	case FormatSDF:
		data = renderSDF(ctx, tasks)
	default:
		return nil, &UnsupportedFormatError{Format: string(format)}
	}
	if err != nil {
		return nil, err
	}
	return &Artifact{
		Data:        data,
		ContentType: contentTypes[format],
		Filename:    fmt.Sprintf("molecules.%s", format),
	}, nil
}

// renderSMILES emits one structure per line: canonical when available, then
// the submitted raw SMILES, then the task's source.
func renderSMILES(ctx context.Context, tasks []*task.Task) []byte {
	log := logger.FromContext(ctx)
	var sb strings.Builder
	for _, t := range tasks {
		smiles := exportableSMILES(t)
		if smiles == "" {
			log.Warn("skipping task without SMILES in export", "task_id", t.ID)
			continue
		}
		sb.WriteString(smiles)
		sb.WriteByte('\n')
	}
	return []byte(sb.String())
}

func exportableSMILES(t *task.Task) string {
	if t.Annotation != nil {
		if t.Annotation.CanonicalSMILES != "" {
			return t.Annotation.CanonicalSMILES
		}
		if t.Annotation.SMILES != "" {
			return t.Annotation.SMILES
		}
	}
	return t.Source.SMILES
}

func renderCSV(tasks []*task.Task) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"id", "title", "canonical_smiles", "qc_warnings", "review_comment", "reviewed_at"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, t := range tasks {
		var canonical string
		if t.Annotation != nil {
			canonical = t.Annotation.CanonicalSMILES
		}
		var warnings string
		if t.QC != nil {
			warnings = strings.Join(t.QC.Warnings, ";")
		}
		var comment, reviewedAt string
		if t.Review != nil {
			comment = t.Review.Comment
			reviewedAt = t.Review.ReviewedAt.UTC().Format(time.RFC3339)
		}
		record := []string{t.ID.String(), t.Title, canonical, warnings, comment, reviewedAt}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderSDF concatenates canonical MOL-blocks separated by the SDF record
// terminator.
func renderSDF(ctx context.Context, tasks []*task.Task) []byte {
	log := logger.FromContext(ctx)
	var sb strings.Builder
	for _, t := range tasks {
		if t.Annotation == nil || t.Annotation.CanonicalMol == "" {
			log.Warn("skipping task without canonical MOL-block in export", "task_id", t.ID)
			continue
		}
		block := t.Annotation.CanonicalMol
		sb.WriteString(block)
		if !strings.HasSuffix(block, "\n") {
			sb.WriteByte('\n')
		}
		sb.WriteString("$$$$\n")
	}
	return []byte(sb.String())
}
