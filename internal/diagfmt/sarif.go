package diagfmt

import (
	"encoding/json"
	"io"

	"epslint/internal/diag"
	"epslint/internal/source"
)

const (
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
	sarifVersion = "2.1.0"
)

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string                `json:"name"`
	Version        string                `json:"version,omitempty"`
	InformationURI string                `json:"informationUri,omitempty"`
	Rules          []sarifReportingDescr `json:"rules,omitempty"`
}

type sarifText struct {
	Text string `json:"text"`
}

type sarifReportingDescr struct {
	ID                   string       `json:"id"`
	Name                 string       `json:"name,omitempty"`
	ShortDescription     *sarifText   `json:"shortDescription,omitempty"`
	FullDescription      *sarifText   `json:"fullDescription,omitempty"`
	Help                 *sarifText   `json:"help,omitempty"`
	DefaultConfiguration *sarifConfig `json:"defaultConfiguration,omitempty"`
}

type sarifConfig struct {
	Level string `json:"level"`
}

type sarifInvocation struct {
	Arguments           []string `json:"arguments,omitempty"`
	ExecutionSuccessful bool     `json:"executionSuccessful"`
}

type sarifResult struct {
	RuleID           string                 `json:"ruleId"`
	RuleIndex        *int                   `json:"ruleIndex,omitempty"`
	Level            string                 `json:"level"`
	Message          sarifText              `json:"message"`
	Locations        []sarifLocation        `json:"locations"`
	RelatedLocations []sarifRelatedLocation `json:"relatedLocations,omitempty"`
	Fixes            []sarifFix             `json:"fixes,omitempty"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifRelatedLocation struct {
	ID               int                   `json:"id"`
	Message          sarifText             `json:"message"`
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion           `json:"region"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn"`
	EndLine     uint32 `json:"endLine"`
	EndColumn   uint32 `json:"endColumn"`
	ByteOffset  uint32 `json:"byteOffset"`
	ByteLength  uint32 `json:"byteLength"`
}

type sarifFix struct {
	Description     sarifText             `json:"description"`
	ArtifactChanges []sarifArtifactChange `json:"artifactChanges"`
}

type sarifArtifactChange struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Replacements     []sarifReplacement    `json:"replacements"`
}

type sarifReplacement struct {
	DeletedRegion   sarifRegion `json:"deletedRegion"`
	InsertedContent sarifText   `json:"insertedContent"`
}

func sarifLevel(s diag.Severity) string {
	switch s {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "note"
	}
}

func sarifRegionOf(fs *source.FileSet, sp source.Span) sarifRegion {
	r := sarifRegion{ByteOffset: sp.Start, ByteLength: sp.Len()}
	if fs.Get(sp.File) != nil {
		start, end := fs.Resolve(sp)
		r.StartLine, r.StartColumn = start.Line, start.Col
		r.EndLine, r.EndColumn = end.Line, end.Col
	}
	return r
}

func sarifPhysical(fs *source.FileSet, sp source.Span) sarifPhysicalLocation {
	return sarifPhysicalLocation{
		ArtifactLocation: sarifArtifactLocation{URI: formatPath(fs, sp.File, PathModeRelative)},
		Region:           sarifRegionOf(fs, sp),
	}
}

// Sarif writes diagnostics as a single-run SARIF v2.1.0 log. Lint
// diagnostics use the lint name as rule ID, the rest use their code.
func Sarif(w io.Writer, bag *diag.Bag, fs *source.FileSet, meta SarifRunMeta) error {
	driver := sarifDriver{
		Name:           meta.ToolName,
		Version:        meta.ToolVersion,
		InformationURI: meta.InformationURI,
	}
	ruleIndex := make(map[string]int, len(meta.Rules))
	for i, r := range meta.Rules {
		rd := sarifReportingDescr{ID: r.ID, Name: r.Name}
		if r.ShortDescription != "" {
			rd.ShortDescription = &sarifText{Text: r.ShortDescription}
		}
		if r.FullDescription != "" {
			rd.FullDescription = &sarifText{Text: r.FullDescription}
		}
		if r.Help != "" {
			rd.Help = &sarifText{Text: r.Help}
		}
		if r.DefaultLevel != "" {
			rd.DefaultConfiguration = &sarifConfig{Level: r.DefaultLevel}
		}
		driver.Rules = append(driver.Rules, rd)
		ruleIndex[r.ID] = i
	}

	run := sarifRun{Tool: sarifTool{Driver: driver}, Results: []sarifResult{}}
	if len(meta.InvocationArgs) > 0 {
		run.Invocations = []sarifInvocation{{
			Arguments:           meta.InvocationArgs,
			ExecutionSuccessful: !bag.HasErrors(),
		}}
	}

	for _, d := range bag.Items() {
		res := sarifResult{
			RuleID:    d.Code.ID(),
			Level:     sarifLevel(d.Severity),
			Message:   sarifText{Text: d.Message},
			Locations: []sarifLocation{{PhysicalLocation: sarifPhysical(fs, d.Primary)}},
		}
		if d.Lint != "" {
			res.RuleID = d.Lint
		}
		if idx, ok := ruleIndex[res.RuleID]; ok {
			res.RuleIndex = &idx
		}
		for i, n := range d.Notes {
			res.RelatedLocations = append(res.RelatedLocations, sarifRelatedLocation{
				ID:               i + 1,
				Message:          sarifText{Text: n.Msg},
				PhysicalLocation: sarifPhysical(fs, n.Span),
			})
		}
		for _, f := range sortedFixes(d.Fixes) {
			res.Fixes = append(res.Fixes, sarifFixOf(fs, f))
		}
		run.Results = append(run.Results, res)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sarifLog{Schema: sarifSchema, Version: sarifVersion, Runs: []sarifRun{run}})
}

func sarifFixOf(fs *source.FileSet, f *diag.Fix) sarifFix {
	out := sarifFix{Description: sarifText{Text: f.Title}}
	byFile := make(map[source.FileID]int)
	for _, e := range f.Edits {
		i, ok := byFile[e.Span.File]
		if !ok {
			i = len(out.ArtifactChanges)
			byFile[e.Span.File] = i
			out.ArtifactChanges = append(out.ArtifactChanges, sarifArtifactChange{
				ArtifactLocation: sarifArtifactLocation{URI: formatPath(fs, e.Span.File, PathModeRelative)},
			})
		}
		out.ArtifactChanges[i].Replacements = append(out.ArtifactChanges[i].Replacements, sarifReplacement{
			DeletedRegion:   sarifRegionOf(fs, e.Span),
			InsertedContent: sarifText{Text: e.NewText},
		})
	}
	return out
}
