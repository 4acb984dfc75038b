package report

import (
	"encoding/json"
	"path"
	"sort"
	"strings"
)

const (
	sarifSchemaURI = "https://json.schemastore.org/sarif-2.1.0.json"
	sarifVersion   = "2.1.0"
)

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	InformationURI string      `json:"informationUri,omitempty"`
	Version        string      `json:"version,omitempty"`
	Rules          []sarifRule `json:"rules,omitempty"`
}

type sarifRule struct {
	ID               string        `json:"id"`
	Name             string        `json:"name,omitempty"`
	ShortDescription sarifMessage  `json:"shortDescription"`
	Help             *sarifMessage `json:"help,omitempty"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level,omitempty"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           *sarifRegion          `json:"region,omitempty"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine,omitempty"`
}

var sarifRuleDescriptions = map[Category]sarifRule{
	CategoryNamespaceLocationMismatch: {
		Name:             string(CategoryNamespaceLocationMismatch),
		ShortDescription: sarifMessage{Text: "Declared namespace disagrees with the file's location under the autoload mapping"},
		Help:             &sarifMessage{Text: "Move the file under the directory the PSR-4 mapping implies, or correct the namespace declaration."},
	},
	CategoryNamespaceNotMapped: {
		Name:             string(CategoryNamespaceNotMapped),
		ShortDescription: sarifMessage{Text: "Declared namespace is covered by no configured autoload prefix"},
		Help:             &sarifMessage{Text: "Add a PSR-4 prefix covering this namespace to composer.json, or adjust the namespace."},
	},
	CategoryUnresolvedImport: {
		Name:             string(CategoryUnresolvedImport),
		ShortDescription: sarifMessage{Text: "Imported project-owned symbol resolves to no source file"},
		Help:             &sarifMessage{Text: "Create the missing class file, fix the import, or register the name as a built-in."},
	},
}

func formatSARIF(rep Report) (string, error) {
	results := make([]sarifResult, 0, len(rep.Findings))
	usedRules := make(map[string]sarifRule)

	for _, finding := range rep.Findings {
		ruleID := "psrlint/" + string(finding.Category)
		if rule, ok := sarifRuleDescriptions[finding.Category]; ok {
			rule.ID = ruleID
			usedRules[ruleID] = rule
		}
		results = append(results, sarifResult{
			RuleID:    ruleID,
			Level:     string(finding.Severity),
			Message:   sarifMessage{Text: finding.Message},
			Locations: findingLocations(finding),
		})
	}

	log := sarifLog{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:           "psrlint",
						InformationURI: "https://github.com/ben-ranford/psrlint",
						Version:        reportVersion(rep),
						Rules:          sortedRules(usedRules),
					},
				},
				Results: results,
			},
		},
	}

	payload, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return "", err
	}
	return string(payload) + "\n", nil
}

func reportVersion(rep Report) string {
	version := strings.TrimSpace(rep.SchemaVersion)
	if version == "" {
		version = SchemaVersion
	}
	return version
}

func sortedRules(rules map[string]sarifRule) []sarifRule {
	ids := make([]string, 0, len(rules))
	for id := range rules {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	items := make([]sarifRule, 0, len(ids))
	for _, id := range ids {
		items = append(items, rules[id])
	}
	return items
}

func findingLocations(finding Finding) []sarifLocation {
	file := strings.TrimSpace(finding.File)
	if file == "" {
		return nil
	}
	file = path.Clean(strings.ReplaceAll(file, "\\", "/"))
	location := sarifLocation{
		PhysicalLocation: sarifPhysicalLocation{
			ArtifactLocation: sarifArtifactLocation{URI: file},
		},
	}
	if finding.Line > 0 {
		location.PhysicalLocation.Region = &sarifRegion{StartLine: finding.Line}
	}
	return []sarifLocation{location}
}
