package report

import "time"

func sampleSARIFReport() Report {
	findings := []Finding{
		{
			File:     "src/Billing/Invoice.php",
			Category: CategoryNamespaceLocationMismatch,
			Severity: SeverityError,
			Message:  `namespace App\Ledger expects directory src/Ledger`,
			Line:     2,
		},
		{
			File:     "src/Billing/Invoice.php",
			Category: CategoryUnresolvedImport,
			Severity: SeverityError,
			Message:  `unresolved import: use App\Missing\Thing;`,
			Line:     4,
		},
		{
			File:     "src/Legacy.php",
			Category: CategoryNamespaceNotMapped,
			Severity: SeverityWarning,
			Message:  `namespace Legacy\Stuff matches no configured autoload prefix`,
			Line:     2,
		},
	}
	return Report{
		SchemaVersion: SchemaVersion,
		GeneratedAt:   time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
		RepoPath:      "/srv/project",
		Findings:      findings,
		Summary:       ComputeSummary(2, findings),
	}
}
